package linemessaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент LINE Messaging API (push-сообщения).
// Все запросы проходят через локальный rate limiter, чтобы не упираться
// в лимиты LINE на всплесках уведомлений.
type Client struct {
	baseURL      string
	channelToken string
	httpClient   *http.Client
	limiter      *rate.Limiter
	log          Logger
}

// NewClient создает новый экземпляр клиента LINE Messaging API
func NewClient(baseURL, channelToken string, timeout time.Duration, requestsPerSecond float64, log Logger) *Client {
	return &Client{
		baseURL:      baseURL,
		channelToken: channelToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		log:     log,
	}
}

// PushText отправляет текстовое сообщение пользователю LINE
func (c *Client) PushText(ctx context.Context, lineUserID, text string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrInternal, err)
	}

	body, err := json.Marshal(pushRequest{
		To:       lineUserID,
		Messages: []Message{NewTextMessage(text)},
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/v2/bot/message/push", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		var apiErr errorResponse
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}

// PushTextWithGracefulDegradation отправляет сообщение с graceful degradation.
// При недоступности LINE API возвращает ErrServiceDegraded: уведомление
// теряется, бронирование - нет.
func (c *Client) PushTextWithGracefulDegradation(ctx context.Context, lineUserID, text string) error {
	err := c.PushText(ctx, lineUserID, text)
	if err != nil {
		c.log.Error("LINE API unavailable, applying graceful degradation for user=%s: %v", lineUserID, err)
		return fmt.Errorf("%w: user=%s, error=%v", ErrServiceDegraded, lineUserID, err)
	}

	c.log.Info("Successfully pushed LINE message to user=%s", lineUserID)
	return nil
}
