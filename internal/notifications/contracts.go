package notifications

import "context"

// LineClient интерфейс клиента LINE Messaging API
type LineClient interface {
	PushTextWithGracefulDegradation(ctx context.Context, lineUserID, text string) error
}

// EmailSender интерфейс отправителя писем
type EmailSender interface {
	Send(to, subject, body string) error
}

// Metrics интерфейс для метрик уведомлений
type Metrics interface {
	IncReminderSent(channel, status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
