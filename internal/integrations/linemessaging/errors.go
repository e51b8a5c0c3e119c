package linemessaging

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("linemessaging client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от LINE API
	ErrInvalidResponse = errors.New("linemessaging client: invalid response")

	// ErrRateLimited возвращается при превышении лимита запросов LINE API
	ErrRateLimited = errors.New("linemessaging client: rate limited")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Недоступность LINE API не должна ронять путь бронирования
	ErrServiceDegraded = errors.New("line api unavailable: graceful degradation applied")
)
