package reminders

import (
	"context"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// Notifier отправляет напоминание клиенту
type Notifier interface {
	SendReminder(ctx context.Context, booking *domain.Booking)
}

// Deduplicator не дает отправить одно напоминание дважды.
// Ключ помечается атомарно; false означает, что кто-то уже отправил
type Deduplicator interface {
	MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
