package bookings

import (
	"context"

	"github.com/barberbook/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByStoreWithFilter(ctx context.Context, filter domain.StoreBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// Notifier уведомляет клиента об отмене бронирования (best-effort)
type Notifier interface {
	BookingCancelled(ctx context.Context, booking *domain.Booking, reason string)
}

// Metrics интерфейс для бизнес-метрик бронирований
type Metrics interface {
	IncBookingCancelled()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
