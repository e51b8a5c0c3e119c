package scheduling

import (
	"context"

	"github.com/barberbook/booking-service/internal/domain"
)

// HoursRepository доступ к графику работы магазинов
type HoursRepository interface {
	GetByStoreAndWeekday(ctx context.Context, storeID int64, weekday int) (*domain.BusinessHours, error)
}

// StaffRepository доступ к ростеру мастеров
type StaffRepository interface {
	ListActiveByStore(ctx context.Context, storeID int64) ([]*domain.Staff, error)
}

// BookingRepository доступ к бронированиям для проверок пересечений
type BookingRepository interface {
	GetByStaffAndDate(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
