package get_available_slots

import (
	"context"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, storeID, serviceID int64) (*domain.Service, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, storeID, staffID int64) (*domain.Staff, error)
	ListActiveByStore(ctx context.Context, storeID int64) ([]*domain.Staff, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByStaffAndDate(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Booking, error)
}

// SchedulingEngine интерфейс движка доступности
type SchedulingEngine interface {
	DayWindow(ctx context.Context, storeID int64, date time.Time) (*domain.DayWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
