package check_conflicts

import (
	"context"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, storeID, serviceID int64) (*domain.Service, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, storeID, staffID int64) (*domain.Staff, error)
}

// SchedulingEngine интерфейс движка доступности
type SchedulingEngine interface {
	DayWindow(ctx context.Context, storeID int64, date time.Time) (*domain.DayWindow, error)
	ConflictingBooking(ctx context.Context, storeID, staffID int64, date time.Time, start, end types.TimeString, excludeBookingID *int64) (*domain.Booking, error)
	AvailableStaff(ctx context.Context, storeID int64, date time.Time, start, end types.TimeString, excludeBookingID *int64) (*domain.StaffOption, error)
	FindAlternatives(ctx context.Context, storeID int64, date time.Time, start types.TimeString, durationMin int, preferredStaffID, excludeBookingID *int64) ([]domain.Alternative, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
