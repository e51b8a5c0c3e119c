package create_booking

import (
	"context"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

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

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier уведомляет клиента о созданном бронировании (best-effort)
type Notifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking)
}

// Metrics интерфейс для бизнес-метрик бронирований
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict(conflictType string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
