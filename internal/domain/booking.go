package domain

import (
	"time"

	"github.com/barberbook/booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a scheduled appointment of one staff member's time
// for a single service.
type Booking struct {
	ID         int64
	StoreID    int64
	StaffID    int64
	ServiceID  int64
	CustomerID int64

	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString // always StartTime + service duration, derived at creation
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history and notifications
	ServiceName    string
	ServicePrice   float64
	StaffName      string
	CustomerName   string
	CustomerLineID *string
	CustomerEmail  *string
	Notes          *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsForConflicts returns true if the booking participates in overlap
// checks. Cancelled bookings never block a slot.
func (b *Booking) CountsForConflicts() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to a new time
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// ValidStatus reports whether s is one of the known booking statuses
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// StaffDayFilter селектор бронирований одного мастера на один день.
// Все проверки доступности живут такими узкими выборками:
// O(бронирований мастера за день), а не O(всех бронирований).
type StaffDayFilter struct {
	StoreID          int64
	StaffID          int64
	Date             time.Time
	ExcludeBookingID *int64 // для reschedule: бронирование не конфликтует само с собой
}

// StoreBookingsFilter фильтр для получения бронирований магазина
type StoreBookingsFilter struct {
	StoreID         int64          // Обязательный параметр
	StaffID         *int64         // Фильтр по мастеру (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
