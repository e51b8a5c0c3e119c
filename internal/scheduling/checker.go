package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// ConflictingBooking возвращает первое бронирование мастера, пересекающееся
// с интервалом [start, end), или nil, если календарь свободен.
// Интервалы полуоткрытые: бронирование, заканчивающееся в 11:00, не
// конфликтует с бронированием, начинающимся в 11:00.
// excludeBookingID исключает из проверки само переносимое бронирование.
//
// Проверка только календарная: активность мастера и окно работы магазина
// проверяются вызывающей стороной.
func (e *Engine) ConflictingBooking(
	ctx context.Context,
	storeID, staffID int64,
	date time.Time,
	start, end types.TimeString,
	excludeBookingID *int64,
) (*domain.Booking, error) {
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: start=%s end=%s", ErrInvalidInterval, start, end)
	}

	bookings, err := e.bookingRepo.GetByStaffAndDate(ctx, domain.StaffDayFilter{
		StoreID:          storeID,
		StaffID:          staffID,
		Date:             date,
		ExcludeBookingID: excludeBookingID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get staff bookings: %v", ErrInternal, err)
	}

	return firstOverlap(bookings, start, end), nil
}

// StaffAvailable проверяет, свободен ли календарь мастера на интервале [start, end)
func (e *Engine) StaffAvailable(
	ctx context.Context,
	storeID, staffID int64,
	date time.Time,
	start, end types.TimeString,
	excludeBookingID *int64,
) (bool, error) {
	conflict, err := e.ConflictingBooking(ctx, storeID, staffID, date, start, end, excludeBookingID)
	if err != nil {
		return false, err
	}
	return conflict == nil, nil
}

// firstOverlap возвращает первое бронирование, пересекающееся с [start, end),
// или nil. Отмененные бронирования слот не блокируют.
func firstOverlap(bookings []*domain.Booking, start, end types.TimeString) *domain.Booking {
	for _, b := range bookings {
		if !b.CountsForConflicts() {
			continue
		}
		if types.Overlaps(start, end, b.StartTime, b.EndTime) {
			return b
		}
	}
	return nil
}
