package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// FindAlternatives подбирает замены занятому интервалу. Порядок предпочтений:
// сначала другой мастер на точно запрошенное время, затем сдвиги по времени
// в порядке близости (-30, +30, -60, +60 минут) по всем мастерам. Каждый
// кандидат обязан целиком лежать в окне работы магазина. Результат ограничен
// domain.MaxAlternatives.
//
// preferredStaffID, если задан, исключается из поиска на точное время:
// про него уже известно, что он занят.
func (e *Engine) FindAlternatives(
	ctx context.Context,
	storeID int64,
	date time.Time,
	start types.TimeString,
	durationMin int,
	preferredStaffID *int64,
	excludeBookingID *int64,
) ([]domain.Alternative, error) {
	window, err := e.DayWindow(ctx, storeID, date)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, nil
	}

	staffList, err := e.staffRepo.ListActiveByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("%w: list active staff: %v", ErrInternal, err)
	}
	if len(staffList) == 0 {
		return nil, nil
	}

	// Календарь каждого мастера читается один раз на весь поиск
	dayBookings := make(map[int64][]*domain.Booking, len(staffList))
	for _, s := range staffList {
		bookings, err := e.bookingRepo.GetByStaffAndDate(ctx, domain.StaffDayFilter{
			StoreID:          storeID,
			StaffID:          s.ID,
			Date:             date,
			ExcludeBookingID: excludeBookingID,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: get staff bookings: %v", ErrInternal, err)
		}
		dayBookings[s.ID] = bookings
	}

	alternatives := make([]domain.Alternative, 0, domain.MaxAlternatives)

	appendCandidates := func(candStart types.TimeString, skipStaffID *int64) {
		candEnd, err := candStart.AddMinutes(durationMin)
		if err != nil {
			return
		}
		if !window.Contains(candStart, candEnd) {
			return
		}
		for _, s := range staffList {
			if len(alternatives) >= domain.MaxAlternatives {
				return
			}
			if skipStaffID != nil && s.ID == *skipStaffID {
				continue
			}
			if firstOverlap(dayBookings[s.ID], candStart, candEnd) != nil {
				continue
			}
			alternatives = append(alternatives, domain.Alternative{
				StaffID:   s.ID,
				StaffName: s.Name,
				StartTime: candStart,
				EndTime:   candEnd,
			})
		}
	}

	// Точное время у другого мастера ценнее любого сдвига
	appendCandidates(start, preferredStaffID)

	for _, offset := range domain.AlternativeOffsetsMinutes {
		if len(alternatives) >= domain.MaxAlternatives {
			break
		}
		candStart, err := start.AddMinutes(offset)
		if err != nil {
			// Сдвиг вывел за пределы суток
			continue
		}
		appendCandidates(candStart, nil)
	}

	return alternatives, nil
}
