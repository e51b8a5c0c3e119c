package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// AvailableStaff возвращает первого свободного мастера на интервале
// [start, end) в порядке создания ростера. Порядок детерминирован:
// одинаковый запрос при одинаковом состоянии календарей всегда выбирает
// одного и того же мастера.
//
// nil без ошибки означает, что свободных мастеров нет.
func (e *Engine) AvailableStaff(
	ctx context.Context,
	storeID int64,
	date time.Time,
	start, end types.TimeString,
	excludeBookingID *int64,
) (*domain.StaffOption, error) {
	staffList, err := e.staffRepo.ListActiveByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("%w: list active staff: %v", ErrInternal, err)
	}

	for _, s := range staffList {
		available, err := e.StaffAvailable(ctx, storeID, s.ID, date, start, end, excludeBookingID)
		if err != nil {
			return nil, err
		}
		if available {
			return &domain.StaffOption{StaffID: s.ID, StaffName: s.Name}, nil
		}
	}

	e.logger.Debug("scheduling: no staff available: store_id=%d date=%s interval=%s-%s",
		storeID, date.Format(domain.DateFormat), start, end)

	return nil, nil
}
