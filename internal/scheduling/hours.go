package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	hoursstorage "github.com/barberbook/booking-service/internal/infra/storage/hours"
)

// DayWindow возвращает окно работы магазина на конкретную дату.
// nil-окно без ошибки означает закрытый день: выходной по графику и
// не настроенный день недели снаружи неразличимы.
func (e *Engine) DayWindow(ctx context.Context, storeID int64, date time.Time) (*domain.DayWindow, error) {
	weekday := int(date.Weekday())

	bh, err := e.hoursRepo.GetByStoreAndWeekday(ctx, storeID, weekday)
	if errors.Is(err, hoursstorage.ErrHoursNotFound) {
		e.logger.Debug("scheduling: no business hours configured: store_id=%d weekday=%d", storeID, weekday)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get business hours: %v", ErrInternal, err)
	}

	if bh.IsClosed {
		return nil, nil
	}

	return &domain.DayWindow{
		Open:  bh.OpenTime,
		Close: bh.CloseTime,
	}, nil
}
