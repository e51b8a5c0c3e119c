package businesshours

import (
	"fmt"

	"github.com/barberbook/booking-service/internal/domain"
)

// validateWeek проверяет набор дней: каждый день корректен сам по себе
// и ни один день недели не встречается дважды
func validateWeek(week []*domain.BusinessHours) error {
	if len(week) > 7 {
		return fmt.Errorf("%w: at most 7 days expected", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(week))
	for _, bh := range week {
		if seen[bh.Weekday] {
			return fmt.Errorf("%w: duplicate weekday %d", ErrInvalidInput, bh.Weekday)
		}
		seen[bh.Weekday] = true

		if err := bh.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
