package domain

import (
	"fmt"
	"time"

	"github.com/barberbook/booking-service/pkg/types"
)

// BusinessHours is one weekday's opening window for a store.
// Weekday follows time.Weekday numbering: 0 = Sunday.
type BusinessHours struct {
	ID        int64
	StoreID   int64
	Weekday   int
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsClosed  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the open-before-close invariant for an open day.
func (h *BusinessHours) Validate() error {
	if h.Weekday < 0 || h.Weekday > 6 {
		return fmt.Errorf("business hours: weekday %d out of range", h.Weekday)
	}
	if h.IsClosed {
		return nil
	}
	if err := h.OpenTime.Validate(); err != nil {
		return fmt.Errorf("business hours: open time: %w", err)
	}
	if err := h.CloseTime.Validate(); err != nil {
		return fmt.Errorf("business hours: close time: %w", err)
	}
	if !h.OpenTime.IsBefore(h.CloseTime) {
		return fmt.Errorf("business hours: open time %s must be before close time %s", h.OpenTime, h.CloseTime)
	}
	return nil
}

// DayWindow is the resolved open interval for one calendar date.
// A nil *DayWindow means the store is closed (or has no configured hours)
// on that date - the two cases are deliberately indistinguishable.
type DayWindow struct {
	Open  types.TimeString
	Close types.TimeString
}

// Contains reports whether [start, end] lies fully inside the window,
// endpoints inclusive.
func (w *DayWindow) Contains(start, end types.TimeString) bool {
	return types.Within(start, w.Open, w.Close) && types.Within(end, w.Open, w.Close)
}

// SpanMinutes returns the window length in minutes.
func (w *DayWindow) SpanMinutes() int {
	open, err := w.Open.Minutes()
	if err != nil {
		return 0
	}
	close, err := w.Close.Minutes()
	if err != nil {
		return 0
	}
	return close - open
}
