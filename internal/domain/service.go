package domain

import "time"

// Service represents a bookable offering with a fixed duration.
type Service struct {
	ID              int64
	StoreID         int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasValidDuration reports whether the duration is within the allowed range.
func (s *Service) HasValidDuration() bool {
	return s.DurationMinutes >= MinServiceDurationMinutes &&
		s.DurationMinutes <= MaxServiceDurationMinutes
}
