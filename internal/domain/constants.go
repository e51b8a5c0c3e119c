package domain

// Business validation constants
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 480 // 8 hours

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// DefaultSlotStepMinutes is the slot lattice granularity: candidate start
// times are enumerated at open + k*step.
const DefaultSlotStepMinutes = 30

// MaxAlternatives bounds the alternative-slot search result.
const MaxAlternatives = 5

// AlternativeOffsetsMinutes is the fixed offset ladder tried after the exact
// preferred interval. Close-in-time shifts are preferred over far ones.
var AlternativeOffsetsMinutes = []int{-30, 30, -60, 60}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
