package domain

import "github.com/barberbook/booking-service/pkg/types"

// ConflictType classifies why a booking request cannot be satisfied.
type ConflictType string

const (
	// ConflictTimeOverlap - the requested interval overlaps existing
	// bookings for every candidate staff member.
	ConflictTimeOverlap ConflictType = "time_overlap"
	// ConflictOutsideBusinessHours - the requested interval is not fully
	// inside the store's open window, or the store is closed that day.
	ConflictOutsideBusinessHours ConflictType = "outside_business_hours"
	// ConflictStaffUnavailable - the named staff member is inactive,
	// unknown, or already booked for an overlapping interval.
	ConflictStaffUnavailable ConflictType = "staff_unavailable"
	// ConflictServiceUnavailable - the service is unknown, inactive, or
	// belongs to a different store.
	ConflictServiceUnavailable ConflictType = "service_unavailable"
)

// Alternative is a substitute slot proposed when the requested one conflicts.
type Alternative struct {
	StaffID   int64
	StaffName string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ConflictResult is the engine's answer to a booking request. Expected
// domain conditions (busy staff, closed store, inactive service) are
// returned as data here, never as errors.
type ConflictResult struct {
	HasConflict  bool
	Type         ConflictType
	Detail       string
	Alternatives []Alternative // at most MaxAlternatives entries
}

// Conflict builds a failed check result without alternatives.
func Conflict(t ConflictType, detail string) *ConflictResult {
	return &ConflictResult{HasConflict: true, Type: t, Detail: detail}
}
