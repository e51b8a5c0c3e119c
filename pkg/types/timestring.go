package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in a store-local day.
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat is returned for strings that are not "HH:MM".
	ErrInvalidTimeFormat = errors.New("types: invalid time string format")

	// ErrTimeOutOfRange is returned when an arithmetic result leaves the
	// [00:00, 24:00] day range.
	ErrTimeOutOfRange = errors.New("types: time out of day range")
)

// TimeString is a time of day in "HH:MM" form at minute granularity.
// "24:00" is a valid value so that an interval end can touch midnight.
type TimeString string

// NewTimeString builds a TimeString from a time.Time.
// Seconds and finer precision are truncated, not rounded.
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	t := TimeString(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// FromMinutes converts minutes since midnight into a TimeString.
func FromMinutes(m int) (TimeString, error) {
	if m < 0 || m > MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate checks the "HH:MM" shape and range.
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	s := string(t)
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return h*60 + m, nil
}

// AddMinutes returns the time shifted by delta minutes.
// The result must stay within [00:00, 24:00].
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(m + delta)
}

// minutesOrNeg is used by the comparison helpers: malformed values compare
// as never-before / never-after, so they can't accidentally pass checks.
func (t TimeString) minutesOrNeg() int {
	m, err := t.Minutes()
	if err != nil {
		return -1
	}
	return m
}

// IsBefore reports t < other.
func (t TimeString) IsBefore(other TimeString) bool {
	a, b := t.minutesOrNeg(), other.minutesOrNeg()
	if a < 0 || b < 0 {
		return false
	}
	return a < b
}

// IsAfter reports t > other.
func (t TimeString) IsAfter(other TimeString) bool {
	a, b := t.minutesOrNeg(), other.minutesOrNeg()
	if a < 0 || b < 0 {
		return false
	}
	return a > b
}

// Equal reports t == other at minute granularity.
func (t TimeString) Equal(other TimeString) bool {
	a, b := t.minutesOrNeg(), other.minutesOrNeg()
	if a < 0 || b < 0 {
		return false
	}
	return a == b
}

// IsZero reports whether the value is unset.
func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do NOT count as overlap.
func Overlaps(aStart, aEnd, bStart, bEnd TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// Within reports start <= p <= end (inclusive containment).
func Within(p, start, end TimeString) bool {
	pm, sm, em := p.minutesOrNeg(), start.minutesOrNeg(), end.minutesOrNeg()
	if pm < 0 || sm < 0 || em < 0 {
		return false
	}
	return sm <= pm && pm <= em
}

// Value implements driver.Valuer so the type maps onto a TIME column.
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Postgres returns TIME as "HH:MM:SS";
// the seconds are dropped.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
