package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", in: "09:30", want: "09:30"},
		{name: "midnight", in: "00:00", want: "00:00"},
		{name: "end of day", in: "24:00", want: "24:00"},
		{name: "last minute", in: "23:59", want: "23:59"},
		{name: "past end of day", in: "24:01", wantErr: true},
		{name: "hour too large", in: "25:00", wantErr: true},
		{name: "minute too large", in: "10:60", wantErr: true},
		{name: "missing padding", in: "9:30", wantErr: true},
		{name: "no colon", in: "0930", wantErr: true},
		{name: "garbage", in: "ab:cd", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "with seconds", in: "09:30:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTimeString_TruncatesSeconds(t *testing.T) {
	moment := time.Date(2026, 3, 2, 10, 15, 59, 999, time.UTC)
	assert.Equal(t, TimeString("10:15"), NewTimeString(moment))
}

func TestMinutes(t *testing.T) {
	m, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	m, err = TimeString("24:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, MinutesPerDay, m)

	_, err = TimeString("nope").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestAddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), got)

	got, err = TimeString("10:00").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), got)

	// Exactly reaching midnight at the end of the day is allowed.
	got, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	// Going past the end of the day is not.
	_, err = TimeString("23:30").AddMinutes(31)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	// Going before midnight is not.
	_, err = TimeString("00:10").AddMinutes(-11)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:01").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))

	assert.True(t, TimeString("18:00").IsAfter("17:59"))
	assert.False(t, TimeString("18:00").IsAfter("18:00"))

	assert.True(t, TimeString("12:00").Equal("12:00"))
	assert.False(t, TimeString("12:00").Equal("12:01"))

	// Malformed values never compare true.
	assert.False(t, TimeString("bad").IsBefore("12:00"))
	assert.False(t, TimeString("12:00").IsAfter("bad"))
	assert.False(t, TimeString("bad").Equal("bad"))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     TimeString
		want                           bool
	}{
		{name: "real overlap", aStart: "11:30", aEnd: "12:00", bStart: "11:20", bEnd: "11:40", want: true},
		{name: "contained", aStart: "10:00", aEnd: "11:00", bStart: "10:15", bEnd: "10:45", want: true},
		{name: "identical", aStart: "10:00", aEnd: "10:30", bStart: "10:00", bEnd: "10:30", want: true},
		{name: "touching before", aStart: "11:30", aEnd: "12:00", bStart: "11:00", bEnd: "11:30", want: false},
		{name: "touching after", aStart: "11:30", aEnd: "12:00", bStart: "12:00", bEnd: "12:30", want: false},
		{name: "disjoint", aStart: "09:00", aEnd: "09:30", bStart: "14:00", bEnd: "14:30", want: false},
		{name: "touching at midnight", aStart: "23:00", aEnd: "24:00", bStart: "00:00", bEnd: "23:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestWithin(t *testing.T) {
	assert.True(t, Within("09:00", "09:00", "18:00"))
	assert.True(t, Within("18:00", "09:00", "18:00"))
	assert.True(t, Within("12:34", "09:00", "18:00"))
	assert.False(t, Within("08:59", "09:00", "18:00"))
	assert.False(t, Within("18:01", "09:00", "18:00"))
	assert.False(t, Within("bad", "09:00", "18:00"))
}

func TestFromMinutes(t *testing.T) {
	got, err := FromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:00"), got)

	got, err = FromMinutes(MinutesPerDay)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = FromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
	_, err = FromMinutes(MinutesPerDay + 1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestScan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:00:00")))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 14, 45, 30, 0, time.UTC)))
	assert.Equal(t, TimeString("14:45"), ts)

	assert.Error(t, ts.Scan(42))
}
