package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbook/booking-service/internal/domain"
	hoursstorage "github.com/barberbook/booking-service/internal/infra/storage/hours"
	"github.com/barberbook/booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeHoursRepo struct {
	byWeekday map[int]*domain.BusinessHours
}

func (f *fakeHoursRepo) GetByStoreAndWeekday(_ context.Context, _ int64, weekday int) (*domain.BusinessHours, error) {
	bh, ok := f.byWeekday[weekday]
	if !ok {
		return nil, hoursstorage.ErrHoursNotFound
	}
	return bh, nil
}

type fakeStaffRepo struct {
	staff []*domain.Staff
}

func (f *fakeStaffRepo) ListActiveByStore(_ context.Context, _ int64) ([]*domain.Staff, error) {
	active := make([]*domain.Staff, 0, len(f.staff))
	for _, s := range f.staff {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return active, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByStaffAndDate(_ context.Context, filter domain.StaffDayFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.StaffID != filter.StaffID {
			continue
		}
		if b.Status == domain.StatusCancelled {
			continue
		}
		if filter.ExcludeBookingID != nil && b.ID == *filter.ExcludeBookingID {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func newTestEngine(hours *fakeHoursRepo, staff *fakeStaffRepo, bookings *fakeBookingRepo) *Engine {
	if hours == nil {
		hours = &fakeHoursRepo{byWeekday: map[int]*domain.BusinessHours{}}
	}
	if staff == nil {
		staff = &fakeStaffRepo{}
	}
	if bookings == nil {
		bookings = &fakeBookingRepo{}
	}
	return NewEngine(hours, staff, bookings, nopLogger{})
}

// Monday
var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mondayHours(open, close string) *fakeHoursRepo {
	return &fakeHoursRepo{byWeekday: map[int]*domain.BusinessHours{
		1: {StoreID: 1, Weekday: 1, OpenTime: ts(open), CloseTime: ts(close)},
	}}
}

func twoBarbers() *fakeStaffRepo {
	return &fakeStaffRepo{staff: []*domain.Staff{
		{ID: 1, StoreID: 1, Name: "Alice", IsActive: true},
		{ID: 2, StoreID: 1, Name: "Bob", IsActive: true},
	}}
}

func booking(id, staffID int64, start, end string) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		StoreID:     1,
		StaffID:     staffID,
		BookingDate: testDate,
		StartTime:   ts(start),
		EndTime:     ts(end),
		Status:      domain.StatusConfirmed,
	}
}

func TestDayWindow(t *testing.T) {
	t.Run("open day resolves to window", func(t *testing.T) {
		e := newTestEngine(mondayHours("09:00", "18:00"), nil, nil)

		window, err := e.DayWindow(context.Background(), 1, testDate)
		require.NoError(t, err)
		require.NotNil(t, window)
		assert.Equal(t, ts("09:00"), window.Open)
		assert.Equal(t, ts("18:00"), window.Close)
	})

	t.Run("closed day resolves to nil window without error", func(t *testing.T) {
		hours := &fakeHoursRepo{byWeekday: map[int]*domain.BusinessHours{
			1: {StoreID: 1, Weekday: 1, IsClosed: true},
		}}
		e := newTestEngine(hours, nil, nil)

		window, err := e.DayWindow(context.Background(), 1, testDate)
		require.NoError(t, err)
		assert.Nil(t, window)
	})

	t.Run("unconfigured weekday behaves like closed", func(t *testing.T) {
		e := newTestEngine(nil, nil, nil)

		window, err := e.DayWindow(context.Background(), 1, testDate)
		require.NoError(t, err)
		assert.Nil(t, window)
	})
}

func TestSlotTimes(t *testing.T) {
	t.Run("default grid over a full day", func(t *testing.T) {
		window := &domain.DayWindow{Open: ts("09:00"), Close: ts("18:00")}

		slots := SlotTimes(window, 30, 30)
		require.Len(t, slots, 18)
		assert.Equal(t, ts("09:00"), slots[0])
		assert.Equal(t, ts("17:30"), slots[17])
	})

	t.Run("service longer than step shrinks the tail", func(t *testing.T) {
		window := &domain.DayWindow{Open: ts("09:00"), Close: ts("18:00")}

		slots := SlotTimes(window, 60, 30)
		require.NotEmpty(t, slots)
		// последний старт, при котором 60 минут еще влезают до 18:00
		assert.Equal(t, ts("17:00"), slots[len(slots)-1])
	})

	t.Run("service exactly filling the window yields one slot", func(t *testing.T) {
		window := &domain.DayWindow{Open: ts("10:00"), Close: ts("18:00")}

		slots := SlotTimes(window, 480, 30)
		require.Len(t, slots, 1)
		assert.Equal(t, ts("10:00"), slots[0])
	})

	t.Run("service longer than window yields nothing", func(t *testing.T) {
		window := &domain.DayWindow{Open: ts("10:00"), Close: ts("12:00")}

		slots := SlotTimes(window, 180, 30)
		assert.Empty(t, slots)
	})

	t.Run("nil window yields nothing", func(t *testing.T) {
		assert.Empty(t, SlotTimes(nil, 30, 30))
	})

	t.Run("non-positive step falls back to default", func(t *testing.T) {
		window := &domain.DayWindow{Open: ts("09:00"), Close: ts("10:00")}

		slots := SlotTimes(window, 30, 0)
		require.Len(t, slots, 2)
		assert.Equal(t, ts("09:30"), slots[1])
	})

	t.Run("every slot is a valid time on the step lattice", func(t *testing.T) {
		window := &domain.DayWindow{Open: ts("09:15"), Close: ts("18:00")}

		slots := SlotTimes(window, 45, 30)
		require.NotEmpty(t, slots)

		openMin, err := window.Open.Minutes()
		require.NoError(t, err)

		for i, slot := range slots {
			require.NoError(t, slot.Validate())

			m, err := slot.Minutes()
			require.NoError(t, err)
			assert.Equal(t, openMin+i*30, m)
		}
	})
}

func TestStaffAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("free calendar is available", func(t *testing.T) {
		e := newTestEngine(nil, nil, &fakeBookingRepo{})

		ok, err := e.StaffAvailable(ctx, 1, 1, testDate, ts("10:00"), ts("11:00"), nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("overlapping booking blocks the interval", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 1, "10:00", "11:00"),
		}}
		e := newTestEngine(nil, nil, repo)

		ok, err := e.StaffAvailable(ctx, 1, 1, testDate, ts("10:30"), ts("11:30"), nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("touching endpoints do not conflict", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 1, "10:00", "11:00"),
		}}
		e := newTestEngine(nil, nil, repo)

		before, err := e.StaffAvailable(ctx, 1, 1, testDate, ts("09:00"), ts("10:00"), nil)
		require.NoError(t, err)
		assert.True(t, before)

		after, err := e.StaffAvailable(ctx, 1, 1, testDate, ts("11:00"), ts("12:00"), nil)
		require.NoError(t, err)
		assert.True(t, after)
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		cancelled := booking(1, 1, "10:00", "11:00")
		cancelled.Status = domain.StatusCancelled
		repo := &fakeBookingRepo{bookings: []*domain.Booking{cancelled}}
		e := newTestEngine(nil, nil, repo)

		ok, err := e.StaffAvailable(ctx, 1, 1, testDate, ts("10:00"), ts("11:00"), nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("reschedule does not conflict with itself", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{
			booking(42, 1, "10:00", "11:00"),
		}}
		e := newTestEngine(nil, nil, repo)

		var exclude int64 = 42
		ok, err := e.StaffAvailable(ctx, 1, 1, testDate, ts("10:30"), ts("11:30"), &exclude)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("inverted interval is rejected", func(t *testing.T) {
		e := newTestEngine(nil, nil, nil)

		_, err := e.StaffAvailable(ctx, 1, 1, testDate, ts("11:00"), ts("10:00"), nil)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestConflictingBooking(t *testing.T) {
	ctx := context.Background()

	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(7, 1, "10:00", "11:00"),
	}}
	e := newTestEngine(nil, nil, repo)

	t.Run("returns the blocking booking", func(t *testing.T) {
		b, err := e.ConflictingBooking(ctx, 1, 1, testDate, ts("10:30"), ts("11:30"), nil)
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, int64(7), b.ID)
	})

	t.Run("nil when free", func(t *testing.T) {
		b, err := e.ConflictingBooking(ctx, 1, 1, testDate, ts("11:00"), ts("12:00"), nil)
		require.NoError(t, err)
		assert.Nil(t, b)
	})
}

func TestAvailableStaff(t *testing.T) {
	ctx := context.Background()

	t.Run("picks first in roster order when all free", func(t *testing.T) {
		e := newTestEngine(nil, twoBarbers(), &fakeBookingRepo{})

		opt, err := e.AvailableStaff(ctx, 1, testDate, ts("10:00"), ts("11:00"), nil)
		require.NoError(t, err)
		require.NotNil(t, opt)
		assert.Equal(t, int64(1), opt.StaffID)
		assert.Equal(t, "Alice", opt.StaffName)
	})

	t.Run("skips busy staff", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 1, "10:00", "11:00"),
		}}
		e := newTestEngine(nil, twoBarbers(), repo)

		opt, err := e.AvailableStaff(ctx, 1, testDate, ts("10:00"), ts("11:00"), nil)
		require.NoError(t, err)
		require.NotNil(t, opt)
		assert.Equal(t, int64(2), opt.StaffID)
	})

	t.Run("nil when everyone is busy", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 1, "10:00", "11:00"),
			booking(2, 2, "10:00", "11:00"),
		}}
		e := newTestEngine(nil, twoBarbers(), repo)

		opt, err := e.AvailableStaff(ctx, 1, testDate, ts("10:00"), ts("11:00"), nil)
		require.NoError(t, err)
		assert.Nil(t, opt)
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		e := newTestEngine(nil, twoBarbers(), &fakeBookingRepo{})

		first, err := e.AvailableStaff(ctx, 1, testDate, ts("14:00"), ts("14:30"), nil)
		require.NoError(t, err)
		second, err := e.AvailableStaff(ctx, 1, testDate, ts("14:00"), ts("14:30"), nil)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestFindAlternatives(t *testing.T) {
	ctx := context.Background()

	t.Run("exact time with another staff comes first", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 1, "10:00", "10:30"),
		}}
		e := newTestEngine(mondayHours("09:00", "18:00"), twoBarbers(), repo)

		var preferred int64 = 1
		alts, err := e.FindAlternatives(ctx, 1, testDate, ts("10:00"), 30, &preferred, nil)
		require.NoError(t, err)
		require.NotEmpty(t, alts)

		assert.Equal(t, int64(2), alts[0].StaffID)
		assert.Equal(t, ts("10:00"), alts[0].StartTime)
		assert.Equal(t, ts("10:30"), alts[0].EndTime)
	})

	t.Run("offsets follow the closeness ladder", func(t *testing.T) {
		// Один мастер, запрошенное время занято: остаются только сдвиги
		staff := &fakeStaffRepo{staff: []*domain.Staff{
			{ID: 1, StoreID: 1, Name: "Alice", IsActive: true},
		}}
		repo := &fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 1, "10:00", "10:30"),
		}}
		e := newTestEngine(mondayHours("09:00", "18:00"), staff, repo)

		alts, err := e.FindAlternatives(ctx, 1, testDate, ts("10:00"), 30, nil, nil)
		require.NoError(t, err)
		require.Len(t, alts, 4)
		assert.Equal(t, ts("09:30"), alts[0].StartTime)
		assert.Equal(t, ts("10:30"), alts[1].StartTime)
		assert.Equal(t, ts("09:00"), alts[2].StartTime)
		assert.Equal(t, ts("11:00"), alts[3].StartTime)
	})

	t.Run("candidates outside business hours are dropped", func(t *testing.T) {
		staff := &fakeStaffRepo{staff: []*domain.Staff{
			{ID: 1, StoreID: 1, Name: "Alice", IsActive: true},
		}}
		repo := &fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 1, "09:00", "09:30"),
		}}
		e := newTestEngine(mondayHours("09:00", "18:00"), staff, repo)

		alts, err := e.FindAlternatives(ctx, 1, testDate, ts("09:00"), 30, nil, nil)
		require.NoError(t, err)
		// -30 и -60 выпадают за открытие, остаются +30 и +60
		require.Len(t, alts, 2)
		assert.Equal(t, ts("09:30"), alts[0].StartTime)
		assert.Equal(t, ts("10:00"), alts[1].StartTime)
	})

	t.Run("result is capped", func(t *testing.T) {
		staff := &fakeStaffRepo{staff: []*domain.Staff{
			{ID: 1, StoreID: 1, Name: "Alice", IsActive: true},
			{ID: 2, StoreID: 1, Name: "Bob", IsActive: true},
			{ID: 3, StoreID: 1, Name: "Carol", IsActive: true},
		}}
		e := newTestEngine(mondayHours("09:00", "18:00"), staff, &fakeBookingRepo{})

		alts, err := e.FindAlternatives(ctx, 1, testDate, ts("10:00"), 30, nil, nil)
		require.NoError(t, err)
		assert.Len(t, alts, domain.MaxAlternatives)
	})

	t.Run("closed day yields no alternatives", func(t *testing.T) {
		e := newTestEngine(nil, twoBarbers(), &fakeBookingRepo{})

		alts, err := e.FindAlternatives(ctx, 1, testDate, ts("10:00"), 30, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, alts)
	})

	t.Run("offsets past midnight are skipped", func(t *testing.T) {
		staff := &fakeStaffRepo{staff: []*domain.Staff{
			{ID: 1, StoreID: 1, Name: "Alice", IsActive: true},
		}}
		hours := &fakeHoursRepo{byWeekday: map[int]*domain.BusinessHours{
			1: {StoreID: 1, Weekday: 1, OpenTime: ts("00:00"), CloseTime: ts("24:00")},
		}}
		repo := &fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 1, "23:30", "24:00"),
		}}
		e := newTestEngine(hours, staff, repo)

		alts, err := e.FindAlternatives(ctx, 1, testDate, ts("23:30"), 30, nil, nil)
		require.NoError(t, err)
		// +30 и +60 вылезают за сутки, -30 и -60 валидны
		require.Len(t, alts, 2)
		assert.Equal(t, ts("23:00"), alts[0].StartTime)
		assert.Equal(t, ts("22:30"), alts[1].StartTime)
	})
}
