package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbook/booking-service/internal/domain"
	bookingRepo "github.com/barberbook/booking-service/internal/infra/storage/booking"
	hoursRepo "github.com/barberbook/booking-service/internal/infra/storage/hours"
	staffRepo "github.com/barberbook/booking-service/internal/infra/storage/staff"
	"github.com/barberbook/booking-service/internal/scheduling"
	"github.com/barberbook/booking-service/pkg/ptr"
	"github.com/barberbook/booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type memBookingStore struct {
	bookings map[int64]*domain.Booking
}

func (m *memBookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (m *memBookingStore) Reschedule(_ context.Context, id int64, staffID int64, staffName string, date time.Time, startTime, endTime types.TimeString) error {
	b, ok := m.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.StaffID = staffID
	b.StaffName = staffName
	b.BookingDate = date
	b.StartTime = startTime
	b.EndTime = endTime
	return nil
}

func (m *memBookingStore) GetByStaffAndDate(_ context.Context, filter domain.StaffDayFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.StaffID != filter.StaffID || b.Status == domain.StatusCancelled {
			continue
		}
		if filter.ExcludeBookingID != nil && b.ID == *filter.ExcludeBookingID {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeStaffRepo struct {
	staff []*domain.Staff
}

func (f *fakeStaffRepo) GetByID(_ context.Context, _ int64, staffID int64) (*domain.Staff, error) {
	for _, s := range f.staff {
		if s.ID == staffID {
			return s, nil
		}
	}
	return nil, staffRepo.ErrStaffNotFound
}

func (f *fakeStaffRepo) ListActiveByStore(_ context.Context, _ int64) ([]*domain.Staff, error) {
	return f.staff, nil
}

type fakeHoursRepo struct {
	byWeekday map[int]*domain.BusinessHours
}

func (f *fakeHoursRepo) GetByStoreAndWeekday(_ context.Context, _ int64, weekday int) (*domain.BusinessHours, error) {
	bh, ok := f.byWeekday[weekday]
	if !ok {
		return nil, hoursRepo.ErrHoursNotFound
	}
	return bh, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	rescheduled []*domain.Booking
}

func (f *fakeNotifier) BookingRescheduled(_ context.Context, b *domain.Booking) {
	f.rescheduled = append(f.rescheduled, b)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

// Monday
var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func confirmedBooking(id, staffID, customerID int64, start, end string) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		StoreID:         1,
		StaffID:         staffID,
		ServiceID:       10,
		CustomerID:      customerID,
		BookingDate:     testDate,
		StartTime:       ts(start),
		EndTime:         ts(end),
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
		StaffName:       "Alice",
		ServiceName:     "Haircut",
	}
}

type fixture struct {
	store    *memBookingStore
	notifier *fakeNotifier
	uc       *UseCase
}

func newFixture(bookings ...*domain.Booking) *fixture {
	store := &memBookingStore{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		store.bookings[b.ID] = b
	}

	staffList := &fakeStaffRepo{staff: []*domain.Staff{
		{ID: 1, StoreID: 1, Name: "Alice", IsActive: true},
		{ID: 2, StoreID: 1, Name: "Bob", IsActive: true},
	}}
	hoursList := &fakeHoursRepo{byWeekday: map[int]*domain.BusinessHours{
		1: {StoreID: 1, Weekday: 1, OpenTime: ts("09:00"), CloseTime: ts("18:00")},
	}}
	notifier := &fakeNotifier{}

	engine := scheduling.NewEngine(hoursList, staffList, store, nopLogger{})
	uc := NewUseCase(store, staffList, engine, fakeTxManager{}, notifier, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	return &fixture{store: store, notifier: notifier, uc: uc}
}

func TestExecute_MovesBooking(t *testing.T) {
	f := newFixture(confirmedBooking(1, 1, 100, "10:00", "10:30"))

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID:  1,
		CustomerID: 100,
		Date:       testDate,
		StartTime:  ts("14:00"),
	})
	require.NoError(t, err)
	require.Nil(t, resp.Conflict)
	require.NotNil(t, resp.Booking)

	assert.Equal(t, ts("14:00"), resp.Booking.StartTime)
	assert.Equal(t, ts("14:30"), resp.Booking.EndTime)
	assert.Equal(t, int64(1), resp.Booking.StaffID)
	assert.Len(t, f.notifier.rescheduled, 1)

	stored := f.store.bookings[1]
	assert.Equal(t, ts("14:00"), stored.StartTime)
}

func TestExecute_OverlapWithSelfIsAllowed(t *testing.T) {
	f := newFixture(confirmedBooking(1, 1, 100, "10:00", "10:30"))

	// Сдвиг на 15 минут пересекается со старым слотом того же бронирования
	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID:  1,
		CustomerID: 100,
		Date:       testDate,
		StartTime:  ts("10:15"),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Conflict)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, ts("10:15"), resp.Booking.StartTime)
}

func TestExecute_ConflictWithOtherBooking(t *testing.T) {
	f := newFixture(
		confirmedBooking(1, 1, 100, "10:00", "10:30"),
		confirmedBooking(2, 1, 101, "14:00", "14:30"),
	)

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID:  1,
		CustomerID: 100,
		Date:       testDate,
		StartTime:  ts("14:00"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, string(domain.ConflictStaffUnavailable), resp.Conflict.Type)
	assert.NotEmpty(t, resp.Conflict.Alternatives)

	// Исходное бронирование не тронуто
	assert.Equal(t, ts("10:00"), f.store.bookings[1].StartTime)
}

func TestExecute_MoveToAnotherStaff(t *testing.T) {
	f := newFixture(
		confirmedBooking(1, 1, 100, "10:00", "10:30"),
		confirmedBooking(2, 1, 101, "14:00", "14:30"),
	)

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID:  1,
		CustomerID: 100,
		Date:       testDate,
		StartTime:  ts("14:00"),
		StaffID:    ptr.Ptr(int64(2)),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(2), resp.Booking.StaffID)
	assert.Equal(t, "Bob", resp.Booking.StaffName)
}

func TestExecute_NotOwner(t *testing.T) {
	f := newFixture(confirmedBooking(1, 1, 100, "10:00", "10:30"))

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID:  1,
		CustomerID: 999,
		Date:       testDate,
		StartTime:  ts("14:00"),
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExecute_CancelledBooking(t *testing.T) {
	cancelled := confirmedBooking(1, 1, 100, "10:00", "10:30")
	cancelled.Status = domain.StatusCancelled
	f := newFixture(cancelled)

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID:  1,
		CustomerID: 100,
		Date:       testDate,
		StartTime:  ts("14:00"),
	})
	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID:  404,
		CustomerID: 100,
		Date:       testDate,
		StartTime:  ts("14:00"),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
