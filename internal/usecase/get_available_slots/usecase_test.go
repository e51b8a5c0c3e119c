package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbook/booking-service/internal/domain"
	catalogRepo "github.com/barberbook/booking-service/internal/infra/storage/catalog"
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

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64, serviceID int64) (*domain.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
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
	active := make([]*domain.Staff, 0, len(f.staff))
	for _, s := range f.staff {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return active, nil
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

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByStaffAndDate(_ context.Context, filter domain.StaffDayFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.StaffID == filter.StaffID && b.Status != domain.StatusCancelled {
			result = append(result, b)
		}
	}
	return result, nil
}

// Monday
var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func newUseCase(bookings ...*domain.Booking) *UseCase {
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		10: {ID: 10, StoreID: 1, Name: "Haircut", DurationMinutes: 30, Price: 25, IsActive: true},
		12: {ID: 12, StoreID: 1, Name: "Full day", DurationMinutes: 480, Price: 300, IsActive: true},
	}}
	staffList := &fakeStaffRepo{staff: []*domain.Staff{
		{ID: 1, StoreID: 1, Name: "Alice", IsActive: true},
		{ID: 2, StoreID: 1, Name: "Bob", IsActive: true},
	}}
	hoursList := &fakeHoursRepo{byWeekday: map[int]*domain.BusinessHours{
		1: {StoreID: 1, Weekday: 1, OpenTime: ts("10:00"), CloseTime: ts("18:00")},
	}}
	bookingStore := &fakeBookingRepo{bookings: bookings}

	engine := scheduling.NewEngine(hoursList, staffList, bookingStore, nopLogger{})
	return NewUseCase(services, staffList, bookingStore, engine, nopLogger{})
}

func TestExecute_FullGrid(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		StoreID:   1,
		ServiceID: 10,
		Date:      testDate,
	})
	require.NoError(t, err)
	require.True(t, resp.IsOpen)
	assert.Equal(t, ts("10:00"), *resp.OpenTime)
	assert.Equal(t, ts("18:00"), *resp.CloseTime)

	// 16 слотов по 30 минут на каждого из двух мастеров
	require.Len(t, resp.Slots, 32)
	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable)
	}
}

func TestExecute_BusySlotsMarked(t *testing.T) {
	uc := newUseCase(&domain.Booking{
		ID: 1, StoreID: 1, StaffID: 1, BookingDate: testDate,
		StartTime: ts("10:00"), EndTime: ts("11:00"),
		Status: domain.StatusConfirmed,
	})

	resp, err := uc.Execute(context.Background(), &Request{
		StoreID:   1,
		ServiceID: 10,
		Date:      testDate,
		StaffID:   ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 16)

	for _, slot := range resp.Slots {
		switch slot.StartTime {
		case ts("10:00"), ts("10:30"):
			assert.False(t, slot.IsAvailable, "slot %s should be busy", slot.StartTime)
		default:
			assert.True(t, slot.IsAvailable, "slot %s should be free", slot.StartTime)
		}
	}
}

func TestExecute_ServiceFillsWholeDay(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		StoreID:   1,
		ServiceID: 12, // 480 минут в окне 10:00-18:00
		Date:      testDate,
		StaffID:   ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, ts("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, ts("18:00"), resp.Slots[0].EndTime)
	assert.True(t, resp.Slots[0].IsAvailable)
}

func TestExecute_ClosedDay(t *testing.T) {
	uc := newUseCase()

	sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		StoreID:   1,
		ServiceID: 10,
		Date:      sunday,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsOpen)
	assert.Empty(t, resp.Slots)
}

func TestExecute_UnknownService(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{
		StoreID:   1,
		ServiceID: 999,
		Date:      testDate,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_UnknownStaff(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{
		StoreID:   1,
		ServiceID: 10,
		Date:      testDate,
		StaffID:   ptr.Ptr(int64(77)),
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
