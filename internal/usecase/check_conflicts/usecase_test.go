package check_conflicts

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

// Monday
var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

type fixture struct {
	services *fakeServiceRepo
	staff    *fakeStaffRepo
	hours    *fakeHoursRepo
	bookings *fakeBookingRepo
}

func newFixture() *fixture {
	return &fixture{
		services: &fakeServiceRepo{services: map[int64]*domain.Service{
			10: {ID: 10, StoreID: 1, Name: "Haircut", DurationMinutes: 30, Price: 25, IsActive: true},
			11: {ID: 11, StoreID: 1, Name: "Perm", DurationMinutes: 90, Price: 80, IsActive: false},
		}},
		staff: &fakeStaffRepo{staff: []*domain.Staff{
			{ID: 1, StoreID: 1, Name: "Alice", IsActive: true},
			{ID: 2, StoreID: 1, Name: "Bob", IsActive: true},
		}},
		hours: &fakeHoursRepo{byWeekday: map[int]*domain.BusinessHours{
			1: {StoreID: 1, Weekday: 1, OpenTime: ts("09:00"), CloseTime: ts("18:00")},
		}},
		bookings: &fakeBookingRepo{},
	}
}

func (f *fixture) useCase() *UseCase {
	engine := scheduling.NewEngine(f.hours, f.staff, f.bookings, nopLogger{})
	return NewUseCase(f.services, f.staff, engine, nopLogger{})
}

func confirmedBooking(id, staffID int64, start, end string) *domain.Booking {
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

func TestExecute_NoConflict(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), &Request{
		StoreID:   1,
		ServiceID: 10,
		Date:      testDate,
		StartTime: ts("10:00"),
	})
	require.NoError(t, err)
	require.False(t, resp.HasConflict)

	// Первый по порядку создания мастер и конец = начало + длительность услуги
	require.NotNil(t, resp.StaffID)
	assert.Equal(t, int64(1), *resp.StaffID)
	assert.Equal(t, "Alice", *resp.StaffName)
	assert.Equal(t, ts("10:30"), *resp.EndTime)
}

func TestExecute_ServiceUnavailable(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	t.Run("unknown service", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			StoreID:   1,
			ServiceID: 999,
			Date:      testDate,
			StartTime: ts("10:00"),
		})
		require.NoError(t, err)
		require.True(t, resp.HasConflict)
		assert.Equal(t, string(domain.ConflictServiceUnavailable), resp.ConflictType)
	})

	t.Run("inactive service", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			StoreID:   1,
			ServiceID: 11,
			Date:      testDate,
			StartTime: ts("10:00"),
		})
		require.NoError(t, err)
		require.True(t, resp.HasConflict)
		assert.Equal(t, string(domain.ConflictServiceUnavailable), resp.ConflictType)
		assert.Contains(t, resp.Detail, "Perm")
	})
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	t.Run("closed day", func(t *testing.T) {
		sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		resp, err := uc.Execute(context.Background(), &Request{
			StoreID:   1,
			ServiceID: 10,
			Date:      sunday,
			StartTime: ts("10:00"),
		})
		require.NoError(t, err)
		require.True(t, resp.HasConflict)
		assert.Equal(t, string(domain.ConflictOutsideBusinessHours), resp.ConflictType)
	})

	t.Run("service runs past closing", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			StoreID:   1,
			ServiceID: 10,
			Date:      testDate,
			StartTime: ts("17:45"),
		})
		require.NoError(t, err)
		require.True(t, resp.HasConflict)
		assert.Equal(t, string(domain.ConflictOutsideBusinessHours), resp.ConflictType)
		assert.Contains(t, resp.Detail, "09:00-18:00")
	})

	t.Run("interval ending exactly at close is fine", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			StoreID:   1,
			ServiceID: 10,
			Date:      testDate,
			StartTime: ts("17:30"),
		})
		require.NoError(t, err)
		assert.False(t, resp.HasConflict)
	})
}

func TestExecute_StaffUnavailable(t *testing.T) {
	f := newFixture()
	f.bookings.bookings = []*domain.Booking{
		confirmedBooking(1, 1, "10:00", "10:30"),
	}
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), &Request{
		StoreID:   1,
		ServiceID: 10,
		StaffID:   ptr.Ptr(int64(1)),
		Date:      testDate,
		StartTime: ts("10:00"),
	})
	require.NoError(t, err)
	require.True(t, resp.HasConflict)
	assert.Equal(t, string(domain.ConflictStaffUnavailable), resp.ConflictType)
	assert.Contains(t, resp.Detail, "Alice")
	assert.Contains(t, resp.Detail, "10:00-10:30")

	// Боб свободен на точно запрошенное время - первая альтернатива
	require.NotEmpty(t, resp.Alternatives)
	assert.Equal(t, int64(2), resp.Alternatives[0].StaffID)
	assert.Equal(t, ts("10:00"), resp.Alternatives[0].StartTime)
}

func TestExecute_UnknownStaff(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), &Request{
		StoreID:   1,
		ServiceID: 10,
		StaffID:   ptr.Ptr(int64(99)),
		Date:      testDate,
		StartTime: ts("10:00"),
	})
	require.NoError(t, err)
	require.True(t, resp.HasConflict)
	assert.Equal(t, string(domain.ConflictStaffUnavailable), resp.ConflictType)
	assert.NotEmpty(t, resp.Alternatives)
}

func TestExecute_TimeOverlap(t *testing.T) {
	f := newFixture()
	f.bookings.bookings = []*domain.Booking{
		confirmedBooking(1, 1, "10:00", "10:30"),
		confirmedBooking(2, 2, "10:00", "10:30"),
	}
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), &Request{
		StoreID:   1,
		ServiceID: 10,
		Date:      testDate,
		StartTime: ts("10:00"),
	})
	require.NoError(t, err)
	require.True(t, resp.HasConflict)
	assert.Equal(t, string(domain.ConflictTimeOverlap), resp.ConflictType)

	// Все заняты на запрошенное время, альтернативы - сдвиги
	require.NotEmpty(t, resp.Alternatives)
	for _, alt := range resp.Alternatives {
		assert.NotEqual(t, ts("10:00"), alt.StartTime)
	}
}

func TestExecute_ExcludeSelf(t *testing.T) {
	f := newFixture()
	f.bookings.bookings = []*domain.Booking{
		confirmedBooking(42, 1, "10:00", "10:30"),
	}
	uc := f.useCase()

	// Перенос бронирования на пересекающееся с ним самим время
	resp, err := uc.Execute(context.Background(), &Request{
		StoreID:          1,
		ServiceID:        10,
		StaffID:          ptr.Ptr(int64(1)),
		Date:             testDate,
		StartTime:        ts("10:15"),
		ExcludeBookingID: ptr.Ptr(int64(42)),
	})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
}

func TestExecute_Validation(t *testing.T) {
	uc := newFixture().useCase()

	cases := []struct {
		name string
		req  *Request
	}{
		{"zero store", &Request{ServiceID: 10, Date: testDate, StartTime: ts("10:00")}},
		{"zero service", &Request{StoreID: 1, Date: testDate, StartTime: ts("10:00")}},
		{"zero date", &Request{StoreID: 1, ServiceID: 10, StartTime: ts("10:00")}},
		{"missing time", &Request{StoreID: 1, ServiceID: 10, Date: testDate}},
		{"bad time format", &Request{StoreID: 1, ServiceID: 10, Date: testDate, StartTime: ts("9:3")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
