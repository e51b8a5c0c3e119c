package create_booking

import (
	"context"
	"strings"
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

// memBookingStore хранит бронирования в памяти и обслуживает и Create,
// и выборки движка: созданное бронирование сразу видно проверкам
type memBookingStore struct {
	nextID   int64
	bookings []*domain.Booking
}

func (m *memBookingStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.nextID++
	created := *b
	created.ID = m.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.bookings = append(m.bookings, &created)
	return &created, nil
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

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	created []*domain.Booking
}

func (f *fakeNotifier) BookingCreated(_ context.Context, b *domain.Booking) {
	f.created = append(f.created, b)
}

type fakeMetrics struct {
	created   int
	conflicts map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{conflicts: map[string]int{}}
}

func (f *fakeMetrics) IncBookingCreated() {
	f.created++
}

func (f *fakeMetrics) IncBookingConflict(conflictType string) {
	f.conflicts[conflictType]++
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

type fixture struct {
	store    *memBookingStore
	notifier *fakeNotifier
	metrics  *fakeMetrics
	uc       *UseCase
}

func newFixture() *fixture {
	store := &memBookingStore{}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		10: {ID: 10, StoreID: 1, Name: "Haircut", DurationMinutes: 30, Price: 25, IsActive: true},
	}}
	staffList := &fakeStaffRepo{staff: []*domain.Staff{
		{ID: 1, StoreID: 1, Name: "Alice", IsActive: true},
		{ID: 2, StoreID: 1, Name: "Bob", IsActive: true},
	}}
	hoursList := &fakeHoursRepo{byWeekday: map[int]*domain.BusinessHours{
		1: {StoreID: 1, Weekday: 1, OpenTime: ts("09:00"), CloseTime: ts("18:00")},
	}}
	notifier := &fakeNotifier{}
	metrics := newFakeMetrics()

	engine := scheduling.NewEngine(hoursList, staffList, store, nopLogger{})
	uc := NewUseCase(store, services, staffList, engine, fakeTxManager{}, notifier, metrics, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	return &fixture{store: store, notifier: notifier, metrics: metrics, uc: uc}
}

func validRequest() *Request {
	return &Request{
		StoreID:      1,
		ServiceID:    10,
		CustomerID:   100,
		CustomerName: "Taro",
		Date:         testDate,
		StartTime:    ts("10:00"),
	}
}

func TestExecute_CreatesBooking(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.Nil(t, resp.Conflict)
	require.NotNil(t, resp.Booking)

	b := resp.Booking
	assert.Equal(t, int64(1), b.StaffID) // первый свободный по порядку ростера
	assert.Equal(t, "Alice", b.StaffName)
	assert.Equal(t, ts("10:30"), b.EndTime) // конец = начало + длительность услуги
	assert.Equal(t, 30, b.DurationMinutes)
	assert.Equal(t, "confirmed", b.Status)
	assert.Equal(t, "Haircut", b.ServiceName)
	assert.Equal(t, 25.0, b.ServicePrice)

	require.Len(t, f.notifier.created, 1)
	assert.Equal(t, 1, f.metrics.created)
}

func TestExecute_AutoAssignSkipsBusyStaff(t *testing.T) {
	f := newFixture()

	first, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, first.Booking)
	assert.Equal(t, int64(1), first.Booking.StaffID)

	// Второй запрос на то же время уходит к следующему свободному мастеру
	req := validRequest()
	req.CustomerID = 101
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, second.Booking)
	assert.Equal(t, int64(2), second.Booking.StaffID)
}

func TestExecute_TimeOverlapWhenAllBusy(t *testing.T) {
	f := newFixture()

	for i := 0; i < 2; i++ {
		req := validRequest()
		req.CustomerID = int64(100 + i)
		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, resp.Booking)
	}

	req := validRequest()
	req.CustomerID = 102
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Nil(t, resp.Booking)
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, string(domain.ConflictTimeOverlap), resp.Conflict.Type)
	assert.NotEmpty(t, resp.Conflict.Alternatives)
	assert.Equal(t, 1, f.metrics.conflicts[string(domain.ConflictTimeOverlap)])

	// Конфликт не оставляет записи
	assert.Len(t, f.store.bookings, 2)
}

func TestExecute_NamedStaffBusy(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StaffID = ptr.Ptr(int64(1))
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Booking)

	second := validRequest()
	second.CustomerID = 101
	second.StaffID = ptr.Ptr(int64(1))
	resp, err = f.uc.Execute(context.Background(), second)
	require.NoError(t, err)
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, string(domain.ConflictStaffUnavailable), resp.Conflict.Type)
	assert.Contains(t, resp.Conflict.Detail, "Alice")

	// Боб свободен на точно запрошенное время
	require.NotEmpty(t, resp.Conflict.Alternatives)
	assert.Equal(t, int64(2), resp.Conflict.Alternatives[0].StaffID)
	assert.Equal(t, ts("10:00"), resp.Conflict.Alternatives[0].StartTime)
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Date = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC) // вторник не настроен
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, string(domain.ConflictOutsideBusinessHours), resp.Conflict.Type)
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Date = time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_PastTimeToday(t *testing.T) {
	f := newFixture()
	f.uc.timeProvider = fixedTime{now: time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)}

	req := validRequest() // 10:00, а сейчас 11:00 того же дня
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_NotesTooLong(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Notes = ptr.Ptr(strings.Repeat("x", domain.MaxNotesLength+1))
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
