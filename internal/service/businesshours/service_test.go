package businesshours

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/internal/service/businesshours/models"
	"github.com/barberbook/booking-service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type memHoursRepo struct {
	week []*domain.BusinessHours
}

func (m *memHoursRepo) GetWeek(_ context.Context, _ int64) ([]*domain.BusinessHours, error) {
	return m.week, nil
}

func (m *memHoursRepo) ReplaceWeek(_ context.Context, _ int64, week []*domain.BusinessHours) error {
	m.week = week
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestReplaceWeek(t *testing.T) {
	repo := &memHoursRepo{}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	t.Run("replaces hours", func(t *testing.T) {
		resp, err := svc.ReplaceWeek(context.Background(), &models.ReplaceWeekRequest{
			UserID:    1,
			IsManager: true,
			StoreID:   1,
			Days: []models.DayHours{
				{Weekday: 1, OpenTime: ptr.Ptr("09:00"), CloseTime: ptr.Ptr("18:00")},
				{Weekday: 0, IsClosed: true},
			},
		})
		require.NoError(t, err)
		require.Len(t, resp.Days, 2)
		assert.Len(t, repo.week, 2)
	})

	t.Run("rejects non-manager", func(t *testing.T) {
		_, err := svc.ReplaceWeek(context.Background(), &models.ReplaceWeekRequest{
			UserID:  2,
			StoreID: 1,
			Days:    []models.DayHours{{Weekday: 0, IsClosed: true}},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("rejects duplicate weekday", func(t *testing.T) {
		_, err := svc.ReplaceWeek(context.Background(), &models.ReplaceWeekRequest{
			UserID:    1,
			IsManager: true,
			StoreID:   1,
			Days: []models.DayHours{
				{Weekday: 1, OpenTime: ptr.Ptr("09:00"), CloseTime: ptr.Ptr("18:00")},
				{Weekday: 1, IsClosed: true},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects open after close", func(t *testing.T) {
		_, err := svc.ReplaceWeek(context.Background(), &models.ReplaceWeekRequest{
			UserID:    1,
			IsManager: true,
			StoreID:   1,
			Days: []models.DayHours{
				{Weekday: 1, OpenTime: ptr.Ptr("18:00"), CloseTime: ptr.Ptr("09:00")},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("allows midnight close", func(t *testing.T) {
		_, err := svc.ReplaceWeek(context.Background(), &models.ReplaceWeekRequest{
			UserID:    1,
			IsManager: true,
			StoreID:   1,
			Days: []models.DayHours{
				{Weekday: 5, OpenTime: ptr.Ptr("10:00"), CloseTime: ptr.Ptr("24:00")},
			},
		})
		assert.NoError(t, err)
	})
}

func TestGetWeek(t *testing.T) {
	repo := &memHoursRepo{week: []*domain.BusinessHours{
		{StoreID: 1, Weekday: 1, OpenTime: "09:00", CloseTime: "18:00"},
		{StoreID: 1, Weekday: 0, IsClosed: true},
	}}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	resp, err := svc.GetWeek(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, "09:00", *resp.Days[0].OpenTime)
	assert.Nil(t, resp.Days[1].OpenTime)
}
