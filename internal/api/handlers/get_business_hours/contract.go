package get_business_hours

import (
	"context"

	"github.com/barberbook/booking-service/internal/service/businesshours/models"
)

type BusinessHoursService interface {
	GetWeek(ctx context.Context, storeID int64) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
