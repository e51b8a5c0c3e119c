package get_store_services

import (
	"context"

	"github.com/barberbook/booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	ListStoreServices(ctx context.Context, storeID int64) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
