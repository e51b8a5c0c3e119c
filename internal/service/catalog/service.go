package catalog

import (
	"context"
	"fmt"

	"github.com/barberbook/booking-service/internal/service/catalog/models"
)

// Service сервис каталога услуг. Виджет записи сначала выбирает услугу,
// потом запрашивает слоты - поэтому список публичный и только активный
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// ListStoreServices получает активные услуги магазина
func (s *Service) ListStoreServices(ctx context.Context, storeID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("ListStoreServices: fetching services for store=%d", storeID)

	services, err := s.serviceRepo.ListActiveByStore(ctx, storeID)
	if err != nil {
		s.logger.Error("ListStoreServices: repository error for store=%d: %v", storeID, err)
		return nil, fmt.Errorf("%w: ListStoreServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListStoreServices: successfully fetched %d services for store=%d", len(services), storeID)
	return models.FromDomainServiceList(services), nil
}
