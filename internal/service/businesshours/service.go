package businesshours

import (
	"context"
	"fmt"

	"github.com/barberbook/booking-service/internal/service/businesshours/models"
)

// Service сервис графика работы магазинов
type Service struct {
	hoursRepo HoursRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса графика работы
func NewService(hoursRepo HoursRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		hoursRepo: hoursRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetWeek получает график работы магазина.
// Отсутствующие в ответе дни недели трактуются клиентами как закрытые.
func (s *Service) GetWeek(ctx context.Context, storeID int64) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: fetching business hours for store=%d", storeID)

	week, err := s.hoursRepo.GetWeek(ctx, storeID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for store=%d: %v", storeID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(storeID, week), nil
}

// ReplaceWeek полностью заменяет график магазина. Замена атомарна:
// читатели не увидят магазин с наполовину обновленным графиком.
// Доступно только менеджерам.
func (s *Service) ReplaceWeek(ctx context.Context, req *models.ReplaceWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("ReplaceWeek: replacing business hours for store=%d by user=%d", req.StoreID, req.UserID)

	if !req.IsManager {
		s.logger.Warn("ReplaceWeek: access denied for user=%d to store=%d", req.UserID, req.StoreID)
		return nil, ErrAccessDenied
	}

	week := models.ToDomainWeek(req.StoreID, req.Days)
	if err := validateWeek(week); err != nil {
		s.logger.Warn("ReplaceWeek: validation failed for store=%d: %v", req.StoreID, err)
		return nil, err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.hoursRepo.ReplaceWeek(txCtx, req.StoreID, week)
	})
	if err != nil {
		s.logger.Error("ReplaceWeek: failed to replace hours for store=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: ReplaceWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeek: successfully replaced business hours for store=%d", req.StoreID)
	return models.FromDomainWeek(req.StoreID, week), nil
}
