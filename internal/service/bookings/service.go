package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberbook/booking-service/internal/domain"
	bookingRepo "github.com/barberbook/booking-service/internal/infra/storage/booking"
	"github.com/barberbook/booking-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение истории, отмена и
// смена статуса. Создание и перенос живут в usecase-слое - им нужны
// проверки доступности и транзакции.
type Service struct {
	bookingRepo BookingRepository
	notifier    Notifier
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только свое бронирование; менеджеру доступны все.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isManager bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.CustomerID != userID && !isManager {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента.
// Опционально фильтрует по статусу.
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetStoreBookings получает бронирования магазина с фильтрацией по мастеру,
// периоду и статусу. Доступно только менеджерам.
func (s *Service) GetStoreBookings(ctx context.Context, req *models.GetStoreBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStoreBookings: fetching bookings for store=%d by user=%d", req.StoreID, req.UserID)

	if !req.IsManager {
		s.logger.Warn("GetStoreBookings: access denied for user=%d to store=%d", req.UserID, req.StoreID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStoreBookings: invalid filter for store=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByStoreWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStoreBookings: repository error for store=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: GetStoreBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStoreBookings: successfully fetched %d bookings for store=%d", len(bookings), req.StoreID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование (soft delete, слот освобождается сразу).
// Клиент отменяет только свое бронирование, менеджер - любое.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.CustomerID != req.UserID && !req.IsManager {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	s.metrics.IncBookingCancelled()

	// Уведомление best-effort
	s.notifier.BookingCancelled(ctx, booking, req.CancellationReason)

	return nil
}

// UpdateStatus обновляет статус бронирования (например, completed после
// визита). Доступно только менеджерам.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	if !req.IsManager {
		s.logger.Warn("UpdateStatus: access denied for user=%d", req.UserID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}
