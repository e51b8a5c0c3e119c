package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberbook/booking-service/internal/domain"
	catalogRepo "github.com/barberbook/booking-service/internal/infra/storage/catalog"
	staffRepo "github.com/barberbook/booking-service/internal/infra/storage/staff"
	"github.com/barberbook/booking-service/internal/scheduling"
	"github.com/barberbook/booking-service/pkg/ptr"
	"github.com/barberbook/booking-service/pkg/types"
)

// UseCase use case получения календаря слотов.
// Перечисляет решетку слотов по окну работы магазина и помечает каждый
// слот доступностью для каждого мастера. Выдача - снимок на момент чтения,
// создание бронирования перепроверяет доступность транзакционно.
type UseCase struct {
	serviceRepo ServiceRepository
	staffRepo   StaffRepository
	bookingRepo BookingRepository
	engine      SchedulingEngine
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	bookingRepo BookingRepository,
	engine SchedulingEngine,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo: serviceRepo,
		staffRepo:   staffRepo,
		bookingRepo: bookingRepo,
		engine:      engine,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: store=%d, service=%d, date=%s",
		req.StoreID, req.ServiceID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.StoreID, req.ServiceID)
	if errors.Is(err, catalogRepo.ErrServiceNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return nil, ErrServiceNotFound
	}
	if !service.HasValidDuration() {
		uc.logger.Warn("GetAvailableSlots: service id=%d has invalid duration %d", service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration out of range", ErrInvalidInput)
	}

	window, err := uc.engine.DayWindow(ctx, req.StoreID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve day window: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve day window: %v", ErrInternal, err)
	}
	if window == nil {
		return &Response{Date: req.Date, IsOpen: false, Slots: []Slot{}}, nil
	}

	staffList, err := uc.resolveStaff(ctx, req)
	if err != nil {
		return nil, err
	}

	slotStarts := scheduling.SlotTimes(window, service.DurationMinutes, domain.DefaultSlotStepMinutes)

	slots := make([]Slot, 0, len(slotStarts)*len(staffList))
	for _, s := range staffList {
		bookings, err := uc.bookingRepo.GetByStaffAndDate(ctx, domain.StaffDayFilter{
			StoreID: req.StoreID,
			StaffID: s.ID,
			Date:    req.Date,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get bookings for staff id=%d: %v", s.ID, err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		for _, start := range slotStarts {
			end, err := start.AddMinutes(service.DurationMinutes)
			if err != nil {
				continue
			}
			slots = append(slots, Slot{
				StaffID:     s.ID,
				StaffName:   s.Name,
				StartTime:   start,
				EndTime:     end,
				IsAvailable: !overlapsAny(bookings, start, end),
			})
		}
	}

	return &Response{
		Date:      req.Date,
		IsOpen:    true,
		OpenTime:  ptr.Ptr(window.Open),
		CloseTime: ptr.Ptr(window.Close),
		Slots:     slots,
	}, nil
}

// resolveStaff возвращает мастеров для календаря: запрошенного или всех активных
func (uc *UseCase) resolveStaff(ctx context.Context, req *Request) ([]*domain.Staff, error) {
	if req.StaffID == nil {
		staffList, err := uc.staffRepo.ListActiveByStore(ctx, req.StoreID)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list staff: %v", err)
			return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
		}
		return staffList, nil
	}

	staff, err := uc.staffRepo.GetByID(ctx, req.StoreID, *req.StaffID)
	if errors.Is(err, staffRepo.ErrStaffNotFound) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", *req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		return nil, ErrStaffNotFound
	}

	return []*domain.Staff{staff}, nil
}

func overlapsAny(bookings []*domain.Booking, start, end types.TimeString) bool {
	for _, b := range bookings {
		if !b.CountsForConflicts() {
			continue
		}
		if types.Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StoreID <= 0 {
		return fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
