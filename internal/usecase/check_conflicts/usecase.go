package check_conflicts

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberbook/booking-service/internal/domain"
	catalogRepo "github.com/barberbook/booking-service/internal/infra/storage/catalog"
	staffRepo "github.com/barberbook/booking-service/internal/infra/storage/staff"
	"github.com/barberbook/booking-service/pkg/ptr"
	"github.com/barberbook/booking-service/pkg/types"
)

// UseCase use case проверки конфликтов бронирования.
// Последовательность проверок фиксирована: услуга -> часы работы ->
// занятость мастера. Срабатывает первая, результат - данные, не ошибка.
// Проверка только читает; гонку проверка-затем-вставка закрывает
// create_booking, повторяя те же проверки внутри сериализуемой транзакции.
type UseCase struct {
	serviceRepo ServiceRepository
	staffRepo   StaffRepository
	engine      SchedulingEngine
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	engine SchedulingEngine,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo: serviceRepo,
		staffRepo:   staffRepo,
		engine:      engine,
		logger:      logger,
	}
}

// Execute выполняет проверку конфликтов для запрошенного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflicts: store=%d, service=%d, date=%s, time=%s",
		req.StoreID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflicts: validation failed: %v", err)
		return nil, err
	}

	// 1. Услуга: существует и активна
	service, err := uc.serviceRepo.GetByID(ctx, req.StoreID, req.ServiceID)
	if errors.Is(err, catalogRepo.ErrServiceNotFound) {
		return conflictResponse(domain.ConflictServiceUnavailable,
			fmt.Sprintf("service %d is not offered by this store", req.ServiceID), nil), nil
	}
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return conflictResponse(domain.ConflictServiceUnavailable,
			fmt.Sprintf("service %q is no longer offered", service.Name), nil), nil
	}
	if !service.HasValidDuration() {
		uc.logger.Warn("CheckConflicts: service id=%d has invalid duration %d", service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration out of range", ErrInvalidInput)
	}

	// 2. Конец интервала выводится из длительности услуги
	end, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		return conflictResponse(domain.ConflictOutsideBusinessHours,
			fmt.Sprintf("service of %d minutes starting at %s runs past midnight",
				service.DurationMinutes, req.StartTime), nil), nil
	}

	// 3. Окно работы магазина
	window, err := uc.engine.DayWindow(ctx, req.StoreID, req.Date)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to resolve day window: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve day window: %v", ErrInternal, err)
	}
	if window == nil {
		return conflictResponse(domain.ConflictOutsideBusinessHours,
			fmt.Sprintf("store is closed on %s", req.Date.Format(domain.DateFormat)), nil), nil
	}
	if !window.Contains(req.StartTime, end) {
		return conflictResponse(domain.ConflictOutsideBusinessHours,
			fmt.Sprintf("requested time %s-%s is outside business hours %s-%s",
				req.StartTime, end, window.Open, window.Close), nil), nil
	}

	// 4. Занятость мастера
	if req.StaffID != nil {
		return uc.checkNamedStaff(ctx, req, service, end)
	}
	return uc.checkAnyStaff(ctx, req, service, end)
}

// checkNamedStaff проверяет конкретного запрошенного мастера
func (uc *UseCase) checkNamedStaff(ctx context.Context, req *Request, service *domain.Service, end types.TimeString) (*Response, error) {
	staff, err := uc.staffRepo.GetByID(ctx, req.StoreID, *req.StaffID)
	if errors.Is(err, staffRepo.ErrStaffNotFound) {
		alternatives, altErr := uc.findAlternatives(ctx, req, service, req.StaffID)
		if altErr != nil {
			return nil, altErr
		}
		return conflictResponse(domain.ConflictStaffUnavailable,
			fmt.Sprintf("staff %d does not work at this store", *req.StaffID), alternatives), nil
	}
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to get staff id=%d: %v", *req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		alternatives, altErr := uc.findAlternatives(ctx, req, service, req.StaffID)
		if altErr != nil {
			return nil, altErr
		}
		return conflictResponse(domain.ConflictStaffUnavailable,
			fmt.Sprintf("staff %q is not currently taking bookings", staff.Name), alternatives), nil
	}

	conflicting, err := uc.engine.ConflictingBooking(ctx, req.StoreID, staff.ID, req.Date, req.StartTime, end, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to check staff id=%d: %v", staff.ID, err)
		return nil, fmt.Errorf("%w: failed to check staff availability: %v", ErrInternal, err)
	}
	if conflicting != nil {
		alternatives, altErr := uc.findAlternatives(ctx, req, service, req.StaffID)
		if altErr != nil {
			return nil, altErr
		}
		return conflictResponse(domain.ConflictStaffUnavailable,
			fmt.Sprintf("staff %q is already booked %s-%s",
				staff.Name, conflicting.StartTime, conflicting.EndTime), alternatives), nil
	}

	return &Response{
		StaffID:   ptr.Ptr(staff.ID),
		StaffName: ptr.Ptr(staff.Name),
		EndTime:   ptr.Ptr(end),
	}, nil
}

// checkAnyStaff подбирает первого свободного мастера
func (uc *UseCase) checkAnyStaff(ctx context.Context, req *Request, service *domain.Service, end types.TimeString) (*Response, error) {
	option, err := uc.engine.AvailableStaff(ctx, req.StoreID, req.Date, req.StartTime, end, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to find available staff: %v", err)
		return nil, fmt.Errorf("%w: failed to find available staff: %v", ErrInternal, err)
	}
	if option == nil {
		alternatives, altErr := uc.findAlternatives(ctx, req, service, nil)
		if altErr != nil {
			return nil, altErr
		}
		return conflictResponse(domain.ConflictTimeOverlap,
			fmt.Sprintf("no staff available %s-%s", req.StartTime, end), alternatives), nil
	}

	return &Response{
		StaffID:   ptr.Ptr(option.StaffID),
		StaffName: ptr.Ptr(option.StaffName),
		EndTime:   ptr.Ptr(end),
	}, nil
}

func (uc *UseCase) findAlternatives(ctx context.Context, req *Request, service *domain.Service, preferredStaffID *int64) ([]domain.Alternative, error) {
	alternatives, err := uc.engine.FindAlternatives(ctx, req.StoreID, req.Date, req.StartTime,
		service.DurationMinutes, preferredStaffID, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to find alternatives: %v", err)
		return nil, fmt.Errorf("%w: failed to find alternatives: %v", ErrInternal, err)
	}
	return alternatives, nil
}
