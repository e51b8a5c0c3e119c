package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberbook/booking-service/internal/domain"
	catalogRepo "github.com/barberbook/booking-service/internal/infra/storage/catalog"
	staffRepo "github.com/barberbook/booking-service/internal/infra/storage/staff"
	"github.com/barberbook/booking-service/pkg/types"
)

// UseCase use case создания бронирования.
// Проверки доступности и вставка выполняются одной сериализуемой
// транзакцией: две конкурирующие заявки на один слот не могут обе пройти
// проверку и обе записаться. Чтения календаря внутри транзакции блокируют
// строки дня (FOR UPDATE).
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	staffRepo    StaffRepository
	engine       SchedulingEngine
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	engine SchedulingEngine,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		staffRepo:    staffRepo,
		engine:       engine,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, store=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.StoreID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата и время не в прошлом
	if err := validateNotInPast(req.Date, req.StartTime, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Услуга: существует и активна
	service, err := uc.serviceRepo.GetByID(ctx, req.StoreID, req.ServiceID)
	if errors.Is(err, catalogRepo.ErrServiceNotFound) {
		return uc.conflict(domain.Conflict(domain.ConflictServiceUnavailable,
			fmt.Sprintf("service %d is not offered by this store", req.ServiceID))), nil
	}
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return uc.conflict(domain.Conflict(domain.ConflictServiceUnavailable,
			fmt.Sprintf("service %q is no longer offered", service.Name))), nil
	}
	if !service.HasValidDuration() {
		uc.logger.Warn("CreateBooking: service id=%d has invalid duration %d", service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration out of range", ErrInvalidInput)
	}

	// 4. Конец интервала выводится из длительности услуги
	end, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		return uc.conflict(domain.Conflict(domain.ConflictOutsideBusinessHours,
			fmt.Sprintf("service of %d minutes starting at %s runs past midnight",
				service.DurationMinutes, req.StartTime))), nil
	}

	var created *domain.Booking
	var conflictResult *domain.ConflictResult

	// 5. Проверки и вставка - одна сериализуемая транзакция
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflictResult = nil

		// 5.1. Окно работы магазина
		window, err := uc.engine.DayWindow(txCtx, req.StoreID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to resolve day window: %v", ErrInternal, err)
		}
		if window == nil {
			conflictResult = domain.Conflict(domain.ConflictOutsideBusinessHours,
				fmt.Sprintf("store is closed on %s", req.Date.Format(domain.DateFormat)))
			return nil
		}
		if !window.Contains(req.StartTime, end) {
			conflictResult = domain.Conflict(domain.ConflictOutsideBusinessHours,
				fmt.Sprintf("requested time %s-%s is outside business hours %s-%s",
					req.StartTime, end, window.Open, window.Close))
			return nil
		}

		// 5.2. Выбор мастера: запрошенный или первый свободный
		assigned, result, err := uc.resolveStaff(txCtx, req, service, end)
		if err != nil {
			return err
		}
		if result != nil {
			conflictResult = result
			return nil
		}

		// 5.3. Создаем бронирование с денормализацией данных
		booking := &domain.Booking{
			StoreID:         req.StoreID,
			StaffID:         assigned.StaffID,
			ServiceID:       req.ServiceID,
			CustomerID:      req.CustomerID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			EndTime:         end,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			StaffName:       assigned.StaffName,
			CustomerName:    req.CustomerName,
			CustomerLineID:  req.CustomerLineID,
			CustomerEmail:   req.CustomerEmail,
			Notes:           req.Notes,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, err
	}

	if conflictResult != nil {
		return uc.conflict(conflictResult), nil
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d staff=%d", created.ID, created.StaffID)
	uc.metrics.IncBookingCreated()

	// Уведомления после коммита, best-effort
	uc.notifier.BookingCreated(ctx, created)

	return &Response{Booking: toBookingData(created)}, nil
}

// resolveStaff выбирает мастера для бронирования. Возвращает либо выбор,
// либо конфликт с альтернативами.
func (uc *UseCase) resolveStaff(ctx context.Context, req *Request, service *domain.Service, end types.TimeString) (*domain.StaffOption, *domain.ConflictResult, error) {
	if req.StaffID == nil {
		option, err := uc.engine.AvailableStaff(ctx, req.StoreID, req.Date, req.StartTime, end, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to find available staff: %v", ErrInternal, err)
		}
		if option == nil {
			result, err := uc.conflictWithAlternatives(ctx, req, service, domain.ConflictTimeOverlap,
				fmt.Sprintf("no staff available %s-%s", req.StartTime, end), nil)
			return nil, result, err
		}
		return option, nil, nil
	}

	staff, err := uc.staffRepo.GetByID(ctx, req.StoreID, *req.StaffID)
	if errors.Is(err, staffRepo.ErrStaffNotFound) {
		result, err := uc.conflictWithAlternatives(ctx, req, service, domain.ConflictStaffUnavailable,
			fmt.Sprintf("staff %d does not work at this store", *req.StaffID), req.StaffID)
		return nil, result, err
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		result, err := uc.conflictWithAlternatives(ctx, req, service, domain.ConflictStaffUnavailable,
			fmt.Sprintf("staff %q is not currently taking bookings", staff.Name), req.StaffID)
		return nil, result, err
	}

	conflicting, err := uc.engine.ConflictingBooking(ctx, req.StoreID, staff.ID, req.Date, req.StartTime, end, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to check staff availability: %v", ErrInternal, err)
	}
	if conflicting != nil {
		result, err := uc.conflictWithAlternatives(ctx, req, service, domain.ConflictStaffUnavailable,
			fmt.Sprintf("staff %q is already booked %s-%s",
				staff.Name, conflicting.StartTime, conflicting.EndTime), req.StaffID)
		return nil, result, err
	}

	return &domain.StaffOption{StaffID: staff.ID, StaffName: staff.Name}, nil, nil
}

func (uc *UseCase) conflictWithAlternatives(ctx context.Context, req *Request, service *domain.Service, t domain.ConflictType, detail string, preferredStaffID *int64) (*domain.ConflictResult, error) {
	result := domain.Conflict(t, detail)

	alternatives, err := uc.engine.FindAlternatives(ctx, req.StoreID, req.Date, req.StartTime,
		service.DurationMinutes, preferredStaffID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find alternatives: %v", ErrInternal, err)
	}
	result.Alternatives = alternatives

	return result, nil
}

func (uc *UseCase) conflict(result *domain.ConflictResult) *Response {
	uc.logger.Warn("CreateBooking: conflict type=%s detail=%s", result.Type, result.Detail)
	uc.metrics.IncBookingConflict(string(result.Type))
	return &Response{Conflict: toConflictData(result)}
}
