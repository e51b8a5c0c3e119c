package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	bookingRepo "github.com/barberbook/booking-service/internal/infra/storage/booking"
	staffRepo "github.com/barberbook/booking-service/internal/infra/storage/staff"
	"github.com/barberbook/booking-service/pkg/types"
)

// UseCase use case переноса бронирования.
// Повторяет проверки создания внутри сериализуемой транзакции, но исключает
// само переносимое бронирование из проверок пересечений: перенос на время,
// пересекающееся со старым слотом того же бронирования, конфликтом не является.
type UseCase struct {
	bookingRepo  BookingRepository
	staffRepo    StaffRepository
	engine       SchedulingEngine
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	engine SchedulingEngine,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		engine:       engine,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, customer=%d, date=%s, time=%s",
		req.BookingID, req.CustomerID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	if err := validateNotInPast(req.Date, req.StartTime, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("RescheduleBooking: date validation failed: %v", err)
		return nil, err
	}

	var rescheduled *domain.Booking
	var conflictResult *domain.ConflictResult

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflictResult = nil

		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.CustomerID != req.CustomerID {
			return ErrPermissionDenied
		}
		if !booking.CanBeRescheduled() {
			return fmt.Errorf("%w: status is %s", ErrCannotReschedule, booking.Status)
		}

		// Длительность наследуется от исходного бронирования
		end, err := req.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			conflictResult = domain.Conflict(domain.ConflictOutsideBusinessHours,
				fmt.Sprintf("service of %d minutes starting at %s runs past midnight",
					booking.DurationMinutes, req.StartTime))
			return nil
		}

		window, err := uc.engine.DayWindow(txCtx, booking.StoreID, req.Date)
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

		target, result, err := uc.resolveStaff(txCtx, req, booking, end)
		if err != nil {
			return err
		}
		if result != nil {
			conflictResult = result
			return nil
		}

		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, target.StaffID, target.StaffName,
			req.Date, req.StartTime, end); err != nil {
			return fmt.Errorf("%w: failed to reschedule booking: %v", ErrInternal, err)
		}

		moved := *booking
		moved.StaffID = target.StaffID
		moved.StaffName = target.StaffName
		moved.BookingDate = req.Date
		moved.StartTime = req.StartTime
		moved.EndTime = end
		rescheduled = &moved
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrBookingNotFound) && !errors.Is(err, ErrPermissionDenied) && !errors.Is(err, ErrCannotReschedule) {
			uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
		}
		return nil, err
	}

	if conflictResult != nil {
		uc.logger.Warn("RescheduleBooking: conflict type=%s detail=%s", conflictResult.Type, conflictResult.Detail)
		return &Response{Conflict: toConflictData(conflictResult)}, nil
	}

	uc.logger.Info("RescheduleBooking: successfully moved booking id=%d to %s %s",
		rescheduled.ID, req.Date.Format(domain.DateFormat), req.StartTime)

	uc.notifier.BookingRescheduled(ctx, rescheduled)

	return &Response{Booking: toBookingData(rescheduled)}, nil
}

// resolveStaff выбирает мастера для нового слота: запрошенного, либо
// текущего мастера бронирования
func (uc *UseCase) resolveStaff(ctx context.Context, req *Request, booking *domain.Booking, end types.TimeString) (*domain.StaffOption, *domain.ConflictResult, error) {
	targetStaffID := booking.StaffID
	targetStaffName := booking.StaffName

	if req.StaffID != nil && *req.StaffID != booking.StaffID {
		staff, err := uc.staffRepo.GetByID(ctx, booking.StoreID, *req.StaffID)
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			result, err := uc.conflictWithAlternatives(ctx, req, booking,
				fmt.Sprintf("staff %d does not work at this store", *req.StaffID), req.StaffID)
			return nil, result, err
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if !staff.IsActive {
			result, err := uc.conflictWithAlternatives(ctx, req, booking,
				fmt.Sprintf("staff %q is not currently taking bookings", staff.Name), req.StaffID)
			return nil, result, err
		}
		targetStaffID = staff.ID
		targetStaffName = staff.Name
	}

	conflicting, err := uc.engine.ConflictingBooking(ctx, booking.StoreID, targetStaffID,
		req.Date, req.StartTime, end, &booking.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to check staff availability: %v", ErrInternal, err)
	}
	if conflicting != nil {
		result, err := uc.conflictWithAlternatives(ctx, req, booking,
			fmt.Sprintf("staff %q is already booked %s-%s",
				targetStaffName, conflicting.StartTime, conflicting.EndTime), &targetStaffID)
		return nil, result, err
	}

	return &domain.StaffOption{StaffID: targetStaffID, StaffName: targetStaffName}, nil, nil
}

func (uc *UseCase) conflictWithAlternatives(ctx context.Context, req *Request, booking *domain.Booking, detail string, preferredStaffID *int64) (*domain.ConflictResult, error) {
	result := domain.Conflict(domain.ConflictStaffUnavailable, detail)

	alternatives, err := uc.engine.FindAlternatives(ctx, booking.StoreID, req.Date, req.StartTime,
		booking.DurationMinutes, preferredStaffID, &booking.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find alternatives: %v", ErrInternal, err)
	}
	result.Alternatives = alternatives

	return result, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateNotInPast проверяет, что новые дата и время еще не прошли
func validateNotInPast(date time.Time, startTime types.TimeString, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	if dateOnly.Equal(nowOnly) && startTime.IsBefore(types.NewTimeString(now)) {
		return ErrInvalidDate
	}

	return nil
}
