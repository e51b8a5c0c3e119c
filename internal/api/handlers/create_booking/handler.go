package create_booking

import (
	"errors"
	"net/http"

	"github.com/barberbook/booking-service/internal/api/handlers"
	"github.com/barberbook/booking-service/internal/api/middleware"
	createBooking "github.com/barberbook/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgMissingUserID      = "missing user ID"
	msgInvalidInput       = "invalid booking data"
	msgInvalidBookingDate = "booking date is in the past"
	msgTooLateToBook      = "too late to book this time"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Клиент - аутентифицированный пользователь (middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: customer_id=%d, store_id=%d: %v",
				customerID, req.StoreID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Booking date in the past: customer_id=%d, store_id=%d",
				customerID, req.StoreID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: customer_id=%d, store_id=%d",
				customerID, req.StoreID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, store_id=%d, error=%v",
				customerID, req.StoreID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Конфликт - не ошибка, а ответ 409 с альтернативами
	if result.Conflict != nil {
		h.logger.Info("POST /bookings - Booking conflict: customer_id=%d, store_id=%d, type=%s",
			customerID, req.StoreID, result.Conflict.Type)
		handlers.RespondJSON(w, http.StatusConflict, FromUseCaseConflict(result.Conflict))
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%d, store_id=%d",
		result.Booking.ID, customerID, req.StoreID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseBooking(result.Booking))
}
