package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberbook/booking-service/internal/api/handlers"
	"github.com/barberbook/booking-service/internal/api/middleware"
	rescheduleBooking "github.com/barberbook/booking-service/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "invalid booking ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgMissingUserID      = "missing user ID"
	msgNotFound           = "booking not found"
	msgForbidden          = "access denied"
	msgCannotReschedule   = "booking cannot be rescheduled"
	msgInvalidInput       = "invalid reschedule data"
	msgInvalidBookingDate = "new booking date is in the past"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, customerID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrPermissionDenied):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Permission denied: booking_id=%d, user_id=%d",
				bookingID, customerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Cannot reschedule: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - New date in the past: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid input: booking_id=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Conflict != nil {
		h.logger.Info("PATCH /bookings/{id}/reschedule - Conflict: booking_id=%d, type=%s",
			bookingID, result.Conflict.Type)
		handlers.RespondJSON(w, http.StatusConflict, FromUseCaseConflict(result.Conflict))
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled: booking_id=%d, user_id=%d",
		bookingID, customerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseBooking(result.Booking))
}
