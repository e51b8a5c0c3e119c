package get_user_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberbook/booking-service/internal/api/handlers"
	"github.com/barberbook/booking-service/internal/api/middleware"
	"github.com/barberbook/booking-service/internal/service/bookings"
	"github.com/barberbook/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidUserID = "invalid user ID"
	msgMissingUserID = "missing user ID"
	msgForbidden     = "access denied"
	msgInvalidStatus = "invalid booking status"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/bookings?status=confirmed
// Историю видит сам клиент либо менеджер
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetUserID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if userID != targetUserID && !middleware.GetIsManager(r.Context()) {
		h.logger.Warn("GET /users/{id}/bookings - Access denied: target_user_id=%d, user_id=%d",
			targetUserID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetCustomerBookingsRequest{CustomerID: targetUserID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetCustomerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/bookings - Invalid status filter: user_id=%d", targetUserID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/bookings - Failed to get bookings: user_id=%d, error=%v",
				targetUserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/bookings - Retrieved %d bookings: user_id=%d",
		len(result.Bookings), targetUserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
