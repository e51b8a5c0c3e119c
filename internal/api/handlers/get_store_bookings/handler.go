package get_store_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberbook/booking-service/internal/api/handlers"
	"github.com/barberbook/booking-service/internal/api/middleware"
	"github.com/barberbook/booking-service/internal/service/bookings"
)

const (
	msgInvalidStoreID = "invalid store ID"
	msgInvalidQuery   = "invalid filter parameters"
	msgMissingUserID  = "missing user ID"
	msgForbidden      = "access denied"
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

// Handle GET /api/v1/stores/{storeId}/bookings?staffId=&startDate=&endDate=&status=&includeInactive=
// Список бронирований магазина доступен только менеджеру
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/bookings - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /stores/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := parseQuery(r, storeID, userID, middleware.GetIsManager(r.Context()))
	if err != nil {
		h.logger.Warn("GET /stores/{id}/bookings - Invalid query: store_id=%d: %v", storeID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetStoreBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /stores/{id}/bookings - Access denied: store_id=%d, user_id=%d",
				storeID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /stores/{id}/bookings - Invalid filter: store_id=%d", storeID)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /stores/{id}/bookings - Failed to get bookings: store_id=%d, error=%v",
				storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stores/{id}/bookings - Retrieved %d bookings: store_id=%d",
		len(result.Bookings), storeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
