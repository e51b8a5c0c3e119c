package update_business_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberbook/booking-service/internal/api/handlers"
	"github.com/barberbook/booking-service/internal/api/middleware"
	"github.com/barberbook/booking-service/internal/service/businesshours"
	"github.com/barberbook/booking-service/internal/service/businesshours/models"
)

const (
	msgInvalidStoreID     = "invalid store ID"
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
	msgForbidden          = "access denied"
	msgInvalidSchedule    = "invalid weekly schedule"
)

// UpdateBusinessHoursRequest HTTP request model
type UpdateBusinessHoursRequest struct {
	Days []models.DayHours `json:"days"`
}

type Handler struct {
	service BusinessHoursService
	logger  Logger
}

func NewHandler(service BusinessHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/stores/{storeId}/business-hours
// Полная замена графика, доступна только менеджеру
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /stores/{id}/business-hours - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	var req UpdateBusinessHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /stores/{id}/business-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /stores/{id}/business-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.ReplaceWeekRequest{
		UserID:    userID,
		IsManager: middleware.GetIsManager(r.Context()),
		StoreID:   storeID,
		Days:      req.Days,
	}

	week, err := h.service.ReplaceWeek(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, businesshours.ErrAccessDenied):
			h.logger.Warn("PUT /stores/{id}/business-hours - Access denied: store_id=%d, user_id=%d",
				storeID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, businesshours.ErrInvalidInput):
			h.logger.Warn("PUT /stores/{id}/business-hours - Invalid schedule: store_id=%d: %v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /stores/{id}/business-hours - Failed: store_id=%d, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /stores/{id}/business-hours - Schedule replaced: store_id=%d, days=%d, user_id=%d",
		storeID, len(week.Days), userID)
	handlers.RespondJSON(w, http.StatusOK, week)
}
