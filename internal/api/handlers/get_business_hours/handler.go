package get_business_hours

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberbook/booking-service/internal/api/handlers"
)

const msgInvalidStoreID = "invalid store ID"

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

// Handle GET /api/v1/stores/{storeId}/business-hours
// День без записи в ответе означает, что магазин в этот день закрыт
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/business-hours - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	week, err := h.service.GetWeek(r.Context(), storeID)
	if err != nil {
		h.logger.Error("GET /stores/{id}/business-hours - Failed: store_id=%d, error=%v", storeID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stores/{id}/business-hours - Retrieved schedule: store_id=%d, days=%d",
		storeID, len(week.Days))
	handlers.RespondJSON(w, http.StatusOK, week)
}
