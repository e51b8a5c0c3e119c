package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberbook/booking-service/internal/api/handlers"
	getAvailableSlots "github.com/barberbook/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidStoreID  = "invalid store ID"
	msgInvalidQuery    = "invalid query parameters, expected serviceId and date=YYYY-MM-DD"
	msgServiceNotFound = "service not found"
	msgStaffNotFound   = "staff member not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/available-slots?serviceId=1&date=2026-03-02&staffId=2
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/available-slots - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	req, err := parseQuery(r, storeID)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/available-slots - Invalid query: store_id=%d: %v", storeID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /stores/{id}/available-slots - Service not found: store_id=%d, service_id=%d",
				storeID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /stores/{id}/available-slots - Staff not found: store_id=%d", storeID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /stores/{id}/available-slots - Invalid input: store_id=%d: %v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /stores/{id}/available-slots - Failed: store_id=%d, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stores/{id}/available-slots - Retrieved %d slots: store_id=%d, is_open=%t",
		len(result.Slots), storeID, result.IsOpen)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
