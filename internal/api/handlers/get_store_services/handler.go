package get_store_services

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberbook/booking-service/internal/api/handlers"
)

const msgInvalidStoreID = "invalid store ID"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/services - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	services, err := h.service.ListStoreServices(r.Context(), storeID)
	if err != nil {
		h.logger.Error("GET /stores/{id}/services - Failed: store_id=%d, error=%v", storeID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stores/{id}/services - Retrieved %d services: store_id=%d",
		len(services.Services), storeID)
	handlers.RespondJSON(w, http.StatusOK, services)
}
