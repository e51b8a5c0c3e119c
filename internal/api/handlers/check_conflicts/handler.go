package check_conflicts

import (
	"errors"
	"net/http"

	"github.com/barberbook/booking-service/internal/api/handlers"
	checkConflicts "github.com/barberbook/booking-service/internal/usecase/check_conflicts"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgInvalidInput       = "invalid request data"
)

type Handler struct {
	useCase CheckConflictsUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/conflict-check
// Всегда отвечает 200: конфликт - содержимое ответа, а не статус
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/conflict-check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/conflict-check - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkConflicts.ErrInvalidInput):
			h.logger.Warn("POST /bookings/conflict-check - Invalid input: store_id=%d: %v", req.StoreID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/conflict-check - Check failed: store_id=%d, error=%v", req.StoreID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/conflict-check - Checked: store_id=%d, has_conflict=%t",
		req.StoreID, result.HasConflict)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
