package bulk_update_bookings

import (
	"errors"
	"net/http"

	"github.com/Fuzuri/CleanIT/internal/api/handlers"
	"github.com/Fuzuri/CleanIT/internal/service/bookings"
	"github.com/Fuzuri/CleanIT/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidAction      = "action must be one of: mark_paid, cancel, delete"
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

// Handle POST /api/v1/admin/bookings/bulk
// Операция best-effort: ответ 200 даже при частичных сбоях,
// неудавшиеся ID перечислены в теле ответа.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.BulkUpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.BulkUpdate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidAction):
			h.logger.Warn("POST /admin/bookings/bulk - Invalid action %q", req.Action)
			handlers.RespondBadRequest(w, msgInvalidAction)

		default:
			h.logger.Error("POST /admin/bookings/bulk - Failed to run bulk action: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/bulk - Action %s: processed=%d, failed=%d",
		req.Action, result.Processed, len(result.FailedIDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
