package add_service

import (
	"errors"
	"net/http"

	"github.com/Fuzuri/CleanIT/internal/api/handlers"
	"github.com/Fuzuri/CleanIT/internal/service/catalog"
	"github.com/Fuzuri/CleanIT/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "name is required and base price must not be negative"
)

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

// Handle POST /api/v1/admin/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AddServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.AddService(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /admin/services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/services - Failed to add service: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/services - Service created: service_id=%d, name=%q", created.ID, created.Name)
	handlers.RespondJSON(w, http.StatusCreated, created)
}
