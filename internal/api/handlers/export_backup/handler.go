package export_backup

import (
	"net/http"

	"github.com/Fuzuri/CleanIT/internal/api/handlers"
)

type Handler struct {
	service BackupService
	logger  Logger
}

func NewHandler(service BackupService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/backup/export
// Отдает все таблицы одним JSON документом, ключ на таблицу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Export(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/backup/export - Failed to export: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/backup/export - Export completed, %d tables", len(doc))
	handlers.RespondJSON(w, http.StatusOK, doc)
}
