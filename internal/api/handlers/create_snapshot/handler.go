package create_snapshot

import (
	"net/http"

	"github.com/Fuzuri/CleanIT/internal/api/handlers"
)

// SnapshotResponse HTTP response model
type SnapshotResponse struct {
	Filename string `json:"filename"`
}

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

// Handle POST /api/v1/admin/backup/snapshots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filename, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/backup/snapshots - Failed to create snapshot: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/backup/snapshots - Snapshot created: %s", filename)
	handlers.RespondJSON(w, http.StatusCreated, SnapshotResponse{Filename: filename})
}
