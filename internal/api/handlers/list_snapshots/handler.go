package list_snapshots

import (
	"net/http"

	"github.com/Fuzuri/CleanIT/internal/api/handlers"
	backupService "github.com/Fuzuri/CleanIT/internal/service/backup"
)

// SnapshotListResponse HTTP response model
type SnapshotListResponse struct {
	Snapshots []backupService.SnapshotInfo `json:"snapshots"`
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

// Handle GET /api/v1/admin/backup/snapshots
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	snapshots, err := h.service.ListSnapshots()
	if err != nil {
		h.logger.Error("GET /admin/backup/snapshots - Failed to list snapshots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SnapshotListResponse{Snapshots: snapshots})
}
