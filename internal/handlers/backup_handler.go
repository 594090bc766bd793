package handlers

import (
	"net/http"

	"fiado-backend/internal/services"
	"fiado-backend/pkg/utils"
)

type BackupHandler struct {
	Service *services.BackupService
}

func NewBackupHandler(s *services.BackupService) *BackupHandler {
	return &BackupHandler{Service: s}
}

// TriggerBackup copies the store file to the backup directory on demand.
// POST /api/backup
func (h *BackupHandler) TriggerBackup(w http.ResponseWriter, r *http.Request) {
	path, err := h.Service.Run(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"backup_file": path})
}
