package handlers

import (
	"net/http"

	"fiado-backend/internal/config"
	"fiado-backend/pkg/utils"
)

// SettingsHandler serves the presentation-facing configuration: company
// identity and the cosmetic interface preferences. Read-only; the file is
// edited by hand.
type SettingsHandler struct {
	Cfg *config.Config
}

func NewSettingsHandler(cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{Cfg: cfg}
}

// GetSettings returns company info, the default credit limit and the UI
// preferences.
// GET /api/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"company":              h.Cfg.Company,
		"default_credit_limit": h.Cfg.DefaultCreditLimit,
		"interface":            h.Cfg.Interface,
	})
}
