package handlers

import (
	"errors"
	"net/http"

	"fiado-backend/internal/models"
	"fiado-backend/pkg/utils"
)

// writeServiceError maps service errors onto HTTP statuses: validation
// failures are the caller's fault, unknown customers are 404, everything
// else is a storage failure surfaced as 500 (never swallowed).
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrCustomerNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrNameRequired),
		errors.Is(err, models.ErrNegativeLimit):
		utils.Error(w, http.StatusBadRequest, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}
