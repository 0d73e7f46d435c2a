package handlers

import (
	"errors"
	"net/http"

	"billing-backend/internal/models"
	"billing-backend/pkg/utils"
)

// writeServiceError maps domain error kinds onto HTTP status codes. Every
// domain failure is recoverable at the caller; nothing here is fatal.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrDuplicate), errors.Is(err, models.ErrAlreadyRegistered):
		status = http.StatusConflict
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidPrice):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidReading),
		errors.Is(err, models.ErrInvalidReadingState),
		errors.Is(err, models.ErrMeterMismatch),
		errors.Is(err, models.ErrNoBalance),
		errors.Is(err, models.ErrAmountMismatch):
		status = http.StatusUnprocessableEntity
	}

	utils.Error(w, status, err.Error())
}
