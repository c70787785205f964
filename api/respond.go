package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/yunanda/portfolio-backend/errs"
	"gorm.io/gorm"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		r.WriteJSON(w, map[string]interface{}{
			"error":   "Internal Server Error",
			"message": "An unexpected error occurred",
			"status":  "error",
		})
		return
	}

	response := map[string]interface{}{
		"error":  apiErr.Error(),
		"status": "error",
	}

	// Add field information if present (for validation errors)
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}

	// Add full error chain for debugging (especially useful for database errors)
	if apiErr.Cause != nil {
		response["cause"] = apiErr.GetFullError()
	}

	w.WriteHeader(apiErr.StatusCode)
	r.WriteJSON(w, response)
}

// WriteValidationError writes a standardized validation error response
func (r Responder) WriteValidationError(w http.ResponseWriter, err error) {
	apiErr := errs.NewValidationError(err.Error(), err)
	w.WriteHeader(apiErr.StatusCode)
	r.WriteJSON(w, map[string]interface{}{
		"error":   "Validation error",
		"details": apiErr.Details,
		"status":  "validation_error",
	})
}

// wrapDatabaseError wraps a database error with context information.
// Record misses become plain not-found responses instead of 500s, and
// unique index violations surface as 409s. Slug columns carry the
// only unique indexes in the schema.
func wrapDatabaseError(operation, entity string, cause error) error {
	if errors.Is(cause, gorm.ErrRecordNotFound) {
		return errs.NewNotFound(entity)
	}
	if errs.IsUniqueViolation(cause) {
		return errs.NewUniqueConstraintViolationError(entity, "slug", cause)
	}
	return errs.NewDatabaseError(operation, entity, cause)
}
