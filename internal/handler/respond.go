package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"pollbase/pkg/errors"
	"pollbase/pkg/logger"
)

// respondJSON writes data as a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error as a structured JSON response. Errors that
// are not typed AppErrors are treated as internal and replaced with a
// generic message; their detail is only logged.
func respondError(w http.ResponseWriter, err error, log *logger.Logger) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		log.WithError(err).Error("Unclassified handler error")
		appErr = errors.NewInternalError("Something went wrong. Please try again.", err)
	}
	if appErr.Internal != nil {
		log.WithError(appErr.Internal).Error("Request failed")
	}

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	respondJSON(w, appErr.StatusCode, response)
}

// decodeJSON parses the request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.NewValidationError("Invalid request body", nil)
	}
	return nil
}
