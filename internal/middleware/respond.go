package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"pollbase/pkg/errors"
	"pollbase/pkg/logger"
)

// WriteError writes a structured error response to the client.
func WriteError(w http.ResponseWriter, appErr *errors.AppError, logger *logger.Logger) {
	if appErr.Internal != nil {
		logger.WithError(appErr.Internal).Error("Request error")
	}

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.WithError(err).Error("Failed to encode error response")
	}
}
