package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different types of application errors
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "validation"
	ErrorTypeUnauthenticated ErrorType = "unauthenticated"
	ErrorTypeForbidden       ErrorType = "forbidden"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeRateLimit       ErrorType = "rate_limit"
	ErrorTypeUpstream        ErrorType = "upstream"
	ErrorTypeInternal        ErrorType = "internal"
)

// AppError is a structured application error. Validation and rate-limit
// errors are safe to show to callers verbatim; forbidden and upstream
// errors carry only a fixed generic message, with the underlying cause
// kept in Internal for server-side logging.
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"status_code"`
	Internal   error                  `json:"-"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Internal.Error())
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// NewValidationError creates an error carrying field-level messages.
func NewValidationError(message string, fieldErrors []string) *AppError {
	var details map[string]interface{}
	if len(fieldErrors) > 0 {
		details = map[string]interface{}{"errors": fieldErrors}
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// NewUnauthenticatedError creates an error for missing or invalid credentials.
func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthenticated,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a generic authorization error. The message is
// always the same regardless of whether the resource exists or is owned
// by someone else, so callers cannot probe for either.
func NewForbiddenError() *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Message:    "Forbidden",
		StatusCode: http.StatusForbidden,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewRateLimitError creates an error for a denied rate-limited request.
// retryAfter is the number of seconds until the window resets.
func NewRateLimitError(retryAfter int64) *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimit,
		Message:    "Too many requests. Please try again later.",
		StatusCode: http.StatusTooManyRequests,
		Details:    map[string]interface{}{"retry_after": retryAfter},
	}
}

// NewUpstreamError wraps a platform-layer failure behind a fixed caller-facing
// message. The original error is retained for logging only.
func NewUpstreamError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeUpstream,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Internal:   internal,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Internal:   internal,
	}
}

// AsAppError extracts an *AppError from err if there is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ErrorResponse represents the JSON error response
type ErrorResponse struct {
	Error struct {
		Type      ErrorType              `json:"type"`
		Message   string                 `json:"message"`
		Details   map[string]interface{} `json:"details,omitempty"`
		Timestamp string                 `json:"timestamp"`
	} `json:"error"`
}
