package middleware

import (
	"context"
	"net/http"
	"strings"

	"pollbase/internal/domain"
	"pollbase/internal/service"
	"pollbase/pkg/errors"
	"pollbase/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

// IdentityContextKey is the key for the acting identity in context
const IdentityContextKey ContextKey = "identity"

// Auth creates a middleware that requires a valid platform token.
func Auth(authService service.AuthService, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, appErr := bearerToken(r)
			if appErr != nil {
				WriteError(w, appErr, logger)
				return
			}

			ctx := r.Context()
			identity, err := authService.ValidateToken(ctx, token)
			if err != nil {
				logger.WithError(err).Debug("Token validation failed")
				WriteError(w, errors.NewUnauthenticatedError("Invalid or expired token"), logger)
				return
			}

			ctx = context.WithValue(ctx, IdentityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth validates a token when one is supplied but lets requests
// without one through unauthenticated. Used on routes where anonymous
// access may be permitted by deployment policy.
func OptionalAuth(authService service.AuthService, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, appErr := bearerToken(r)
			if appErr != nil {
				WriteError(w, appErr, logger)
				return
			}

			ctx := r.Context()
			identity, err := authService.ValidateToken(ctx, token)
			if err != nil {
				WriteError(w, errors.NewUnauthenticatedError("Invalid or expired token"), logger)
				return
			}

			ctx = context.WithValue(ctx, IdentityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom extracts the acting identity from the request context.
// Returns nil for unauthenticated requests.
func IdentityFrom(r *http.Request) *domain.Identity {
	if identity, ok := r.Context().Value(IdentityContextKey).(*domain.Identity); ok {
		return identity
	}
	return nil
}

func bearerToken(r *http.Request) (string, *errors.AppError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.NewUnauthenticatedError("Authorization header is required")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.NewUnauthenticatedError("Invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", errors.NewUnauthenticatedError("Token is required")
	}
	return token, nil
}
