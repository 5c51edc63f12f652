package middleware

import (
	"net/http"

	"pollbase/internal/domain"
	"pollbase/internal/service/auth"
	"pollbase/pkg/errors"
	"pollbase/pkg/logger"
)

// RequireAdmin creates a middleware that denies requests whose identity
// the role resolver does not mark as admin. The denial is the same
// generic forbidden error regardless of why the check failed. Must run
// after Auth so the identity is in context.
func RequireAdmin(roles auth.RoleResolver, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFrom(r)
			if roles.Resolve(identity) != domain.RoleAdmin {
				if identity != nil {
					logger.WithField("user_id", identity.ID).Warn("Admin access denied")
				}
				WriteError(w, errors.NewForbiddenError(), logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
