package middleware

import (
	"net/http"
	"strconv"
	"time"

	"pollbase/internal/ratelimit"
	"pollbase/pkg/errors"
	"pollbase/pkg/logger"
)

// RateLimit creates a middleware enforcing the given limit class per
// client. Limit headers are set on every response; denied requests get a
// 429 with a Retry-After.
func RateLimit(limiter *ratelimit.Limiter, class ratelimit.Class, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := limiter.Check(r.Context(), ClientIP(r), class)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetTime.Unix(), 10))

			if !res.Allowed {
				retryAfter := int64(time.Until(res.ResetTime).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))

				logger.WithFields(map[string]interface{}{
					"class":     string(class),
					"client_ip": ClientIP(r),
					"path":      r.URL.Path,
				}).Warn("Rate limit exceeded")

				WriteError(w, errors.NewRateLimitError(retryAfter), logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
