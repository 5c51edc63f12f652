package middleware

import (
	"net/http"
	"strings"
)

// ClientIP derives the rate-limit identifier for a request. CDN and proxy
// headers are preferred in order; when none is present every client
// collapses onto the single "unknown" bucket, a known weakness of
// un-proxied deployments.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if first := strings.TrimSpace(parts[0]); first != "" {
			return first
		}
	}

	return "unknown"
}
