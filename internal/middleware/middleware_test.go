package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pollbase/internal/domain"
	"pollbase/internal/ratelimit"
	"pollbase/internal/service/auth"
	"pollbase/pkg/logger"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name:     "cdn header preferred",
			headers:  map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Real-IP": "2.2.2.2", "X-Forwarded-For": "3.3.3.3"},
			expected: "1.1.1.1",
		},
		{
			name:     "real ip next",
			headers:  map[string]string{"X-Real-IP": "2.2.2.2", "X-Forwarded-For": "3.3.3.3"},
			expected: "2.2.2.2",
		},
		{
			name:     "first forwarded-for entry",
			headers:  map[string]string{"X-Forwarded-For": " 3.3.3.3 , 4.4.4.4"},
			expected: "3.3.3.3",
		},
		{
			name:     "no headers collapses to unknown",
			headers:  map[string]string{},
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.expected {
				t.Errorf("ClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	expected := map[string]string{
		"X-Frame-Options":           "DENY",
		"X-Content-Type-Options":    "nosniff",
		"Referrer-Policy":           "strict-origin-when-cross-origin",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	}
	for header, want := range expected {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.New(ratelimit.NewMemoryStore(), logger.NewNop())
	handler := RateLimit(limiter, ratelimit.ClassPollCreation, logger.NewNop())(okHandler())

	doRequest := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/polls", nil)
		r.Header.Set("X-Real-IP", "5.5.5.5")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec
	}

	for i := 0; i < 3; i++ {
		rec := doRequest()
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Limit") != "3" {
			t.Errorf("request %d: X-RateLimit-Limit = %q, want 3", i+1, rec.Header().Get("X-RateLimit-Limit"))
		}
	}

	rec := doRequest()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("request 4: status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("request 4: Retry-After header missing")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("request 4: X-RateLimit-Remaining = %q, want 0", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRequireAdmin(t *testing.T) {
	roles := auth.NewAllowlistResolver([]string{"admin@example.com"})
	handler := RequireAdmin(roles, logger.NewNop())(okHandler())

	tests := []struct {
		name     string
		identity *domain.Identity
		wantCode int
	}{
		{
			name:     "admin allowed",
			identity: &domain.Identity{ID: "1", Email: "admin@example.com"},
			wantCode: http.StatusOK,
		},
		{
			name:     "regular user denied",
			identity: &domain.Identity{ID: "2", Email: "user@example.com"},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "unauthenticated denied",
			identity: nil,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/admin/polls", nil)
			if tt.identity != nil {
				ctx := context.WithValue(r.Context(), IdentityContextKey, tt.identity)
				r = r.WithContext(ctx)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}
