package handler

import (
	"net/http"

	"pollbase/internal/domain"
	"pollbase/internal/middleware"
	"pollbase/internal/service"
	"pollbase/pkg/logger"
)

// AuthHandler handles login and registration requests
type AuthHandler struct {
	authService service.AuthService
	log         *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	session, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.log)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
		"error":   nil,
	})
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	session, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.log)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"session": session,
		"error":   nil,
	})
}

// Profile handles GET /api/auth/me
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r)
	respondJSON(w, http.StatusOK, identity)
}
