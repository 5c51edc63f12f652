package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pollbase/internal/middleware"
	"pollbase/internal/service"
	"pollbase/pkg/logger"
)

// AdminHandler handles moderation endpoints
type AdminHandler struct {
	pollService *service.PollService
	log         *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(pollService *service.PollService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{pollService: pollService, log: log}
}

// ListPolls handles GET /api/admin/polls
func (h *AdminHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.pollService.List(r.Context())
	if err != nil {
		respondError(w, err, h.log)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"polls": polls})
}

// DeletePoll handles DELETE /api/admin/polls/{pollId}
func (h *AdminHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "pollId")
	if err := h.pollService.AdminDelete(r.Context(), middleware.IdentityFrom(r), id); err != nil {
		respondError(w, err, h.log)
		return
	}

	h.log.WithField("poll_id", id).Info("Poll removed by moderator")
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
