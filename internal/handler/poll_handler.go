package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pollbase/internal/domain"
	"pollbase/internal/middleware"
	"pollbase/internal/service"
	"pollbase/pkg/logger"
)

// PollHandler handles poll CRUD and results requests
type PollHandler struct {
	pollService *service.PollService
	log         *logger.Logger
}

// NewPollHandler creates a new poll handler
func NewPollHandler(pollService *service.PollService, log *logger.Logger) *PollHandler {
	return &PollHandler{pollService: pollService, log: log}
}

// Create handles POST /api/polls
func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePollRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	poll, err := h.pollService.Create(r.Context(), middleware.IdentityFrom(r), &req)
	if err != nil {
		respondError(w, err, h.log)
		return
	}

	respondJSON(w, http.StatusCreated, poll)
}

// Get handles GET /api/polls/{pollId}
func (h *PollHandler) Get(w http.ResponseWriter, r *http.Request) {
	poll, err := h.pollService.Get(r.Context(), chi.URLParam(r, "pollId"))
	if err != nil {
		respondError(w, err, h.log)
		return
	}

	respondJSON(w, http.StatusOK, poll)
}

// List handles GET /api/polls
func (h *PollHandler) List(w http.ResponseWriter, r *http.Request) {
	polls, err := h.pollService.List(r.Context())
	if err != nil {
		respondError(w, err, h.log)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"polls": polls})
}

// Update handles PUT /api/polls/{pollId}
func (h *PollHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdatePollRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	poll, err := h.pollService.Update(r.Context(), middleware.IdentityFrom(r), chi.URLParam(r, "pollId"), &req)
	if err != nil {
		respondError(w, err, h.log)
		return
	}

	respondJSON(w, http.StatusOK, poll)
}

// Delete handles DELETE /api/polls/{pollId}
func (h *PollHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.pollService.Delete(r.Context(), middleware.IdentityFrom(r), chi.URLParam(r, "pollId")); err != nil {
		respondError(w, err, h.log)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// Results handles GET /api/polls/{pollId}/results
func (h *PollHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.pollService.Results(r.Context(), chi.URLParam(r, "pollId"))
	if err != nil {
		respondError(w, err, h.log)
		return
	}

	respondJSON(w, http.StatusOK, results)
}
