package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pollbase/internal/domain"
	"pollbase/internal/middleware"
	"pollbase/internal/service"
	"pollbase/pkg/logger"
)

// VoteHandler handles vote casting requests
type VoteHandler struct {
	voteService *service.VoteService
	log         *logger.Logger
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(voteService *service.VoteService, log *logger.Logger) *VoteHandler {
	return &VoteHandler{voteService: voteService, log: log}
}

// Cast handles POST /api/polls/{pollId}/vote
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req domain.VoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}
	req.PollID = chi.URLParam(r, "pollId")

	vote, err := h.voteService.Cast(r.Context(), middleware.IdentityFrom(r), &req)
	if err != nil {
		respondError(w, err, h.log)
		return
	}

	respondJSON(w, http.StatusCreated, vote)
}
