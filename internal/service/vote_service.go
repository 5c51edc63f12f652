package service

import (
	"context"
	"strings"

	"pollbase/internal/domain"
	"pollbase/internal/repository"
	"pollbase/pkg/errors"
	"pollbase/pkg/logger"
)

// VoteService validates and records ballots. The option index is checked
// against the poll's actual option count here, before the insert, rather
// than being left to the database.
type VoteService struct {
	polls          repository.PollRepository
	votes          repository.VoteRepository
	allowAnonymous bool
	log            *logger.Logger
}

// NewVoteService creates a new vote service. allowAnonymous permits
// ballots without an authenticated identity; the voter id is stored as
// null in that case.
func NewVoteService(polls repository.PollRepository, votes repository.VoteRepository, allowAnonymous bool, log *logger.Logger) *VoteService {
	return &VoteService{polls: polls, votes: votes, allowAnonymous: allowAnonymous, log: log}
}

// Cast records a vote on a poll.
func (s *VoteService) Cast(ctx context.Context, actor *domain.Identity, req *domain.VoteRequest) (*domain.Vote, error) {
	if actor == nil && !s.allowAnonymous {
		return nil, errors.NewUnauthenticatedError("Authentication required")
	}

	if strings.TrimSpace(req.PollID) == "" {
		return nil, errors.NewValidationError("Invalid vote", []string{"Poll id is required"})
	}

	poll, err := s.polls.GetByID(ctx, req.PollID)
	if err != nil {
		s.log.WithError(err).Error("Poll lookup for vote failed")
		return nil, errors.NewUpstreamError("Failed to submit vote. Please try again.", err)
	}
	if poll == nil {
		return nil, errors.NewNotFoundError("Poll not found")
	}

	if req.OptionIndex < 0 || req.OptionIndex >= len(poll.Options) {
		return nil, errors.NewValidationError("Invalid vote", []string{"Selected option does not exist"})
	}

	vote := &domain.Vote{
		PollID:      poll.ID,
		OptionIndex: req.OptionIndex,
	}
	if actor != nil {
		vote.VoterID = &actor.ID
	}

	if err := s.votes.Create(ctx, vote); err != nil {
		s.log.WithError(err).Error("Vote insert failed")
		return nil, errors.NewUpstreamError("Failed to submit vote. Please try again.", err)
	}

	s.log.WithFields(map[string]interface{}{
		"poll_id":      poll.ID,
		"option_index": vote.OptionIndex,
		"anonymous":    vote.VoterID == nil,
	}).Info("Vote recorded")
	return vote, nil
}
