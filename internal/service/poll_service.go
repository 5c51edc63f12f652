package service

import (
	"context"
	"strings"

	"pollbase/internal/domain"
	"pollbase/internal/repository"
	"pollbase/internal/service/auth"
	"pollbase/internal/validation"
	"pollbase/pkg/errors"
	"pollbase/pkg/logger"
)

const listLimit = 100

// PollService orchestrates poll operations: validate input, check the
// acting identity against the poll's owner, then call the platform.
// Ownership denials happen strictly before any mutation and are always
// the same generic error, whether the poll is missing or owned by
// someone else.
type PollService struct {
	polls repository.PollRepository
	votes repository.VoteRepository
	roles auth.RoleResolver
	log   *logger.Logger
}

// NewPollService creates a new poll service
func NewPollService(polls repository.PollRepository, votes repository.VoteRepository, roles auth.RoleResolver, log *logger.Logger) *PollService {
	return &PollService{polls: polls, votes: votes, roles: roles, log: log}
}

// Create validates the request and stores a new poll owned by the actor.
func (s *PollService) Create(ctx context.Context, actor *domain.Identity, req *domain.CreatePollRequest) (*domain.Poll, error) {
	if actor == nil {
		return nil, errors.NewUnauthenticatedError("Authentication required")
	}

	question, options, fieldErrs := validatePollInput(req.Question, req.Options)
	if len(fieldErrs) > 0 {
		return nil, errors.NewValidationError("Invalid poll", fieldErrs)
	}

	poll := &domain.Poll{
		OwnerID:  actor.ID,
		Question: question,
		Options:  options,
	}
	if err := s.polls.Create(ctx, poll); err != nil {
		s.log.WithError(err).Error("Poll creation failed")
		return nil, errors.NewUpstreamError("Failed to create poll. Please try again.", err)
	}

	s.log.WithFields(map[string]interface{}{
		"poll_id": poll.ID,
		"user_id": actor.ID,
	}).Info("Poll created")
	return poll, nil
}

// Get retrieves a single poll.
func (s *PollService) Get(ctx context.Context, id string) (*domain.Poll, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.NewValidationError("Invalid poll", []string{"Poll id is required"})
	}

	poll, err := s.polls.GetByID(ctx, id)
	if err != nil {
		s.log.WithError(err).Error("Poll lookup failed")
		return nil, errors.NewUpstreamError("Failed to load poll. Please try again.", err)
	}
	if poll == nil {
		return nil, errors.NewNotFoundError("Poll not found")
	}
	return poll, nil
}

// List retrieves recent polls.
func (s *PollService) List(ctx context.Context) ([]*domain.Poll, error) {
	polls, err := s.polls.List(ctx, listLimit)
	if err != nil {
		s.log.WithError(err).Error("Poll listing failed")
		return nil, errors.NewUpstreamError("Failed to load polls. Please try again.", err)
	}
	if polls == nil {
		polls = []*domain.Poll{}
	}
	return polls, nil
}

// Update validates the request, verifies ownership, and replaces the
// poll's question and options.
func (s *PollService) Update(ctx context.Context, actor *domain.Identity, id string, req *domain.UpdatePollRequest) (*domain.Poll, error) {
	question, options, fieldErrs := validatePollInput(req.Question, req.Options)
	if len(fieldErrs) > 0 {
		return nil, errors.NewValidationError("Invalid poll", fieldErrs)
	}

	if err := s.authorizeOwner(ctx, actor, id); err != nil {
		return nil, err
	}

	poll := &domain.Poll{
		ID:       id,
		OwnerID:  actor.ID,
		Question: question,
		Options:  options,
	}
	if err := s.polls.Update(ctx, poll); err != nil {
		s.log.WithError(err).Error("Poll update failed")
		return nil, errors.NewUpstreamError("Failed to update poll. Please try again.", err)
	}
	return poll, nil
}

// Delete verifies ownership and removes the poll.
func (s *PollService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	if err := s.authorizeOwner(ctx, actor, id); err != nil {
		return err
	}

	if err := s.polls.Delete(ctx, id); err != nil {
		s.log.WithError(err).Error("Poll deletion failed")
		return errors.NewUpstreamError("Failed to delete poll. Please try again.", err)
	}

	s.log.WithFields(map[string]interface{}{
		"poll_id": id,
		"user_id": actor.ID,
	}).Info("Poll deleted")
	return nil
}

// Results tallies votes per option for a poll.
func (s *PollService) Results(ctx context.Context, id string) (*domain.PollResults, error) {
	poll, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.votes.CountByOption(ctx, poll.ID)
	if err != nil {
		s.log.WithError(err).Error("Vote tally failed")
		return nil, errors.NewUpstreamError("Failed to load results. Please try again.", err)
	}

	results := &domain.PollResults{
		PollID:   poll.ID,
		Question: poll.Question,
		Options:  make([]domain.OptionCount, len(poll.Options)),
	}
	for i, text := range poll.Options {
		results.Options[i] = domain.OptionCount{Index: i, Text: text, Count: counts[i]}
		results.TotalVotes += counts[i]
	}
	return results, nil
}

// AdminDelete removes any poll, restricted to identities the role
// resolver marks as admin.
func (s *PollService) AdminDelete(ctx context.Context, actor *domain.Identity, id string) error {
	if s.roles.Resolve(actor) != domain.RoleAdmin {
		return errors.NewForbiddenError()
	}

	if err := s.polls.Delete(ctx, id); err != nil {
		s.log.WithError(err).Error("Admin poll deletion failed")
		return errors.NewUpstreamError("Failed to delete poll. Please try again.", err)
	}

	s.log.WithFields(map[string]interface{}{
		"poll_id": id,
		"user_id": actor.ID,
	}).Info("Poll deleted by admin")
	return nil
}

// authorizeOwner denies unless the actor owns the poll. Missing polls,
// lookup failures, and ownership mismatches all produce the same generic
// error so callers cannot probe for poll existence.
func (s *PollService) authorizeOwner(ctx context.Context, actor *domain.Identity, id string) error {
	if actor == nil {
		return errors.NewForbiddenError()
	}

	ownerID, err := s.polls.GetOwnerID(ctx, id)
	if err != nil {
		s.log.WithError(err).Error("Ownership lookup failed")
		return errors.NewForbiddenError()
	}
	if ownerID == "" || ownerID != actor.ID {
		s.log.WithFields(map[string]interface{}{
			"poll_id": id,
			"user_id": actor.ID,
		}).Warn("Ownership check denied")
		return errors.NewForbiddenError()
	}
	return nil
}

// validatePollInput runs question and option validation together so a
// caller sees every field error at once.
func validatePollInput(question string, options []string) (string, []string, []string) {
	questionRes := validation.ValidatePollQuestion(question)
	optionsRes := validation.ValidatePollOptions(options)

	var fieldErrs []string
	fieldErrs = append(fieldErrs, questionRes.Errors...)
	fieldErrs = append(fieldErrs, optionsRes.Errors...)
	return questionRes.Sanitized, optionsRes.Sanitized, fieldErrs
}
