package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pollbase/internal/domain"
	"pollbase/pkg/errors"
	"pollbase/pkg/logger"
)

func testPoll() *domain.Poll {
	return &domain.Poll{
		ID:       "poll-1",
		OwnerID:  owner.ID,
		Question: "Favorite language?",
		Options:  []string{"Go", "Rust"},
	}
}

func TestCastVote(t *testing.T) {
	polls := new(mockPollRepo)
	votes := new(mockVoteRepo)
	s := NewVoteService(polls, votes, false, logger.NewNop())

	polls.On("GetByID", mock.Anything, "poll-1").Return(testPoll(), nil)
	votes.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Vote) bool {
		return v.PollID == "poll-1" && v.OptionIndex == 1 && v.VoterID != nil && *v.VoterID == stranger.ID
	})).Return(nil)

	vote, err := s.Cast(context.Background(), stranger, &domain.VoteRequest{PollID: "poll-1", OptionIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, vote.OptionIndex)
	votes.AssertExpectations(t)
}

func TestCastVoteRequiresAuthentication(t *testing.T) {
	s := NewVoteService(new(mockPollRepo), new(mockVoteRepo), false, logger.NewNop())

	_, err := s.Cast(context.Background(), nil, &domain.VoteRequest{PollID: "poll-1", OptionIndex: 0})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeUnauthenticated, appErr.Type)
}

func TestCastVoteAnonymousWhenPermitted(t *testing.T) {
	polls := new(mockPollRepo)
	votes := new(mockVoteRepo)
	s := NewVoteService(polls, votes, true, logger.NewNop())

	polls.On("GetByID", mock.Anything, "poll-1").Return(testPoll(), nil)
	votes.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Vote) bool {
		return v.VoterID == nil
	})).Return(nil)

	vote, err := s.Cast(context.Background(), nil, &domain.VoteRequest{PollID: "poll-1", OptionIndex: 0})
	require.NoError(t, err)
	assert.Nil(t, vote.VoterID)
}

func TestCastVoteOptionIndexBounds(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{name: "negative index", index: -1},
		{name: "index past last option", index: 2},
		{name: "far out of range", index: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			polls := new(mockPollRepo)
			votes := new(mockVoteRepo)
			s := NewVoteService(polls, votes, false, logger.NewNop())

			polls.On("GetByID", mock.Anything, "poll-1").Return(testPoll(), nil)

			_, err := s.Cast(context.Background(), stranger, &domain.VoteRequest{PollID: "poll-1", OptionIndex: tt.index})
			require.Error(t, err)

			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
			votes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCastVoteOnMissingPoll(t *testing.T) {
	polls := new(mockPollRepo)
	s := NewVoteService(polls, new(mockVoteRepo), false, logger.NewNop())

	polls.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	_, err := s.Cast(context.Background(), stranger, &domain.VoteRequest{PollID: "missing", OptionIndex: 0})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeNotFound, appErr.Type)
}

func TestCastVoteMissingPollID(t *testing.T) {
	s := NewVoteService(new(mockPollRepo), new(mockVoteRepo), false, logger.NewNop())

	_, err := s.Cast(context.Background(), stranger, &domain.VoteRequest{PollID: "  ", OptionIndex: 0})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}
