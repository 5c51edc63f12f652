package repository

import (
	"context"

	"pollbase/internal/domain"
)

// PollRepository defines the interface for poll data operations
type PollRepository interface {
	// Create inserts a new poll and fills in its ID and creation time
	Create(ctx context.Context, poll *domain.Poll) error

	// GetByID retrieves a poll by ID; returns nil when it does not exist
	GetByID(ctx context.Context, id string) (*domain.Poll, error)

	// GetOwnerID retrieves only the owner of a poll, for authorization
	// checks; returns "" when the poll does not exist
	GetOwnerID(ctx context.Context, id string) (string, error)

	// List retrieves polls newest first, up to limit
	List(ctx context.Context, limit int) ([]*domain.Poll, error)

	// Update replaces a poll's question and options
	Update(ctx context.Context, poll *domain.Poll) error

	// Delete removes a poll and its votes
	Delete(ctx context.Context, id string) error
}

// VoteRepository defines the interface for vote data operations
type VoteRepository interface {
	// Create inserts a new vote and fills in its ID and creation time
	Create(ctx context.Context, vote *domain.Vote) error

	// CountByOption tallies votes per option index for a poll
	CountByOption(ctx context.Context, pollID string) (map[int]int, error)
}
