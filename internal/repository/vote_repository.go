package repository

import (
	"context"
	"fmt"

	"pollbase/internal/domain"
	"pollbase/pkg/database"
)

type PostgresVoteRepository struct {
	db *database.PostgresDB
}

func NewVoteRepository(db *database.PostgresDB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

// Create inserts a new vote
func (r *PostgresVoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (poll_id, voter_id, option_index)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		vote.PollID,
		vote.VoterID,
		vote.OptionIndex,
	).Scan(&vote.ID, &vote.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create vote: %w", err)
	}
	return nil
}

// CountByOption tallies votes per option index for a poll
func (r *PostgresVoteRepository) CountByOption(ctx context.Context, pollID string) (map[int]int, error) {
	query := `
		SELECT option_index, COUNT(*)
		FROM votes
		WHERE poll_id = $1
		GROUP BY option_index
	`

	rows, err := r.db.Pool.Query(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var index, count int
		if err := rows.Scan(&index, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[index] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vote counts: %w", err)
	}
	return counts, nil
}
