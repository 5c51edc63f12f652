package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pollbase/internal/domain"
	"pollbase/pkg/database"
)

type PostgresPollRepository struct {
	db *database.PostgresDB
}

func NewPollRepository(db *database.PostgresDB) *PostgresPollRepository {
	return &PostgresPollRepository{db: db}
}

// Create inserts a new poll
func (r *PostgresPollRepository) Create(ctx context.Context, poll *domain.Poll) error {
	query := `
		INSERT INTO polls (owner_id, question, options)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		poll.OwnerID,
		poll.Question,
		poll.Options,
	).Scan(&poll.ID, &poll.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create poll: %w", err)
	}
	return nil
}

// GetByID retrieves a poll by ID
func (r *PostgresPollRepository) GetByID(ctx context.Context, id string) (*domain.Poll, error) {
	var poll domain.Poll
	query := `
		SELECT id, owner_id, question, options, created_at
		FROM polls
		WHERE id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&poll.ID,
		&poll.OwnerID,
		&poll.Question,
		&poll.Options,
		&poll.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	return &poll, nil
}

// GetOwnerID retrieves only the owner of a poll
func (r *PostgresPollRepository) GetOwnerID(ctx context.Context, id string) (string, error) {
	var ownerID string
	query := `SELECT owner_id FROM polls WHERE id = $1`

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&ownerID)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get poll owner: %w", err)
	}
	return ownerID, nil
}

// List retrieves polls newest first
func (r *PostgresPollRepository) List(ctx context.Context, limit int) ([]*domain.Poll, error) {
	query := `
		SELECT id, owner_id, question, options, created_at
		FROM polls
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	var polls []*domain.Poll
	for rows.Next() {
		var poll domain.Poll
		if err := rows.Scan(
			&poll.ID,
			&poll.OwnerID,
			&poll.Question,
			&poll.Options,
			&poll.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, &poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read polls: %w", err)
	}
	return polls, nil
}

// Update replaces a poll's question and options
func (r *PostgresPollRepository) Update(ctx context.Context, poll *domain.Poll) error {
	query := `
		UPDATE polls
		SET question = $2, options = $3
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, poll.ID, poll.Question, poll.Options)
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("poll %s not found", poll.ID)
	}
	return nil
}

// Delete removes a poll; votes go with it via the foreign key cascade
func (r *PostgresPollRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("poll %s not found", id)
	}
	return nil
}
