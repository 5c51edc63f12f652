package domain

import "time"

// Poll question and option limits enforced by validation.
const (
	MinPollOptions = 2
	MaxPollOptions = 10
	MaxOptionLen   = 200
	MinQuestionLen = 5
	MaxQuestionLen = 500
)

// Poll represents a poll owned by a single user. Options keep their
// submitted order; votes reference them by index.
type Poll struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePollRequest is the payload for creating a poll.
type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// UpdatePollRequest is the payload for updating an existing poll.
type UpdatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// PollResults represents per-option vote counts for a poll.
type PollResults struct {
	PollID     string        `json:"poll_id"`
	Question   string        `json:"question"`
	Options    []OptionCount `json:"options"`
	TotalVotes int           `json:"total_votes"`
}

// OptionCount is one option's tally within poll results.
type OptionCount struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Count int    `json:"count"`
}
