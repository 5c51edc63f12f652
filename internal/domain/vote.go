package domain

import "time"

// Vote represents a single ballot on a poll. VoterID is nil for anonymous
// votes when the deployment permits them.
type Vote struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll_id"`
	VoterID     *string   `json:"voter_id,omitempty"`
	OptionIndex int       `json:"option_index"`
	CreatedAt   time.Time `json:"created_at"`
}

// VoteRequest is the payload for casting a vote.
type VoteRequest struct {
	PollID      string `json:"poll_id"`
	OptionIndex int    `json:"option_index"`
}
