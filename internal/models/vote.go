package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a single recorded choice for one option of one poll.
// UserID is nil for anonymous votes on polls that allow them.
type Vote struct {
	ID           uuid.UUID  `json:"id"`
	PollID       uuid.UUID  `json:"poll_id"`
	PollOptionID uuid.UUID  `json:"poll_option_id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	// SingleChoice is copied from the poll at insert time; it scopes the
	// one-vote-per-user unique index to single-choice polls.
	SingleChoice bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// VotingConfig is the subset of poll fields the vote workflow checks.
type VotingConfig struct {
	AllowUnauthenticatedVotes bool
	AllowMultipleOptions      bool
}
