package models

import (
	"time"

	"github.com/google/uuid"
)

// Poll represents a question with a set of selectable options, owned by a user.
type Poll struct {
	ID                        uuid.UUID  `json:"id"`
	UserID                    uuid.UUID  `json:"user_id"`
	Question                  string     `json:"question"`
	Description               string     `json:"description,omitempty"`
	AllowMultipleOptions      bool       `json:"allow_multiple_options"`
	IsPrivate                 bool       `json:"is_private"`
	AllowUnauthenticatedVotes bool       `json:"allow_unauthenticated_votes"`
	EndsAt                    *time.Time `json:"ends_at,omitempty"`
	CreatedAt                 time.Time  `json:"created_at"`

	Options []Option `json:"options,omitempty"`
}

// Option is one selectable choice within a poll with a running vote count.
type Option struct {
	ID         uuid.UUID `json:"id"`
	PollID     uuid.UUID `json:"poll_id"`
	OptionText string    `json:"option_text"`
	VotesCount int       `json:"votes_count"`
}

// PollSettings are the flag/date fields editable without touching options.
type PollSettings struct {
	AllowMultipleOptions      bool       `json:"allow_multiple_options"`
	IsPrivate                 bool       `json:"is_private"`
	AllowUnauthenticatedVotes bool       `json:"allow_unauthenticated_votes"`
	EndsAt                    *time.Time `json:"ends_at,omitempty"`
}
