package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user remark attached to a poll.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	PollID    uuid.UUID  `json:"poll_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}
