package models

import "errors"

// Domain errors crossing the service boundary. Handlers map these to HTTP
// statuses and human-readable text; services never return flat message strings.
var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrForbidden              = errors.New("forbidden")
	ErrValidation             = errors.New("validation failed")
	ErrPollNotFound           = errors.New("poll not found")
	ErrOptionNotFound         = errors.New("option not found")
	ErrDuplicateVote          = errors.New("vote already recorded")
	ErrOptionCreationFailed   = errors.New("option creation failed")
	ErrCommentNotFound        = errors.New("comment not found")
)
