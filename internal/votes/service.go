package votes

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DENNYYESSAR/alx-polly/internal/identity"
	"github.com/DENNYYESSAR/alx-polly/internal/models"
)

// Store is the vote persistence surface the service depends on.
type Store interface {
	GetVotingConfig(ctx context.Context, pollID uuid.UUID) (*models.VotingConfig, error)
	HasVoted(ctx context.Context, pollID, userID uuid.UUID) (bool, error)
	Record(ctx context.Context, v *models.Vote) error
}

// Notifier signals poll viewers that results changed. Delivery failures must
// not fail the vote.
type Notifier interface {
	PollUpdated(ctx context.Context, pollID uuid.UUID)
}

// Service implements the vote submission workflow.
type Service struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
}

// NewService creates a vote service.
func NewService(store Store, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{store: store, notifier: notifier, logger: logger}
}

// Submit records one vote for the option. Anonymous callers are accepted only
// when the poll allows unauthenticated votes. On a single-choice poll an
// authenticated user votes at most once: the stored-vote check catches the
// sequential case and the unique constraint behind Record closes the
// concurrent race.
func (s *Service) Submit(ctx context.Context, caller identity.Identity, pollID, optionID uuid.UUID) error {
	cfg, err := s.store.GetVotingConfig(ctx, pollID)
	if err != nil {
		return err
	}

	if !caller.Authenticated && !cfg.AllowUnauthenticatedVotes {
		return models.ErrAuthenticationRequired
	}

	if caller.Authenticated && !cfg.AllowMultipleOptions {
		voted, err := s.store.HasVoted(ctx, pollID, caller.UserID)
		if err != nil {
			s.logger.Error("check existing vote", zap.String("poll_id", pollID.String()), zap.Error(err))
			return err
		}
		if voted {
			return models.ErrDuplicateVote
		}
	}

	v := &models.Vote{
		PollID:       pollID,
		PollOptionID: optionID,
		SingleChoice: !cfg.AllowMultipleOptions,
	}
	if caller.Authenticated {
		userID := caller.UserID
		v.UserID = &userID
	}
	if err := s.store.Record(ctx, v); err != nil {
		return err
	}

	s.notifier.PollUpdated(ctx, pollID)
	return nil
}
