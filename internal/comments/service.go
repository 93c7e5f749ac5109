package comments

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DENNYYESSAR/alx-polly/internal/identity"
	"github.com/DENNYYESSAR/alx-polly/internal/models"
)

// Store is the comment persistence surface the service depends on.
type Store interface {
	Create(ctx context.Context, cm *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByPoll(ctx context.Context, pollID uuid.UUID) ([]models.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PollChecker verifies the target poll exists before a comment is attached.
type PollChecker interface {
	GetVotingConfig(ctx context.Context, pollID uuid.UUID) (*models.VotingConfig, error)
}

// Service implements the comment workflow.
type Service struct {
	store  Store
	polls  PollChecker
	logger *zap.Logger
}

// NewService creates a comment service.
func NewService(store Store, polls PollChecker, logger *zap.Logger) *Service {
	return &Service{store: store, polls: polls, logger: logger}
}

// Submit creates a comment on a poll. Requires authentication and non-empty
// content.
func (s *Service) Submit(ctx context.Context, caller identity.Identity, pollID uuid.UUID, content string) (*models.Comment, error) {
	if !caller.Authenticated {
		return nil, models.ErrAuthenticationRequired
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content required", models.ErrValidation)
	}
	if _, err := s.polls.GetVotingConfig(ctx, pollID); err != nil {
		return nil, err
	}

	userID := caller.UserID
	cm := &models.Comment{PollID: pollID, UserID: &userID, Content: content}
	if err := s.store.Create(ctx, cm); err != nil {
		s.logger.Error("create comment", zap.String("poll_id", pollID.String()), zap.Error(err))
		return nil, err
	}
	return cm, nil
}

// ListByPoll returns a poll's comments, newest first.
func (s *Service) ListByPoll(ctx context.Context, pollID uuid.UUID) ([]models.Comment, error) {
	return s.store.ListByPoll(ctx, pollID)
}

// Delete removes a comment. Allowed for the comment's author or an admin.
func (s *Service) Delete(ctx context.Context, caller identity.Identity, commentID uuid.UUID) error {
	if !caller.Authenticated {
		return models.ErrAuthenticationRequired
	}
	cm, err := s.store.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	isAuthor := cm.UserID != nil && *cm.UserID == caller.UserID
	if !isAuthor && !caller.IsAdmin() {
		return models.ErrForbidden
	}
	if err := s.store.Delete(ctx, commentID); err != nil {
		s.logger.Error("delete comment", zap.String("comment_id", commentID.String()), zap.Error(err))
		return err
	}
	return nil
}
