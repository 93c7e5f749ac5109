package polls

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DENNYYESSAR/alx-polly/internal/identity"
	"github.com/DENNYYESSAR/alx-polly/internal/models"
)

// Store is the poll persistence surface the service depends on.
type Store interface {
	Create(ctx context.Context, p *models.Poll, optionTexts []string) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Poll, error)
	ListPublic(ctx context.Context) ([]models.Poll, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Poll, error)
	UpdateFields(ctx context.Context, pollID uuid.UUID, question, description string, s models.PollSettings) error
	UpdateSettings(ctx context.Context, pollID uuid.UUID, s models.PollSettings) error
	ReconcileOptions(ctx context.Context, pollID uuid.UUID, texts []string) error
	Delete(ctx context.Context, pollID uuid.UUID) error
}

// CreateInput carries the fields of a poll create or edit request.
type CreateInput struct {
	Question    string
	Description string
	Options     []string
	Settings    models.PollSettings
	EndsAt      *time.Time
}

// Service implements the poll mutation workflow: validation, explicit
// authorization, and option reconciliation on edit.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a poll service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create validates input and inserts the poll with its options.
func (s *Service) Create(ctx context.Context, caller identity.Identity, in CreateInput) (*models.Poll, error) {
	if !caller.Authenticated {
		return nil, models.ErrAuthenticationRequired
	}
	question, options, err := normalize(in.Question, in.Options)
	if err != nil {
		return nil, err
	}

	settings := in.Settings
	settings.EndsAt = in.EndsAt
	p := &models.Poll{
		UserID:                    caller.UserID,
		Question:                  question,
		Description:               strings.TrimSpace(in.Description),
		AllowMultipleOptions:      settings.AllowMultipleOptions,
		IsPrivate:                 settings.IsPrivate,
		AllowUnauthenticatedVotes: settings.AllowUnauthenticatedVotes,
		EndsAt:                    in.EndsAt,
	}
	if err := s.store.Create(ctx, p, options); err != nil {
		s.logger.Error("create poll", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Get returns a poll by id. Private polls stay reachable by direct link; they
// are only excluded from the public listing.
func (s *Service) Get(ctx context.Context, pollID uuid.UUID) (*models.Poll, error) {
	return s.store.GetByID(ctx, pollID)
}

// ListPublic returns non-private polls, newest first.
func (s *Service) ListPublic(ctx context.Context) ([]models.Poll, error) {
	return s.store.ListPublic(ctx)
}

// ListMine returns the caller's polls, private included.
func (s *Service) ListMine(ctx context.Context, caller identity.Identity) ([]models.Poll, error) {
	if !caller.Authenticated {
		return nil, models.ErrAuthenticationRequired
	}
	return s.store.ListByOwner(ctx, caller.UserID)
}

// Update edits a poll's fields and reconciles its option set. Only the owner
// or an admin may edit; everyone else gets ErrForbidden, distinct from
// ErrPollNotFound.
func (s *Service) Update(ctx context.Context, caller identity.Identity, pollID uuid.UUID, in CreateInput) error {
	p, err := s.authorize(ctx, caller, pollID)
	if err != nil {
		return err
	}
	question, options, err := normalize(in.Question, in.Options)
	if err != nil {
		return err
	}

	settings := in.Settings
	settings.EndsAt = in.EndsAt
	if err := s.store.UpdateFields(ctx, p.ID, question, strings.TrimSpace(in.Description), settings); err != nil {
		s.logger.Error("update poll", zap.String("poll_id", p.ID.String()), zap.Error(err))
		return err
	}
	if err := s.store.ReconcileOptions(ctx, p.ID, options); err != nil {
		s.logger.Error("reconcile options", zap.String("poll_id", p.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

// UpdateSettings edits only the flag/date fields; options are untouched.
func (s *Service) UpdateSettings(ctx context.Context, caller identity.Identity, pollID uuid.UUID, settings models.PollSettings) error {
	p, err := s.authorize(ctx, caller, pollID)
	if err != nil {
		return err
	}
	if err := s.store.UpdateSettings(ctx, p.ID, settings); err != nil {
		s.logger.Error("update poll settings", zap.String("poll_id", p.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a poll. Owner or admin only.
func (s *Service) Delete(ctx context.Context, caller identity.Identity, pollID uuid.UUID) error {
	p, err := s.authorize(ctx, caller, pollID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, p.ID); err != nil {
		s.logger.Error("delete poll", zap.String("poll_id", p.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

// authorize loads the poll and checks the caller may mutate it.
func (s *Service) authorize(ctx context.Context, caller identity.Identity, pollID uuid.UUID) (*models.Poll, error) {
	if !caller.Authenticated {
		return nil, models.ErrAuthenticationRequired
	}
	p, err := s.store.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if p.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, models.ErrForbidden
	}
	return p, nil
}

// normalize trims the question and options, drops empty options, and enforces
// the create/edit validation rules shared by both paths.
func normalize(question string, options []string) (string, []string, error) {
	question = strings.TrimSpace(question)
	trimmed := make([]string, 0, len(options))
	for _, o := range options {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	if question == "" || len(trimmed) == 0 {
		return "", nil, fmt.Errorf("%w: question and at least one non-empty option required", models.ErrValidation)
	}
	return question, trimmed, nil
}
