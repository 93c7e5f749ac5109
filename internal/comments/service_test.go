package comments

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DENNYYESSAR/alx-polly/internal/identity"
	"github.com/DENNYYESSAR/alx-polly/internal/models"
)

type fakeStore struct {
	comments map[uuid.UUID]*models.Comment
}

func newFakeStore() *fakeStore {
	return &fakeStore{comments: make(map[uuid.UUID]*models.Comment)}
}

func (f *fakeStore) Create(_ context.Context, cm *models.Comment) error {
	cm.ID = uuid.New()
	f.comments[cm.ID] = cm
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	cm, ok := f.comments[id]
	if !ok {
		return nil, models.ErrCommentNotFound
	}
	return cm, nil
}

func (f *fakeStore) ListByPoll(_ context.Context, pollID uuid.UUID) ([]models.Comment, error) {
	var out []models.Comment
	for _, cm := range f.comments {
		if cm.PollID == pollID {
			out = append(out, *cm)
		}
	}
	return out, nil
}

func (f *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.comments[id]; !ok {
		return models.ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}

type fakePollChecker struct {
	known map[uuid.UUID]bool
}

func (f *fakePollChecker) GetVotingConfig(_ context.Context, pollID uuid.UUID) (*models.VotingConfig, error) {
	if !f.known[pollID] {
		return nil, models.ErrPollNotFound
	}
	return &models.VotingConfig{}, nil
}

func newService(store *fakeStore, pollID uuid.UUID) *Service {
	checker := &fakePollChecker{known: map[uuid.UUID]bool{pollID: true}}
	return NewService(store, checker, zap.NewNop())
}

func TestSubmitRequiresAuthentication(t *testing.T) {
	pollID := uuid.New()
	store := newFakeStore()
	svc := newService(store, pollID)

	_, err := svc.Submit(context.Background(), identity.Anonymous, pollID, "nice poll")
	if !errors.Is(err, models.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
}

func TestSubmitRequiresContent(t *testing.T) {
	pollID := uuid.New()
	store := newFakeStore()
	svc := newService(store, pollID)
	caller := identity.Identity{UserID: uuid.New(), Authenticated: true}

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.Submit(context.Background(), caller, pollID, content)
		if !errors.Is(err, models.ErrValidation) {
			t.Fatalf("content %q: expected ErrValidation, got %v", content, err)
		}
	}
	if len(store.comments) != 0 {
		t.Errorf("expected no comments stored")
	}
}

func TestSubmitUnknownPoll(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, uuid.New())
	caller := identity.Identity{UserID: uuid.New(), Authenticated: true}

	_, err := svc.Submit(context.Background(), caller, uuid.New(), "hello")
	if !errors.Is(err, models.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound, got %v", err)
	}
}

func TestSubmitStoresTrimmedComment(t *testing.T) {
	pollID := uuid.New()
	store := newFakeStore()
	svc := newService(store, pollID)
	caller := identity.Identity{UserID: uuid.New(), Authenticated: true}

	cm, err := svc.Submit(context.Background(), caller, pollID, "  great question  ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if cm.Content != "great question" {
		t.Errorf("expected trimmed content, got %q", cm.Content)
	}
	if cm.UserID == nil || *cm.UserID != caller.UserID {
		t.Errorf("expected comment attributed to caller")
	}
}

func TestDeleteAuthorization(t *testing.T) {
	author := identity.Identity{UserID: uuid.New(), Authenticated: true}
	stranger := identity.Identity{UserID: uuid.New(), Authenticated: true}
	admin := identity.Identity{UserID: uuid.New(), Role: models.RoleAdmin, Authenticated: true}

	tests := []struct {
		name    string
		caller  identity.Identity
		wantErr error
	}{
		{"author may delete", author, nil},
		{"admin may delete", admin, nil},
		{"stranger is denied", stranger, models.ErrForbidden},
		{"anonymous is denied", identity.Anonymous, models.ErrAuthenticationRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pollID := uuid.New()
			store := newFakeStore()
			svc := newService(store, pollID)

			cm, err := svc.Submit(context.Background(), author, pollID, "mine")
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}

			err = svc.Delete(context.Background(), tt.caller, cm.ID)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Delete: %v", err)
				}
				if _, ok := store.comments[cm.ID]; ok {
					t.Errorf("expected comment removed")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if _, ok := store.comments[cm.ID]; !ok {
				t.Errorf("expected comment to remain")
			}
		})
	}
}

func TestDeleteUnknownComment(t *testing.T) {
	svc := newService(newFakeStore(), uuid.New())
	caller := identity.Identity{UserID: uuid.New(), Authenticated: true}

	err := svc.Delete(context.Background(), caller, uuid.New())
	if !errors.Is(err, models.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}
