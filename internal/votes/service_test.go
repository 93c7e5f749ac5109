package votes

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DENNYYESSAR/alx-polly/internal/identity"
	"github.com/DENNYYESSAR/alx-polly/internal/models"
)

// fakeStore is an in-memory vote Store. It mimics the partial unique index:
// a second single-choice vote by the same user is rejected on Record.
type fakeStore struct {
	configs map[uuid.UUID]models.VotingConfig
	votes   []models.Vote
	counts  map[uuid.UUID]int

	recordErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		configs: make(map[uuid.UUID]models.VotingConfig),
		counts:  make(map[uuid.UUID]int),
	}
}

func (f *fakeStore) GetVotingConfig(_ context.Context, pollID uuid.UUID) (*models.VotingConfig, error) {
	cfg, ok := f.configs[pollID]
	if !ok {
		return nil, models.ErrPollNotFound
	}
	return &cfg, nil
}

func (f *fakeStore) HasVoted(_ context.Context, pollID, userID uuid.UUID) (bool, error) {
	for _, v := range f.votes {
		if v.PollID == pollID && v.UserID != nil && *v.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Record(_ context.Context, v *models.Vote) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	if v.UserID != nil && v.SingleChoice {
		for _, existing := range f.votes {
			if existing.PollID == v.PollID && existing.SingleChoice &&
				existing.UserID != nil && *existing.UserID == *v.UserID {
				return models.ErrDuplicateVote
			}
		}
	}
	v.ID = uuid.New()
	f.votes = append(f.votes, *v)
	f.counts[v.PollOptionID]++
	return nil
}

type fakeNotifier struct {
	updated []uuid.UUID
}

func (f *fakeNotifier) PollUpdated(_ context.Context, pollID uuid.UUID) {
	f.updated = append(f.updated, pollID)
}

func authedCaller() identity.Identity {
	return identity.Identity{UserID: uuid.New(), Authenticated: true}
}

func TestSubmitPollNotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeNotifier{}, zap.NewNop())

	err := svc.Submit(context.Background(), authedCaller(), uuid.New(), uuid.New())
	if !errors.Is(err, models.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound, got %v", err)
	}
}

func TestSubmitAnonymousDeniedWhenLoginRequired(t *testing.T) {
	store := newFakeStore()
	pollID, optionID := uuid.New(), uuid.New()
	store.configs[pollID] = models.VotingConfig{AllowUnauthenticatedVotes: false}
	notifier := &fakeNotifier{}
	svc := NewService(store, notifier, zap.NewNop())

	err := svc.Submit(context.Background(), identity.Anonymous, pollID, optionID)
	if !errors.Is(err, models.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	if len(store.votes) != 0 {
		t.Errorf("expected no vote row, got %d", len(store.votes))
	}
	if store.counts[optionID] != 0 {
		t.Errorf("expected count unchanged, got %d", store.counts[optionID])
	}
	if len(notifier.updated) != 0 {
		t.Errorf("expected no update signal")
	}
}

func TestSubmitAnonymousAllowed(t *testing.T) {
	store := newFakeStore()
	pollID, optionID := uuid.New(), uuid.New()
	store.configs[pollID] = models.VotingConfig{AllowUnauthenticatedVotes: true}
	notifier := &fakeNotifier{}
	svc := NewService(store, notifier, zap.NewNop())

	if err := svc.Submit(context.Background(), identity.Anonymous, pollID, optionID); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(store.votes) != 1 {
		t.Fatalf("expected one vote row, got %d", len(store.votes))
	}
	if store.votes[0].UserID != nil {
		t.Errorf("expected anonymous vote to have no user id")
	}
	if store.counts[optionID] != 1 {
		t.Errorf("expected count 1, got %d", store.counts[optionID])
	}
	if len(notifier.updated) != 1 || notifier.updated[0] != pollID {
		t.Errorf("expected one update signal for the poll, got %v", notifier.updated)
	}
}

func TestSubmitDuplicateSingleChoice(t *testing.T) {
	store := newFakeStore()
	pollID, optionID := uuid.New(), uuid.New()
	store.configs[pollID] = models.VotingConfig{AllowMultipleOptions: false}
	notifier := &fakeNotifier{}
	svc := NewService(store, notifier, zap.NewNop())
	caller := authedCaller()

	if err := svc.Submit(context.Background(), caller, pollID, optionID); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	err := svc.Submit(context.Background(), caller, pollID, optionID)
	if !errors.Is(err, models.ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote, got %v", err)
	}
	if len(store.votes) != 1 {
		t.Errorf("expected a single vote row, got %d", len(store.votes))
	}
	if store.counts[optionID] != 1 {
		t.Errorf("expected count unchanged by second attempt, got %d", store.counts[optionID])
	}
	if len(notifier.updated) != 1 {
		t.Errorf("expected a single update signal, got %d", len(notifier.updated))
	}
}

// Two users on the same single-choice poll each vote once.
func TestSubmitSingleChoiceDifferentUsers(t *testing.T) {
	store := newFakeStore()
	pollID, optionID := uuid.New(), uuid.New()
	store.configs[pollID] = models.VotingConfig{AllowMultipleOptions: false}
	svc := NewService(store, &fakeNotifier{}, zap.NewNop())

	if err := svc.Submit(context.Background(), authedCaller(), pollID, optionID); err != nil {
		t.Fatalf("first user: %v", err)
	}
	if err := svc.Submit(context.Background(), authedCaller(), pollID, optionID); err != nil {
		t.Fatalf("second user: %v", err)
	}
	if store.counts[optionID] != 2 {
		t.Errorf("expected count 2, got %d", store.counts[optionID])
	}
}

func TestSubmitMultipleChoiceAllowsRepeat(t *testing.T) {
	store := newFakeStore()
	pollID := uuid.New()
	optionA, optionB := uuid.New(), uuid.New()
	store.configs[pollID] = models.VotingConfig{AllowMultipleOptions: true}
	svc := NewService(store, &fakeNotifier{}, zap.NewNop())
	caller := authedCaller()

	if err := svc.Submit(context.Background(), caller, pollID, optionA); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if err := svc.Submit(context.Background(), caller, pollID, optionB); err != nil {
		t.Fatalf("second vote: %v", err)
	}
	if len(store.votes) != 2 {
		t.Errorf("expected two vote rows, got %d", len(store.votes))
	}
	if store.votes[0].SingleChoice || store.votes[1].SingleChoice {
		t.Errorf("multi-choice votes must not carry the single-choice flag")
	}
}

func TestSubmitSetsSingleChoiceFlag(t *testing.T) {
	store := newFakeStore()
	pollID, optionID := uuid.New(), uuid.New()
	store.configs[pollID] = models.VotingConfig{AllowMultipleOptions: false}
	svc := NewService(store, &fakeNotifier{}, zap.NewNop())

	if err := svc.Submit(context.Background(), authedCaller(), pollID, optionID); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !store.votes[0].SingleChoice {
		t.Errorf("expected single-choice flag on the vote row")
	}
}

// The store can report a duplicate directly (unique index hit under a
// concurrent double-submit); the caller sees the same tagged error.
func TestSubmitRecordReportsDuplicate(t *testing.T) {
	store := newFakeStore()
	pollID, optionID := uuid.New(), uuid.New()
	store.configs[pollID] = models.VotingConfig{AllowMultipleOptions: false}
	store.recordErr = models.ErrDuplicateVote
	notifier := &fakeNotifier{}
	svc := NewService(store, notifier, zap.NewNop())

	err := svc.Submit(context.Background(), authedCaller(), pollID, optionID)
	if !errors.Is(err, models.ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote, got %v", err)
	}
	if len(notifier.updated) != 0 {
		t.Errorf("expected no update signal on failure")
	}
}

func TestSubmitUnknownOption(t *testing.T) {
	store := newFakeStore()
	pollID := uuid.New()
	store.configs[pollID] = models.VotingConfig{AllowUnauthenticatedVotes: true}
	store.recordErr = models.ErrOptionNotFound
	svc := NewService(store, &fakeNotifier{}, zap.NewNop())

	err := svc.Submit(context.Background(), identity.Anonymous, pollID, uuid.New())
	if !errors.Is(err, models.ErrOptionNotFound) {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}
}
