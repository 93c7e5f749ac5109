package votes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DENNYYESSAR/alx-polly/internal/models"
)

// uniqueViolation is the SQLSTATE for unique constraint violations; the
// partial index on votes (user_id, poll_id) raises it on a duplicate vote.
const uniqueViolation = "23505"

// Repository handles vote persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a votes repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetVotingConfig loads the two poll flags the vote workflow checks.
func (r *Repository) GetVotingConfig(ctx context.Context, pollID uuid.UUID) (*models.VotingConfig, error) {
	const q = `SELECT allow_unauthenticated_votes, allow_multiple_options
		FROM polls WHERE id = $1`
	var cfg models.VotingConfig
	err := r.pool.QueryRow(ctx, q, pollID).
		Scan(&cfg.AllowUnauthenticatedVotes, &cfg.AllowMultipleOptions)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrPollNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HasVoted reports whether the user already has a vote on the poll.
func (r *Repository) HasVoted(ctx context.Context, pollID, userID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM votes WHERE poll_id = $1 AND user_id = $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, q, pollID, userID).Scan(&exists)
	return exists, err
}

// Record inserts the vote row and bumps the option's count in one transaction.
// The insert runs first so a duplicate (unique index violation) aborts before
// the count moves; the increment is a single UPDATE so concurrent voters on
// the same option never lose updates.
func (r *Repository) Record(ctx context.Context, v *models.Vote) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertQ = `INSERT INTO votes (poll_id, poll_option_id, user_id, single_choice)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err = tx.QueryRow(ctx, insertQ, v.PollID, v.PollOptionID, v.UserID, v.SingleChoice).
		Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.ErrDuplicateVote
		}
		return fmt.Errorf("insert vote: %w", err)
	}

	const incQ = `UPDATE poll_options SET votes_count = votes_count + 1
		WHERE id = $1 AND poll_id = $2`
	tag, err := tx.Exec(ctx, incQ, v.PollOptionID, v.PollID)
	if err != nil {
		return fmt.Errorf("increment votes_count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrOptionNotFound
	}

	return tx.Commit(ctx)
}
