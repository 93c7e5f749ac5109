package polls

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DENNYYESSAR/alx-polly/internal/models"
)

// Repository handles poll and option persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a polls repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a poll and its options in a single transaction. If any option
// insert fails the whole transaction rolls back, so no orphan poll can persist.
func (r *Repository) Create(ctx context.Context, p *models.Poll, optionTexts []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const pollQ = `INSERT INTO polls (user_id, question, description, allow_multiple_options, is_private, allow_unauthenticated_votes, ends_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		RETURNING id, created_at`
	err = tx.QueryRow(ctx, pollQ, p.UserID, p.Question, p.Description,
		p.AllowMultipleOptions, p.IsPrivate, p.AllowUnauthenticatedVotes, p.EndsAt).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert poll: %w", err)
	}

	const optQ = `INSERT INTO poll_options (poll_id, option_text) VALUES ($1, $2)
		RETURNING id`
	p.Options = make([]models.Option, 0, len(optionTexts))
	for _, text := range optionTexts {
		var optID uuid.UUID
		if err := tx.QueryRow(ctx, optQ, p.ID, text).Scan(&optID); err != nil {
			return fmt.Errorf("%w: %v", models.ErrOptionCreationFailed, err)
		}
		p.Options = append(p.Options, models.Option{ID: optID, PollID: p.ID, OptionText: text})
	}

	return tx.Commit(ctx)
}

// GetByID returns a poll with its options.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Poll, error) {
	const q = `SELECT id, user_id, question, COALESCE(description, ''), allow_multiple_options,
		is_private, allow_unauthenticated_votes, ends_at, created_at
		FROM polls WHERE id = $1`
	var p models.Poll
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.UserID, &p.Question, &p.Description,
		&p.AllowMultipleOptions, &p.IsPrivate, &p.AllowUnauthenticatedVotes, &p.EndsAt, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrPollNotFound
	}
	if err != nil {
		return nil, err
	}

	opts, err := r.GetOptions(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Options = opts
	return &p, nil
}

// GetOptions returns a poll's options in insertion order.
func (r *Repository) GetOptions(ctx context.Context, pollID uuid.UUID) ([]models.Option, error) {
	const q = `SELECT id, poll_id, option_text, votes_count
		FROM poll_options WHERE poll_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, q, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []models.Option
	for rows.Next() {
		var o models.Option
		if err := rows.Scan(&o.ID, &o.PollID, &o.OptionText, &o.VotesCount); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

// ListPublic returns non-private polls with options, newest first.
func (r *Repository) ListPublic(ctx context.Context) ([]models.Poll, error) {
	const q = `SELECT id, user_id, question, COALESCE(description, ''), allow_multiple_options,
		is_private, allow_unauthenticated_votes, ends_at, created_at
		FROM polls WHERE is_private = FALSE ORDER BY created_at DESC`
	return r.list(ctx, q)
}

// ListByOwner returns all polls owned by the user, private included, newest first.
func (r *Repository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Poll, error) {
	const q = `SELECT id, user_id, question, COALESCE(description, ''), allow_multiple_options,
		is_private, allow_unauthenticated_votes, ends_at, created_at
		FROM polls WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]models.Poll, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Poll
	for rows.Next() {
		var p models.Poll
		if err := rows.Scan(&p.ID, &p.UserID, &p.Question, &p.Description,
			&p.AllowMultipleOptions, &p.IsPrivate, &p.AllowUnauthenticatedVotes, &p.EndsAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		opts, err := r.GetOptions(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Options = opts
	}
	return out, nil
}

// UpdateFields updates a poll's question, description, and settings.
// Authorization is checked by the service before calling.
func (r *Repository) UpdateFields(ctx context.Context, pollID uuid.UUID, question, description string, s models.PollSettings) error {
	const q = `UPDATE polls SET question = $2, description = NULLIF($3, ''),
		allow_multiple_options = $4, is_private = $5, allow_unauthenticated_votes = $6, ends_at = $7
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, pollID, question, description,
		s.AllowMultipleOptions, s.IsPrivate, s.AllowUnauthenticatedVotes, s.EndsAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrPollNotFound
	}
	return nil
}

// UpdateSettings updates only the flag/date fields, leaving options untouched.
func (r *Repository) UpdateSettings(ctx context.Context, pollID uuid.UUID, s models.PollSettings) error {
	const q = `UPDATE polls SET allow_multiple_options = $2, is_private = $3,
		allow_unauthenticated_votes = $4, ends_at = $5
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, pollID,
		s.AllowMultipleOptions, s.IsPrivate, s.AllowUnauthenticatedVotes, s.EndsAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrPollNotFound
	}
	return nil
}

// ReconcileOptions applies a text-based diff between the poll's stored options
// and the requested texts, in one transaction: options whose text is no longer
// requested are deleted, requested texts not yet stored are inserted, and
// matches keep their id and vote count. A renamed option is indistinguishable
// from delete+insert, so its votes start over at zero.
func (r *Repository) ReconcileOptions(ctx context.Context, pollID uuid.UUID, texts []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const fetchQ = `SELECT id, poll_id, option_text, votes_count
		FROM poll_options WHERE poll_id = $1 ORDER BY id`
	rows, err := tx.Query(ctx, fetchQ, pollID)
	if err != nil {
		return fmt.Errorf("fetch options: %w", err)
	}
	var existing []models.Option
	for rows.Next() {
		var o models.Option
		if err := rows.Scan(&o.ID, &o.PollID, &o.OptionText, &o.VotesCount); err != nil {
			rows.Close()
			return err
		}
		existing = append(existing, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	toDelete, toInsert := diffOptionTexts(existing, texts)

	for _, id := range toDelete {
		if _, err := tx.Exec(ctx, `DELETE FROM poll_options WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete option: %w", err)
		}
	}
	for _, text := range toInsert {
		if _, err := tx.Exec(ctx, `INSERT INTO poll_options (poll_id, option_text) VALUES ($1, $2)`, pollID, text); err != nil {
			return fmt.Errorf("%w: %v", models.ErrOptionCreationFailed, err)
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a poll; options, votes, and comments cascade at the store.
func (r *Repository) Delete(ctx context.Context, pollID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM polls WHERE id = $1`, pollID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrPollNotFound
	}
	return nil
}

// diffOptionTexts computes the text-based option set difference: ids of stored
// options whose text is absent from requested, and requested texts absent from
// stored. Duplicated requested texts insert once.
func diffOptionTexts(existing []models.Option, requested []string) (toDelete []uuid.UUID, toInsert []string) {
	requestedSet := make(map[string]struct{}, len(requested))
	for _, t := range requested {
		requestedSet[t] = struct{}{}
	}
	existingSet := make(map[string]struct{}, len(existing))
	for _, o := range existing {
		existingSet[o.OptionText] = struct{}{}
		if _, ok := requestedSet[o.OptionText]; !ok {
			toDelete = append(toDelete, o.ID)
		}
	}
	seen := make(map[string]struct{}, len(requested))
	for _, t := range requested {
		if _, ok := existingSet[t]; ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		toInsert = append(toInsert, t)
	}
	return toDelete, toInsert
}
