package comments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DENNYYESSAR/alx-polly/internal/models"
)

// Repository handles comment persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a comments repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new comment.
func (r *Repository) Create(ctx context.Context, cm *models.Comment) error {
	const q = `INSERT INTO comments (poll_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, cm.PollID, cm.UserID, cm.Content).
		Scan(&cm.ID, &cm.CreatedAt)
}

// GetByID returns a comment by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	const q = `SELECT id, poll_id, user_id, content, created_at
		FROM comments WHERE id = $1`
	var cm models.Comment
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&cm.ID, &cm.PollID, &cm.UserID, &cm.Content, &cm.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// ListByPoll returns a poll's comments, newest first.
func (r *Repository) ListByPoll(ctx context.Context, pollID uuid.UUID) ([]models.Comment, error) {
	const q = `SELECT id, poll_id, user_id, content, created_at
		FROM comments WHERE poll_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var cm models.Comment
		if err := rows.Scan(&cm.ID, &cm.PollID, &cm.UserID, &cm.Content, &cm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cm)
	}
	return out, rows.Err()
}

// Delete removes a comment.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCommentNotFound
	}
	return nil
}
