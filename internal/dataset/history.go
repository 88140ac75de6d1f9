package dataset

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vacantvectors/postcraft/internal/database"
	"github.com/vacantvectors/postcraft/internal/models"
)

// History records and serves generated posts. It satisfies
// generator.HistoryStore.
type History struct {
	db *database.Postgres
}

// NewHistory creates a history store
func NewHistory(db *database.Postgres) *History {
	return &History{db: db}
}

// SaveGenerated persists one generated post
func (h *History) SaveGenerated(ctx context.Context, post *models.GeneratedPost) error {
	_, err := h.db.Pool().Exec(ctx, `
		INSERT INTO generated_posts
		  (id, user_id, dataset_id, text, topic, length, language, tone, model, warnings, created_at)
		VALUES ($1, $2, NULLIF($3, '00000000-0000-0000-0000-000000000000')::uuid,
		        $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)
	`, post.ID, post.UserID, post.DatasetID.String(), post.Text, post.Topic,
		post.Length, post.Language, string(post.Tone), post.Model, post.Warnings, post.CreatedAt)
	return err
}

// ListByUser returns a user's most recent generations
func (h *History) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.GeneratedPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := h.db.Pool().Query(ctx, `
		SELECT id, user_id, COALESCE(dataset_id, '00000000-0000-0000-0000-000000000000'),
		       text, topic, length, language, COALESCE(tone, ''), model, warnings, created_at
		FROM generated_posts WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.GeneratedPost
	for rows.Next() {
		var p models.GeneratedPost
		var tone string
		if err := rows.Scan(&p.ID, &p.UserID, &p.DatasetID, &p.Text, &p.Topic,
			&p.Length, &p.Language, &tone, &p.Model, &p.Warnings, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Tone = models.Tone(tone)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns one generated post owned by the user
func (h *History) Get(ctx context.Context, userID, postID uuid.UUID) (*models.GeneratedPost, error) {
	var p models.GeneratedPost
	var tone string
	err := h.db.Pool().QueryRow(ctx, `
		SELECT id, user_id, COALESCE(dataset_id, '00000000-0000-0000-0000-000000000000'),
		       text, topic, length, language, COALESCE(tone, ''), model, warnings, created_at
		FROM generated_posts WHERE id = $1 AND user_id = $2
	`, postID, userID).Scan(&p.ID, &p.UserID, &p.DatasetID, &p.Text, &p.Topic,
		&p.Length, &p.Language, &tone, &p.Model, &p.Warnings, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Tone = models.Tone(tone)
	return &p, nil
}

// Delete removes one generated post owned by the user
func (h *History) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	tag, err := h.db.Pool().Exec(ctx,
		`DELETE FROM generated_posts WHERE id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
