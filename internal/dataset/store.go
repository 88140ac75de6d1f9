// Package dataset manages uploaded collections of example posts. Readers
// get immutable snapshots; a request's selection never observes a
// concurrent dataset write.
package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/database"
	"github.com/vacantvectors/postcraft/internal/models"
)

// ErrNotFound is returned when a dataset does not exist
var ErrNotFound = errors.New("dataset not found")

// Store is the Postgres-backed dataset repository
type Store struct {
	db     *database.Postgres
	logger *zap.Logger
}

// NewStore creates a dataset store
func NewStore(db *database.Postgres, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Create registers a new dataset in raw state
func (s *Store) Create(ctx context.Context, name string, createdBy uuid.UUID) (*models.Dataset, error) {
	ds := &models.Dataset{
		ID:        uuid.New(),
		Name:      name,
		Status:    models.DatasetStatusRaw,
		CreatedBy: createdBy,
	}
	query := `
		INSERT INTO datasets (id, name, status, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := s.db.Pool().QueryRow(ctx, query, ds.ID, ds.Name, ds.Status, createdBy).
		Scan(&ds.CreatedAt, &ds.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}
	return ds, nil
}

// List returns all datasets with their post counts
func (s *Store) List(ctx context.Context) ([]models.Dataset, error) {
	query := `
		SELECT d.id, d.name, d.status, COALESCE(d.created_by, '00000000-0000-0000-0000-000000000000'),
		       d.created_at, d.updated_at,
		       (SELECT COUNT(*) FROM example_posts p WHERE p.dataset_id = d.id)
		FROM datasets d
		ORDER BY d.created_at DESC
	`
	rows, err := s.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Dataset
	for rows.Next() {
		var ds models.Dataset
		if err := rows.Scan(&ds.ID, &ds.Name, &ds.Status, &ds.CreatedBy, &ds.CreatedAt, &ds.UpdatedAt, &ds.PostCount); err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, rows.Err()
}

// Get returns one dataset by id
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*models.Dataset, error) {
	query := `
		SELECT d.id, d.name, d.status, COALESCE(d.created_by, '00000000-0000-0000-0000-000000000000'),
		       d.created_at, d.updated_at,
		       (SELECT COUNT(*) FROM example_posts p WHERE p.dataset_id = d.id)
		FROM datasets d WHERE d.id = $1
	`
	var ds models.Dataset
	err := s.db.Pool().QueryRow(ctx, query, id).
		Scan(&ds.ID, &ds.Name, &ds.Status, &ds.CreatedBy, &ds.CreatedAt, &ds.UpdatedAt, &ds.PostCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

// SetStatus moves a dataset through its processing lifecycle
func (s *Store) SetStatus(ctx context.Context, id uuid.UUID, status models.DatasetStatus) error {
	tag, err := s.db.Pool().Exec(ctx,
		`UPDATE datasets SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddPosts appends normalized posts to a dataset, preserving input order
func (s *Store) AddPosts(ctx context.Context, datasetID uuid.UUID, posts []models.ExamplePost) error {
	tx, err := s.db.Pool().Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var next int
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(position)+1, 0) FROM example_posts WHERE dataset_id = $1`, datasetID).
		Scan(&next); err != nil {
		return err
	}

	for i := range posts {
		posts[i].Normalize()
		if posts[i].ID == uuid.Nil {
			posts[i].ID = uuid.New()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO example_posts
			  (id, dataset_id, position, text, tags, language, length, line_count, engagement, tone, target_audience)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NULLIF($11, ''))
		`, posts[i].ID, datasetID, next+i, posts[i].Text, posts[i].Tags, posts[i].Language,
			posts[i].Length, posts[i].LineCount, posts[i].Engagement, string(posts[i].Tone), posts[i].Audience)
		if err != nil {
			return fmt.Errorf("insert example post: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE datasets SET updated_at = NOW() WHERE id = $1`, datasetID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReplacePosts swaps a dataset's posts wholesale (used after processing)
func (s *Store) ReplacePosts(ctx context.Context, datasetID uuid.UUID, posts []models.ExamplePost) error {
	tx, err := s.db.Pool().Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM example_posts WHERE dataset_id = $1`, datasetID); err != nil {
		return err
	}
	for i := range posts {
		posts[i].Normalize()
		if posts[i].ID == uuid.Nil {
			posts[i].ID = uuid.New()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO example_posts
			  (id, dataset_id, position, text, tags, language, length, line_count, engagement, tone, target_audience)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NULLIF($11, ''))
		`, posts[i].ID, datasetID, i, posts[i].Text, posts[i].Tags, posts[i].Language,
			posts[i].Length, posts[i].LineCount, posts[i].Engagement, string(posts[i].Tone), posts[i].Audience)
		if err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `UPDATE datasets SET updated_at = NOW() WHERE id = $1`, datasetID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Snapshot returns the dataset's posts in stable order. The returned
// slice is owned by the caller; the store never hands out shared state.
func (s *Store) Snapshot(ctx context.Context, datasetID uuid.UUID) ([]models.ExamplePost, error) {
	rows, err := s.db.Pool().Query(ctx, `
		SELECT id, text, tags, language, length, line_count, engagement,
		       COALESCE(tone, ''), COALESCE(target_audience, '')
		FROM example_posts WHERE dataset_id = $1 ORDER BY position
	`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// Search returns posts whose text matches the query, case-insensitively
func (s *Store) Search(ctx context.Context, datasetID uuid.UUID, query string) ([]models.ExamplePost, error) {
	rows, err := s.db.Pool().Query(ctx, `
		SELECT id, text, tags, language, length, line_count, engagement,
		       COALESCE(tone, ''), COALESCE(target_audience, '')
		FROM example_posts
		WHERE dataset_id = $1 AND text ILIKE '%' || $2 || '%'
		ORDER BY position
	`, datasetID, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// Tags returns the unique tags across a dataset
func (s *Store) Tags(ctx context.Context, datasetID uuid.UUID) ([]string, error) {
	rows, err := s.db.Pool().Query(ctx, `
		SELECT DISTINCT unnest(tags) AS tag
		FROM example_posts WHERE dataset_id = $1 ORDER BY tag
	`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Stats summarizes a dataset
func (s *Store) Stats(ctx context.Context, datasetID uuid.UUID) (*models.DatasetStats, error) {
	posts, err := s.Snapshot(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return ComputeStats(posts), nil
}

func scanPosts(rows pgx.Rows) ([]models.ExamplePost, error) {
	var out []models.ExamplePost
	for rows.Next() {
		var p models.ExamplePost
		var tone, audience string
		if err := rows.Scan(&p.ID, &p.Text, &p.Tags, &p.Language, &p.Length,
			&p.LineCount, &p.Engagement, &tone, &audience); err != nil {
			return nil, err
		}
		p.Tone = models.Tone(tone)
		p.Audience = audience
		out = append(out, p)
	}
	return out, rows.Err()
}
