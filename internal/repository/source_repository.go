package repository

import (
	"context"

	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SourceRepository handles source data access.
type SourceRepository struct {
	pool *pgxpool.Pool
}

// NewSourceRepository creates a new SourceRepository.
func NewSourceRepository(pool *pgxpool.Pool) *SourceRepository {
	return &SourceRepository{pool: pool}
}

// List returns sources whose name contains search (all when empty), newest
// first, each with the number of questions that reference it.
func (r *SourceRepository) List(ctx context.Context, search string) ([]model.Source, error) {
	w := &whereBuilder{}
	if search != "" {
		w.and("s.source_name ILIKE " + w.arg("%"+escapeLike(search)+"%"))
	}
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.source_name, s.created_at,
			(SELECT COUNT(*) FROM questions q WHERE q.source_id = s.id)
		 FROM sources s`+w.sql()+`
		 ORDER BY s.created_at DESC, s.id DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	sources, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Source, error) {
		var s model.Source
		err := row.Scan(&s.ID, &s.SourceName, &s.CreatedAt, &s.QuestionCount)
		return s, err
	})
	if sources == nil {
		sources = []model.Source{}
	}
	return sources, err
}

// GetByID returns ErrNotFound when the source does not exist.
func (r *SourceRepository) GetByID(ctx context.Context, id int) (*model.Source, error) {
	var s model.Source
	err := r.pool.QueryRow(ctx,
		`SELECT id, source_name, created_at FROM sources WHERE id = $1`, id,
	).Scan(&s.ID, &s.SourceName, &s.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

// NameTaken reports whether another source (id != excludeID) uses name.
// The comparison is case-sensitive.
func (r *SourceRepository) NameTaken(ctx context.Context, name string, excludeID int) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM sources WHERE source_name = $1 AND id <> $2)`,
		name, excludeID,
	).Scan(&taken)
	return taken, err
}

// Create inserts a source and returns it.
func (r *SourceRepository) Create(ctx context.Context, name string) (*model.Source, error) {
	s := model.Source{SourceName: name}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sources (source_name) VALUES ($1) RETURNING id, created_at`, name,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

// Rename changes the source name.
func (r *SourceRepository) Rename(ctx context.Context, id int, name string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE sources SET source_name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UsageCount returns how many questions reference the source.
func (r *SourceRepository) UsageCount(ctx context.Context, id int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE source_id = $1`, id).Scan(&n)
	return n, err
}

// Delete removes the source. Materials pointing at it lose their source.
func (r *SourceRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sources WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureNamed inserts the source if missing and returns its id. Used by seeding.
func (r *SourceRepository) EnsureNamed(ctx context.Context, name string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sources (source_name) VALUES ($1)
		 ON CONFLICT (source_name) DO UPDATE SET source_name = EXCLUDED.source_name
		 RETURNING id`, name,
	).Scan(&id)
	return id, err
}
