package repository

import (
	"context"

	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TagRepository handles tag data access.
type TagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository creates a new TagRepository.
func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

// List returns tags whose name contains search, newest first, with usage.
func (r *TagRepository) List(ctx context.Context, search string) ([]model.Tag, error) {
	w := &whereBuilder{}
	if search != "" {
		w.and("t.tag_name ILIKE " + w.arg("%"+escapeLike(search)+"%"))
	}
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.tag_name, t.created_at,
			(SELECT COUNT(*) FROM question_tags qt WHERE qt.tag_id = t.id)
		 FROM tags t`+w.sql()+`
		 ORDER BY t.created_at DESC, t.id DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Tag, error) {
		var t model.Tag
		err := row.Scan(&t.ID, &t.TagName, &t.CreatedAt, &t.QuestionCount)
		return t, err
	})
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, err
}

func (r *TagRepository) GetByID(ctx context.Context, id int) (*model.Tag, error) {
	var t model.Tag
	err := r.pool.QueryRow(ctx,
		`SELECT id, tag_name, created_at FROM tags WHERE id = $1`, id,
	).Scan(&t.ID, &t.TagName, &t.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

// NameTaken reports whether another tag (id != excludeID) uses name.
func (r *TagRepository) NameTaken(ctx context.Context, name string, excludeID int) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tags WHERE tag_name = $1 AND id <> $2)`,
		name, excludeID,
	).Scan(&taken)
	return taken, err
}

func (r *TagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	t := model.Tag{TagName: name}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tags (tag_name) VALUES ($1) RETURNING id, created_at`, name,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *TagRepository) Rename(ctx context.Context, id int, name string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tags SET tag_name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UsageCount returns how many questions carry the tag.
func (r *TagRepository) UsageCount(ctx context.Context, id int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM question_tags WHERE tag_id = $1`, id).Scan(&n)
	return n, err
}

func (r *TagRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureNamed inserts the tag if missing and returns its id. Used by seeding.
func (r *TagRepository) EnsureNamed(ctx context.Context, name string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tags (tag_name) VALUES ($1)
		 ON CONFLICT (tag_name) DO UPDATE SET tag_name = EXCLUDED.tag_name
		 RETURNING id`, name,
	).Scan(&id)
	return id, err
}
