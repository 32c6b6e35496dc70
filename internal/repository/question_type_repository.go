package repository

import (
	"context"

	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionTypeRepository reads the question_types reference table.
type QuestionTypeRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionTypeRepository(pool *pgxpool.Pool) *QuestionTypeRepository {
	return &QuestionTypeRepository{pool: pool}
}

// List returns all question types ordered by id.
func (r *QuestionTypeRepository) List(ctx context.Context) ([]model.QuestionType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, type_name FROM question_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	types, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.QuestionType])
	if types == nil {
		types = []model.QuestionType{}
	}
	return types, err
}

// EnsureNamed inserts the type if missing and returns its id. Used by seeding.
func (r *QuestionTypeRepository) EnsureNamed(ctx context.Context, name string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO question_types (type_name) VALUES ($1)
		 ON CONFLICT (type_name) DO UPDATE SET type_name = EXCLUDED.type_name
		 RETURNING id`, name,
	).Scan(&id)
	return id, err
}
