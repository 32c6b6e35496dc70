package repository

import (
	"context"
	"fmt"

	"github.com/biocomp/qbank-backend/internal/database"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const materialSelect = `SELECT m.id, m.title, m.content, m.source_id, m.created_at, m.updated_at, s.source_name
	FROM materials m
	LEFT JOIN sources s ON s.id = m.source_id`

// MaterialRepository persists the Material aggregate. A material owns its
// sub-questions: replacing or deleting the material deletes them too.
type MaterialRepository struct {
	pool *pgxpool.Pool
}

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(pool *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{pool: pool}
}

// Create inserts the material and its sub-questions (sub_no = index + 1).
func (r *MaterialRepository) Create(ctx context.Context, req *model.CreateMaterialRequest) (int, error) {
	var id int
	err := database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO materials (title, content, source_id)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			req.Title, req.Content, req.SourceID,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert material: %w", mapError(err))
		}
		return insertSubQuestions(ctx, tx, id, req.Questions)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID returns the material with its sub-questions ordered by sub_no.
func (r *MaterialRepository) GetByID(ctx context.Context, id int) (*model.Material, error) {
	m, err := scanMaterial(r.pool.QueryRow(ctx, materialSelect+` WHERE m.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	if m.Questions, err = loadSubQuestions(ctx, r.pool, m.ID); err != nil {
		return nil, err
	}
	return &m, nil
}

// Update applies a sparse update. When req.Questions is present the previous
// sub-questions are deleted and the supplied set is created in their place.
func (r *MaterialRepository) Update(ctx context.Context, id int, req *model.UpdateMaterialRequest) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := ensureExists(ctx, tx, "materials", id); err != nil {
			return err
		}

		var set setClause
		if req.Title.Set {
			set.add("title", req.Title.Value)
		}
		if req.Content.Set {
			set.add("content", req.Content.Value)
		}
		if req.SourceID.Set {
			set.add("source_id", req.SourceID.Value)
		}
		if !set.empty() {
			sql, args := set.build("materials", id)
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("update material: %w", mapError(err))
			}
		}

		if req.Questions == nil {
			return nil
		}
		if err := deleteSubQuestions(ctx, tx, id); err != nil {
			return err
		}
		return insertSubQuestions(ctx, tx, id, *req.Questions)
	})
}

// Delete removes the material together with every question it owns.
func (r *MaterialRepository) Delete(ctx context.Context, id int) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		owned, err := subQuestionIDs(ctx, tx, id)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
		if err != nil {
			return mapError(err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		if len(owned) > 0 {
			if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE id = ANY($1)`, owned); err != nil {
				return fmt.Errorf("delete owned questions: %w", err)
			}
		}
		return nil
	})
}

// List returns one page of materials, newest first, fully enriched.
func (r *MaterialRepository) List(ctx context.Context, limit, offset int) ([]model.Material, error) {
	rows, err := r.pool.Query(ctx,
		materialSelect+` ORDER BY m.created_at DESC, m.id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

// ListByQuestion returns every material that contains questionID. No paging.
func (r *MaterialRepository) ListByQuestion(ctx context.Context, questionID int) ([]model.Material, error) {
	rows, err := r.pool.Query(ctx,
		materialSelect+`
		 WHERE m.id IN (SELECT material_id FROM material_questions WHERE question_id = $1)
		 ORDER BY m.created_at DESC, m.id DESC`,
		questionID,
	)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

// Count returns the total number of materials.
func (r *MaterialRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM materials`).Scan(&total)
	return total, err
}

func (r *MaterialRepository) collect(ctx context.Context, rows pgx.Rows) ([]model.Material, error) {
	materials, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Material, error) {
		return scanMaterial(row)
	})
	if err != nil {
		return nil, err
	}
	for i := range materials {
		if materials[i].Questions, err = loadSubQuestions(ctx, r.pool, materials[i].ID); err != nil {
			return nil, err
		}
	}
	if materials == nil {
		materials = []model.Material{}
	}
	return materials, nil
}

func scanMaterial(row pgx.Row) (model.Material, error) {
	var m model.Material
	err := row.Scan(&m.ID, &m.Title, &m.Content, &m.SourceID, &m.CreatedAt, &m.UpdatedAt, &m.SourceName)
	return m, err
}

func insertSubQuestions(ctx context.Context, db dbtx, materialID int, questions []model.CreateQuestionRequest) error {
	for i := range questions {
		qid, err := insertQuestion(ctx, db, &questions[i])
		if err != nil {
			return fmt.Errorf("sub-question %d: %w", i+1, err)
		}
		_, err = db.Exec(ctx,
			`INSERT INTO material_questions (material_id, question_id, sub_no) VALUES ($1, $2, $3)`,
			materialID, qid, i+1,
		)
		if err != nil {
			return fmt.Errorf("link sub-question %d: %w", i+1, mapError(err))
		}
	}
	return nil
}

// deleteSubQuestions removes the links and the questions they pointed at.
// Owned ids are read before the links go away.
func deleteSubQuestions(ctx context.Context, db dbtx, materialID int) error {
	owned, err := subQuestionIDs(ctx, db, materialID)
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, `DELETE FROM material_questions WHERE material_id = $1`, materialID); err != nil {
		return fmt.Errorf("clear material links: %w", err)
	}
	if len(owned) == 0 {
		return nil
	}
	if _, err := db.Exec(ctx, `DELETE FROM questions WHERE id = ANY($1)`, owned); err != nil {
		return fmt.Errorf("delete sub-questions: %w", err)
	}
	return nil
}

func subQuestionIDs(ctx context.Context, db dbtx, materialID int) ([]int, error) {
	rows, err := db.Query(ctx, `SELECT question_id FROM material_questions WHERE material_id = $1`, materialID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func loadSubQuestions(ctx context.Context, db dbtx, materialID int) ([]model.Question, error) {
	rows, err := db.Query(ctx, `SELECT q.id, q.type_id, q.stem, q.answer, q.explanation, q.source_id,
			q.created_at, q.updated_at, qt.type_name, s.source_name
		FROM material_questions mq
		JOIN questions q ON q.id = mq.question_id
		LEFT JOIN question_types qt ON qt.id = q.type_id
		LEFT JOIN sources s ON s.id = q.source_id
		WHERE mq.material_id = $1
		ORDER BY mq.sub_no`, materialID)
	if err != nil {
		return nil, err
	}
	questions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Question, error) {
		return scanQuestion(row)
	})
	if err != nil {
		return nil, err
	}
	for i := range questions {
		if err := enrichQuestion(ctx, db, &questions[i]); err != nil {
			return nil, err
		}
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}
