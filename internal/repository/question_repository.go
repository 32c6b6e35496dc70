package repository

import (
	"context"
	"fmt"

	"github.com/biocomp/qbank-backend/internal/database"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const questionSelect = `SELECT q.id, q.type_id, q.stem, q.answer, q.explanation, q.source_id,
		q.created_at, q.updated_at, qt.type_name, s.source_name
	FROM questions q
	LEFT JOIN question_types qt ON qt.id = q.type_id
	LEFT JOIN sources s ON s.id = q.source_id`

// QuestionRepository persists the Question aggregate: the questions row, its
// options and its tag associations. Options and tags are replaced wholesale on
// update, so option ids do not survive an update that resends options.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// Create inserts the question with its options and tags in one transaction.
func (r *QuestionRepository) Create(ctx context.Context, req *model.CreateQuestionRequest) (int, error) {
	var id int
	err := database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		id, err = insertQuestion(ctx, tx, req)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID returns the question with type/source names, options and tags.
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*model.Question, error) {
	q, err := scanQuestion(r.pool.QueryRow(ctx, questionSelect+` WHERE q.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	if err := enrichQuestion(ctx, r.pool, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Update applies a sparse update. Scalar columns are written only when set;
// options and tags are deleted and reinserted when present in req.
func (r *QuestionRepository) Update(ctx context.Context, id int, req *model.UpdateQuestionRequest) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := ensureExists(ctx, tx, "questions", id); err != nil {
			return err
		}

		var set setClause
		if req.TypeID.Set {
			set.add("type_id", req.TypeID.Value)
		}
		if req.Stem.Set {
			set.add("stem", req.Stem.Value)
		}
		if req.Answer.Set {
			set.add("answer", req.Answer.Value)
		}
		if req.Explanation.Set {
			set.add("explanation", req.Explanation.Value)
		}
		if req.SourceID.Set {
			set.add("source_id", req.SourceID.Value)
		}
		if !set.empty() {
			sql, args := set.build("questions", id)
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("update question: %w", mapError(err))
			}
		}

		if req.Options != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM options WHERE question_id = $1`, id); err != nil {
				return fmt.Errorf("clear options: %w", err)
			}
			if err := insertOptions(ctx, tx, id, *req.Options); err != nil {
				return err
			}
		}

		if req.TagIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM question_tags WHERE question_id = $1`, id); err != nil {
				return fmt.Errorf("clear tags: %w", err)
			}
			if err := insertTags(ctx, tx, id, *req.TagIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the question; options and tag links cascade.
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of questions matching f, newest first. Each row is
// enriched with its options and tags by follow-up queries.
func (r *QuestionRepository) List(ctx context.Context, f model.QuestionFilter, limit, offset int) ([]model.Question, error) {
	w := questionWhere(f)
	sql := questionSelect + w.sql() +
		` ORDER BY q.created_at DESC, q.id DESC LIMIT ` + w.arg(limit) + ` OFFSET ` + w.arg(offset)

	rows, err := r.pool.Query(ctx, sql, w.args...)
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
		if err := enrichQuestion(ctx, r.pool, &questions[i]); err != nil {
			return nil, err
		}
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// Count returns the number of questions matching f, ignoring pagination.
func (r *QuestionRepository) Count(ctx context.Context, f model.QuestionFilter) (int, error) {
	w := questionWhere(f)
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions q`+w.sql(), w.args...).Scan(&total)
	return total, err
}

func questionWhere(f model.QuestionFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.TypeID != nil {
		w.and("q.type_id = " + w.arg(*f.TypeID))
	}
	if f.SourceID != nil {
		w.and("q.source_id = " + w.arg(*f.SourceID))
	}
	if len(f.TagIDs) > 0 {
		w.and("q.id IN (SELECT question_id FROM question_tags WHERE tag_id = ANY(" + w.arg(f.TagIDs) + "))")
	}
	if f.Search != "" {
		p := w.arg("%" + escapeLike(f.Search) + "%")
		w.and("(q.stem ILIKE " + p + " OR q.answer ILIKE " + p + " OR q.explanation ILIKE " + p + ")")
	}
	if f.StandaloneOnly {
		w.and("NOT EXISTS (SELECT 1 FROM material_questions mq WHERE mq.question_id = q.id)")
	}
	return w
}

// ─── Aggregate helpers shared with MaterialRepository ──────────────────────

func insertQuestion(ctx context.Context, db dbtx, req *model.CreateQuestionRequest) (int, error) {
	var id int
	err := db.QueryRow(ctx,
		`INSERT INTO questions (type_id, stem, answer, explanation, source_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		req.TypeID, req.Stem, req.Answer, req.Explanation, req.SourceID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", mapError(err))
	}
	if err := insertOptions(ctx, db, id, req.Options); err != nil {
		return 0, err
	}
	if err := insertTags(ctx, db, id, req.TagIDs); err != nil {
		return 0, err
	}
	return id, nil
}

func insertOptions(ctx context.Context, db dbtx, questionID int, opts []model.OptionInput) error {
	for _, o := range opts {
		_, err := db.Exec(ctx,
			`INSERT INTO options (question_id, opt_label, opt_content, is_correct, sort_order)
			 VALUES ($1, $2, $3, $4, $5)`,
			questionID, o.OptLabel, o.OptContent, o.IsCorrect, o.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("insert option %q: %w", o.OptLabel, mapError(err))
		}
	}
	return nil
}

func insertTags(ctx context.Context, db dbtx, questionID int, tagIDs []int) error {
	for _, tagID := range tagIDs {
		_, err := db.Exec(ctx,
			`INSERT INTO question_tags (question_id, tag_id) VALUES ($1, $2)`,
			questionID, tagID,
		)
		if err != nil {
			return fmt.Errorf("insert tag %d: %w", tagID, mapError(err))
		}
	}
	return nil
}

func scanQuestion(row pgx.Row) (model.Question, error) {
	var q model.Question
	err := row.Scan(&q.ID, &q.TypeID, &q.Stem, &q.Answer, &q.Explanation, &q.SourceID,
		&q.CreatedAt, &q.UpdatedAt, &q.TypeName, &q.SourceName)
	return q, err
}

func enrichQuestion(ctx context.Context, db dbtx, q *model.Question) error {
	var err error
	if q.Options, err = loadOptions(ctx, db, q.ID); err != nil {
		return err
	}
	q.Tags, err = loadTags(ctx, db, q.ID)
	return err
}

func loadOptions(ctx context.Context, db dbtx, questionID int) ([]model.Option, error) {
	rows, err := db.Query(ctx,
		`SELECT id, question_id, opt_label, opt_content, is_correct, sort_order
		 FROM options WHERE question_id = $1
		 ORDER BY sort_order, opt_label`, questionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	opts := []model.Option{}
	for rows.Next() {
		var o model.Option
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.OptLabel, &o.OptContent, &o.IsCorrect, &o.SortOrder); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

func loadTags(ctx context.Context, db dbtx, questionID int) ([]model.Tag, error) {
	rows, err := db.Query(ctx,
		`SELECT t.id, t.tag_name, t.created_at
		 FROM tags t
		 JOIN question_tags qt ON qt.tag_id = t.id
		 WHERE qt.question_id = $1
		 ORDER BY t.tag_name`, questionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.TagName, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// ensureExists returns ErrNotFound when table has no row with id.
// table is always a package constant.
func ensureExists(ctx context.Context, db dbtx, table string, id int) error {
	var exists bool
	if err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}
