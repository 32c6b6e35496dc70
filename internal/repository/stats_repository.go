package repository

import (
	"context"

	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository aggregates question bank counters for the dashboard.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// GetSummaryCounts fills the scalar totals of s.
func (r *StatsRepository) GetSummaryCounts(ctx context.Context, s *model.BankStats) error {
	return r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM questions),
			(SELECT COUNT(*) FROM questions q
			  WHERE NOT EXISTS (SELECT 1 FROM material_questions mq WHERE mq.question_id = q.id)),
			(SELECT COUNT(*) FROM materials),
			(SELECT COUNT(*) FROM sources),
			(SELECT COUNT(*) FROM tags)`,
	).Scan(&s.TotalQuestions, &s.TotalStandalone, &s.TotalMaterials, &s.TotalSources, &s.TotalTags)
}

// CountByType returns the question count of every type, including empty ones.
func (r *StatsRepository) CountByType(ctx context.Context) ([]model.NameCount, error) {
	return r.groupCounts(ctx,
		`SELECT qt.id, qt.type_name, COUNT(q.id)
		 FROM question_types qt
		 LEFT JOIN questions q ON q.type_id = qt.id
		 GROUP BY qt.id, qt.type_name
		 ORDER BY qt.id`)
}

// CountBySource returns question counts per source; questions without a
// source are reported under a nil id.
func (r *StatsRepository) CountBySource(ctx context.Context) ([]model.NameCount, error) {
	return r.groupCounts(ctx,
		`SELECT s.id, COALESCE(s.source_name, ''), COUNT(q.id)
		 FROM questions q
		 LEFT JOIN sources s ON s.id = q.source_id
		 GROUP BY s.id, s.source_name
		 ORDER BY COUNT(q.id) DESC, s.source_name`)
}

func (r *StatsRepository) groupCounts(ctx context.Context, sql string) ([]model.NameCount, error) {
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.NameCount])
	if counts == nil {
		counts = []model.NameCount{}
	}
	return counts, err
}
