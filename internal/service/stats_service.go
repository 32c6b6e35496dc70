package service

import (
	"context"

	"github.com/biocomp/qbank-backend/internal/model"
	"golang.org/x/sync/errgroup"
)

// StatsStore provides the dashboard aggregates.
type StatsStore interface {
	GetSummaryCounts(ctx context.Context, s *model.BankStats) error
	CountByType(ctx context.Context) ([]model.NameCount, error)
	CountBySource(ctx context.Context) ([]model.NameCount, error)
}

// StatsService builds the question bank dashboard.
type StatsService struct {
	repo StatsStore
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo StatsStore) *StatsService {
	return &StatsService{repo: repo}
}

// Get runs the three aggregate queries concurrently.
func (s *StatsService) Get(ctx context.Context) (*model.BankStats, error) {
	stats := &model.BankStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.repo.GetSummaryCounts(gctx, stats)
	})
	g.Go(func() error {
		byType, err := s.repo.CountByType(gctx)
		stats.QuestionsByType = byType
		return err
	})
	g.Go(func() error {
		bySource, err := s.repo.CountBySource(gctx)
		stats.QuestionsBySrc = bySource
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
