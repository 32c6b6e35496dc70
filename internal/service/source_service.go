package service

import (
	"context"
	"errors"
	"strings"

	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/biocomp/qbank-backend/internal/repository"
	"github.com/rs/zerolog"
)

// SourceStore is the persistence contract for sources.
type SourceStore interface {
	List(ctx context.Context, search string) ([]model.Source, error)
	GetByID(ctx context.Context, id int) (*model.Source, error)
	NameTaken(ctx context.Context, name string, excludeID int) (bool, error)
	Create(ctx context.Context, name string) (*model.Source, error)
	Rename(ctx context.Context, id int, name string) error
	UsageCount(ctx context.Context, id int) (int, error)
	Delete(ctx context.Context, id int) error
}

type SourceService struct {
	repo SourceStore
	log  zerolog.Logger
}

func NewSourceService(repo SourceStore, log zerolog.Logger) *SourceService {
	return &SourceService{
		repo: repo,
		log:  logger.Component(log, "source_service"),
	}
}

func (s *SourceService) List(ctx context.Context, search string) ([]model.Source, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

// Create rejects blank and already used names (case-sensitive).
func (s *SourceService) Create(ctx context.Context, name string) (*model.Source, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("source_name", "is required")
	}
	taken, err := s.repo.NameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	src, err := s.repo.Create(ctx, name)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrDuplicateName
	}
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("source_id", src.ID).Str("name", name).Msg("Source created")
	return src, nil
}

// Update renames the source; the name must not belong to another source.
func (s *SourceService) Update(ctx context.Context, id int, name string) (*model.Source, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("source_name", "is required")
	}
	src, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, readError(err)
	}
	taken, err := s.repo.NameTaken(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	if err := s.repo.Rename(ctx, id, name); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, readError(err)
	}
	src.SourceName = name
	return src, nil
}

// Delete refuses while any question references the source.
func (s *SourceService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return readError(err)
	}
	used, err := s.repo.UsageCount(ctx, id)
	if err != nil {
		return err
	}
	if used > 0 {
		return ErrInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrInUse
		}
		return readError(err)
	}
	s.log.Info().Int("source_id", id).Msg("Source deleted")
	return nil
}
