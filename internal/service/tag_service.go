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

// TagStore is the persistence contract for tags.
type TagStore interface {
	List(ctx context.Context, search string) ([]model.Tag, error)
	GetByID(ctx context.Context, id int) (*model.Tag, error)
	NameTaken(ctx context.Context, name string, excludeID int) (bool, error)
	Create(ctx context.Context, name string) (*model.Tag, error)
	Rename(ctx context.Context, id int, name string) error
	UsageCount(ctx context.Context, id int) (int, error)
	Delete(ctx context.Context, id int) error
}

type TagService struct {
	repo TagStore
	log  zerolog.Logger
}

func NewTagService(repo TagStore, log zerolog.Logger) *TagService {
	return &TagService{
		repo: repo,
		log:  logger.Component(log, "tag_service"),
	}
}

func (s *TagService) List(ctx context.Context, search string) ([]model.Tag, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

// Create rejects blank and already used names (case-sensitive).
func (s *TagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("tag_name", "is required")
	}
	taken, err := s.repo.NameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	tag, err := s.repo.Create(ctx, name)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrDuplicateName
	}
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("tag_id", tag.ID).Str("name", name).Msg("Tag created")
	return tag, nil
}

// Update renames the tag; the name must not belong to another tag.
func (s *TagService) Update(ctx context.Context, id int, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("tag_name", "is required")
	}
	tag, err := s.repo.GetByID(ctx, id)
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
	tag.TagName = name
	return tag, nil
}

// Delete refuses while any question references the tag.
func (s *TagService) Delete(ctx context.Context, id int) error {
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
	s.log.Info().Int("tag_id", id).Msg("Tag deleted")
	return nil
}
