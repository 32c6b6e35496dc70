package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/rs/zerolog"
)

// MaterialStore is the persistence contract of the Material aggregate.
type MaterialStore interface {
	Create(ctx context.Context, req *model.CreateMaterialRequest) (int, error)
	GetByID(ctx context.Context, id int) (*model.Material, error)
	Update(ctx context.Context, id int, req *model.UpdateMaterialRequest) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, limit, offset int) ([]model.Material, error)
	ListByQuestion(ctx context.Context, questionID int) ([]model.Material, error)
	Count(ctx context.Context) (int, error)
}

// MaterialService validates and orchestrates material writes and queries.
type MaterialService struct {
	repo MaterialStore
	log  zerolog.Logger
}

// NewMaterialService creates a new MaterialService.
func NewMaterialService(repo MaterialStore, log zerolog.Logger) *MaterialService {
	return &MaterialService{
		repo: repo,
		log:  logger.Component(log, "material_service"),
	}
}

func (s *MaterialService) Create(ctx context.Context, req *model.CreateMaterialRequest) (*model.Material, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, invalid("content", "is required")
	}
	req.Title = nilIfBlank(req.Title)
	if err := checkTitle(req.Title); err != nil {
		return nil, err
	}
	if req.SourceID != nil && *req.SourceID <= 0 {
		req.SourceID = nil
	}
	if err := prepareSubQuestions(req.Questions); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, writeError(err)
	}
	s.log.Info().Int("material_id", id).Int("sub_questions", len(req.Questions)).Msg("Material created")
	return s.Get(ctx, id)
}

func (s *MaterialService) Get(ctx context.Context, id int) (*model.Material, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, readError(err)
	}
	return m, nil
}

// Update applies a sparse update. A present questions array replaces every
// sub-question; their previous ids stop existing.
func (s *MaterialService) Update(ctx context.Context, id int, req *model.UpdateMaterialRequest) (*model.Material, error) {
	if req.Content.Set && (req.Content.Value == nil || strings.TrimSpace(*req.Content.Value) == "") {
		return nil, invalid("content", "must not be empty")
	}
	if req.Title.Set {
		req.Title.Value = nilIfBlank(req.Title.Value)
		if err := checkTitle(req.Title.Value); err != nil {
			return nil, err
		}
	}
	if req.SourceID.Set && req.SourceID.Value != nil && *req.SourceID.Value <= 0 {
		req.SourceID.Value = nil
	}
	if req.Questions != nil {
		if err := prepareSubQuestions(*req.Questions); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, writeError(err)
	}
	s.log.Info().Int("material_id", id).Bool("questions_replaced", req.Questions != nil).Msg("Material updated")
	return s.Get(ctx, id)
}

// Delete removes the material and the questions it owns.
func (s *MaterialService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return readError(err)
	}
	s.log.Info().Int("material_id", id).Msg("Material deleted")
	return nil
}

func (s *MaterialService) List(ctx context.Context, page, pageSize int) ([]model.Material, int, error) {
	limit, offset, err := pageWindow(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	if offset >= total {
		return []model.Material{}, total, nil
	}
	materials, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return materials, total, nil
}

// ListByQuestion finds the materials containing questionID, without paging.
func (s *MaterialService) ListByQuestion(ctx context.Context, questionID int) ([]model.Material, error) {
	if questionID <= 0 {
		return nil, fmt.Errorf("%w: question_id must be a positive integer", ErrInvalidArgument)
	}
	return s.repo.ListByQuestion(ctx, questionID)
}

func prepareSubQuestions(questions []model.CreateQuestionRequest) error {
	for i := range questions {
		if err := prepareCreate(fmt.Sprintf("questions[%d].", i), &questions[i]); err != nil {
			return err
		}
	}
	return nil
}
