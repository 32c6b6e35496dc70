package service

import (
	"context"

	"github.com/biocomp/qbank-backend/internal/model"
)

// QuestionTypeStore reads the reference table.
type QuestionTypeStore interface {
	List(ctx context.Context) ([]model.QuestionType, error)
}

type QuestionTypeService struct {
	repo QuestionTypeStore
}

func NewQuestionTypeService(repo QuestionTypeStore) *QuestionTypeService {
	return &QuestionTypeService{repo: repo}
}

func (s *QuestionTypeService) List(ctx context.Context) ([]model.QuestionType, error) {
	return s.repo.List(ctx)
}
