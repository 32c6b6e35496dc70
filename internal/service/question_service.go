package service

import (
	"context"

	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/biocomp/qbank-backend/internal/spreadsheet"
	"github.com/rs/zerolog"
)

// QuestionStore is the persistence contract of the Question aggregate.
type QuestionStore interface {
	Create(ctx context.Context, req *model.CreateQuestionRequest) (int, error)
	GetByID(ctx context.Context, id int) (*model.Question, error)
	Update(ctx context.Context, id int, req *model.UpdateQuestionRequest) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, f model.QuestionFilter, limit, offset int) ([]model.Question, error)
	Count(ctx context.Context, f model.QuestionFilter) (int, error)
}

// QuestionService validates and orchestrates question writes and queries.
type QuestionService struct {
	repo          QuestionStore
	exportMaxRows int
	log           zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(repo QuestionStore, exportMaxRows int, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		repo:          repo,
		exportMaxRows: exportMaxRows,
		log:           logger.Component(log, "question_service"),
	}
}

// Create stores the question with its options and tags and returns it as read
// back from the store.
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.Question, error) {
	if err := prepareCreate("", req); err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, writeError(err)
	}
	s.log.Info().Int("question_id", id).Int("options", len(req.Options)).Int("tags", len(req.TagIDs)).Msg("Question created")
	return s.Get(ctx, id)
}

func (s *QuestionService) Get(ctx context.Context, id int) (*model.Question, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, readError(err)
	}
	return q, nil
}

// Update applies a sparse update; present options/tag_ids replace the old set.
func (s *QuestionService) Update(ctx context.Context, id int, req *model.UpdateQuestionRequest) (*model.Question, error) {
	if err := prepareUpdate(req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, writeError(err)
	}
	s.log.Info().Int("question_id", id).
		Bool("options_replaced", req.Options != nil).
		Bool("tags_replaced", req.TagIDs != nil).
		Msg("Question updated")
	return s.Get(ctx, id)
}

func (s *QuestionService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return readError(err)
	}
	s.log.Info().Int("question_id", id).Msg("Question deleted")
	return nil
}

// List returns the requested page and the total under the same filter.
func (s *QuestionService) List(ctx context.Context, f model.QuestionFilter, page, pageSize int) ([]model.Question, int, error) {
	limit, offset, err := pageWindow(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	if offset >= total {
		return []model.Question{}, total, nil
	}
	questions, err := s.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// Export renders every question matching f (capped at the configured row
// limit) as an .xlsx workbook.
func (s *QuestionService) Export(ctx context.Context, f model.QuestionFilter) ([]byte, error) {
	questions, err := s.repo.List(ctx, f, s.exportMaxRows, 0)
	if err != nil {
		return nil, err
	}
	data, err := spreadsheet.QuestionsWorkbook(questions)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("rows", len(questions)).Msg("Questions exported")
	return data, nil
}
