package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/biocomp/qbank-backend/internal/docx"
	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/biocomp/qbank-backend/internal/paper"
	"github.com/biocomp/qbank-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxPaperLoads bounds concurrent aggregate reads while assembling a paper.
const maxPaperLoads = 8

// PaperDraftStore keeps saved selections.
type PaperDraftStore interface {
	Save(ctx context.Context, d *model.PaperDraft) error
	Get(ctx context.Context, id uuid.UUID) (*model.PaperDraft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuestionReader and MaterialReader are the read halves of the aggregate
// stores.
type (
	QuestionReader interface {
		GetByID(ctx context.Context, id int) (*model.Question, error)
	}
	MaterialReader interface {
		GetByID(ctx context.Context, id int) (*model.Material, error)
	}
)

// PaperService assembles papers from stored questions and materials.
type PaperService struct {
	questions QuestionReader
	materials MaterialReader
	drafts    PaperDraftStore
	opts      paper.Options
	draftTTL  time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

// DefaultDraftTTL applies when NewPaperService is given a non-positive TTL.
const DefaultDraftTTL = 72 * time.Hour

// NewPaperService creates a new PaperService.
func NewPaperService(questions QuestionReader, materials MaterialReader, drafts PaperDraftStore,
	opts paper.Options, draftTTL time.Duration, log zerolog.Logger) *PaperService {
	if draftTTL <= 0 {
		draftTTL = DefaultDraftTTL
	}
	return &PaperService{
		questions: questions,
		materials: materials,
		drafts:    drafts,
		opts:      opts,
		draftTTL:  draftTTL,
		now:       time.Now,
		log:       logger.Component(log, "paper_service"),
	}
}

// ExportFile is a rendered paper ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Preview compiles the selection without rendering it.
func (s *PaperService) Preview(ctx context.Context, req *model.PaperRequest) (*paper.Document, error) {
	questions, materials, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}
	doc := paper.Compile(questions, materials, req.Title, req.Subtitle, s.opts)
	return &doc, nil
}

// Export compiles the selection and renders it as .docx.
func (s *PaperService) Export(ctx context.Context, req *model.PaperRequest) (*ExportFile, error) {
	doc, err := s.Preview(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := paper.Export(*doc)
	if err != nil {
		return nil, fmt.Errorf("render paper: %w", err)
	}
	s.log.Info().
		Int("questions", len(req.QuestionIDs)).
		Int("materials", len(req.MaterialIDs)).
		Int("bytes", len(data)).
		Msg("Paper exported")
	return &ExportFile{
		Filename:    paperFilename(doc.Header.Title),
		ContentType: docx.ContentType,
		Data:        data,
	}, nil
}

// SaveDraft stores the selection for later export.
func (s *PaperService) SaveDraft(ctx context.Context, req *model.PaperRequest) (*model.PaperDraft, error) {
	if err := validateSelection(req); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	d := &model.PaperDraft{
		ID: uuid.New(),
		PaperRequest: model.PaperRequest{
			Title:       req.Title,
			Subtitle:    req.Subtitle,
			QuestionIDs: dedupeInts(req.QuestionIDs),
			MaterialIDs: dedupeInts(req.MaterialIDs),
		},
		CreatedAt: now,
		ExpiresAt: now.Add(s.draftTTL),
	}
	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	s.log.Info().Str("draft_id", d.ID.String()).Time("expires_at", d.ExpiresAt).Msg("Paper draft saved")
	return d, nil
}

func (s *PaperService) GetDraft(ctx context.Context, id uuid.UUID) (*model.PaperDraft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, readError(err)
	}
	return d, nil
}

func (s *PaperService) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	return readError(s.drafts.Delete(ctx, id))
}

func (s *PaperService) PreviewDraft(ctx context.Context, id uuid.UUID) (*paper.Document, error) {
	d, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Preview(ctx, &d.PaperRequest)
}

func (s *PaperService) ExportDraft(ctx context.Context, id uuid.UUID) (*ExportFile, error) {
	d, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Export(ctx, &d.PaperRequest)
}

// load fetches every selected aggregate, keeping the request order.
func (s *PaperService) load(ctx context.Context, req *model.PaperRequest) ([]model.Question, []model.Material, error) {
	if err := validateSelection(req); err != nil {
		return nil, nil, err
	}
	qids := dedupeInts(req.QuestionIDs)
	mids := dedupeInts(req.MaterialIDs)

	questions := make([]model.Question, len(qids))
	materials := make([]model.Material, len(mids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPaperLoads)

	for i, id := range qids {
		g.Go(func() error {
			q, err := s.questions.GetByID(gctx, id)
			if err != nil {
				return selectionError("question", id, err)
			}
			questions[i] = *q
			return nil
		})
	}
	for i, id := range mids {
		g.Go(func() error {
			m, err := s.materials.GetByID(gctx, id)
			if err != nil {
				return selectionError("material", id, err)
			}
			materials[i] = *m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return questions, materials, nil
}

func validateSelection(req *model.PaperRequest) error {
	if len(req.QuestionIDs) == 0 && len(req.MaterialIDs) == 0 {
		return invalid("question_ids", "select at least one question or material")
	}
	return nil
}

func selectionError(kind string, id int, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("load %s %d: %w", kind, id, err)
}
