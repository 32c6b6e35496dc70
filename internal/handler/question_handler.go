package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/biocomp/qbank-backend/internal/response"
	"github.com/biocomp/qbank-backend/internal/spreadsheet"
	"github.com/biocomp/qbank-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// QuestionService is the question behaviour the handler needs.
type QuestionService interface {
	Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.Question, error)
	Get(ctx context.Context, id int) (*model.Question, error)
	Update(ctx context.Context, id int, req *model.UpdateQuestionRequest) (*model.Question, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, f model.QuestionFilter, page, pageSize int) ([]model.Question, int, error)
	Export(ctx context.Context, f model.QuestionFilter) ([]byte, error)
}

// QuestionHandler handles question bank endpoints.
type QuestionHandler struct {
	questions QuestionService
	log       zerolog.Logger
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questions QuestionService, log zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{
		questions: questions,
		log:       logger.Component(log, "question_handler"),
	}
}

// List godoc
// GET /api/questions?page=&pageSize=&search=&type_id=&source_id=&tag_ids=&standalone=
func (h *QuestionHandler) List(c *gin.Context) {
	page, pageSize, ok := pageParams(c)
	if !ok {
		return
	}
	f, ok := questionFilter(c)
	if !ok {
		return
	}

	questions, total, err := h.questions.List(c.Request.Context(), f, page, pageSize)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if questions == nil {
		questions = []model.Question{}
	}

	response.SuccessWithPagination(c, http.StatusOK, "questions", questions, response.NewPagination(total, page, pageSize))
}

// Export godoc
// GET /api/questions/export
// Same filters as List, returned as an .xlsx download.
func (h *QuestionHandler) Export(c *gin.Context) {
	f, ok := questionFilter(c)
	if !ok {
		return
	}

	data, err := h.questions.Export(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	filename := fmt.Sprintf("questions-%s.xlsx", time.Now().Format("20060102"))
	sendFile(c, filename, spreadsheet.ContentType, data)
}

// Create godoc
// POST /api/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	q, err := h.questions.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, q, "question created")
}

// Get godoc
// GET /api/questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	q, err := h.questions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, q)
}

// Update godoc
// PUT /api/questions/:id
// Absent fields are left untouched; options and tag_ids replace the
// whole set when present.
func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	q, err := h.questions.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, q, "question updated")
}

// Delete godoc
// DELETE /api/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.questions.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "question deleted")
}

func questionFilter(c *gin.Context) (model.QuestionFilter, bool) {
	var f model.QuestionFilter
	var err error

	if f.TypeID, err = validator.QueryOptionalID(c, "type_id"); err != nil {
		invalidQuery(c, "type_id", err)
		return f, false
	}
	if f.SourceID, err = validator.QueryOptionalID(c, "source_id"); err != nil {
		invalidQuery(c, "source_id", err)
		return f, false
	}
	if f.TagIDs, err = validator.QueryIDList(c, "tag_ids"); err != nil {
		invalidQuery(c, "tag_ids", err)
		return f, false
	}
	if raw := c.Query("standalone"); raw != "" {
		if f.StandaloneOnly, err = strconv.ParseBool(raw); err != nil {
			invalidQuery(c, "standalone", fmt.Errorf("standalone must be true or false"))
			return f, false
		}
	}
	f.Search = strings.TrimSpace(c.Query("search"))
	return f, true
}
