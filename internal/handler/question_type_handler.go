package handler

import (
	"context"
	"net/http"

	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/biocomp/qbank-backend/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type QuestionTypeService interface {
	List(ctx context.Context) ([]model.QuestionType, error)
}

type QuestionTypeHandler struct {
	types QuestionTypeService
	log   zerolog.Logger
}

func NewQuestionTypeHandler(types QuestionTypeService, log zerolog.Logger) *QuestionTypeHandler {
	return &QuestionTypeHandler{
		types: types,
		log:   logger.Component(log, "question_type_handler"),
	}
}

// List godoc
// GET /api/question-types
func (h *QuestionTypeHandler) List(c *gin.Context) {
	types, err := h.types.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if types == nil {
		types = []model.QuestionType{}
	}

	response.Success(c, http.StatusOK, types)
}
