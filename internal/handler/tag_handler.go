package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/biocomp/qbank-backend/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TagService is the tag behaviour the handler needs.
type TagService interface {
	List(ctx context.Context, search string) ([]model.Tag, error)
	Create(ctx context.Context, name string) (*model.Tag, error)
	Update(ctx context.Context, id int, name string) (*model.Tag, error)
	Delete(ctx context.Context, id int) error
}

type TagHandler struct {
	tags TagService
	log  zerolog.Logger
}

func NewTagHandler(tags TagService, log zerolog.Logger) *TagHandler {
	return &TagHandler{
		tags: tags,
		log:  logger.Component(log, "tag_handler"),
	}
}

// List godoc
// GET /api/tags?search=
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if tags == nil {
		tags = []model.Tag{}
	}

	response.Success(c, http.StatusOK, tags)
}

// Create godoc
// POST /api/tags
func (h *TagHandler) Create(c *gin.Context) {
	var req model.TagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tags.Create(c.Request.Context(), req.TagName)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, tag, "tag created")
}

// Update godoc
// PUT /api/tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.TagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tags.Update(c.Request.Context(), id, req.TagName)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, tag, "tag updated")
}

// Delete godoc
// DELETE /api/tags/:id
// Refused while any question is still tagged with it.
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.tags.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "tag deleted")
}
