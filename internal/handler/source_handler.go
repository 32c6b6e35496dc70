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

// SourceService is the source behaviour the handler needs.
type SourceService interface {
	List(ctx context.Context, search string) ([]model.Source, error)
	Create(ctx context.Context, name string) (*model.Source, error)
	Update(ctx context.Context, id int, name string) (*model.Source, error)
	Delete(ctx context.Context, id int) error
}

type SourceHandler struct {
	sources SourceService
	log     zerolog.Logger
}

func NewSourceHandler(sources SourceService, log zerolog.Logger) *SourceHandler {
	return &SourceHandler{
		sources: sources,
		log:     logger.Component(log, "source_handler"),
	}
}

// List godoc
// GET /api/sources?search=
func (h *SourceHandler) List(c *gin.Context) {
	sources, err := h.sources.List(c.Request.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if sources == nil {
		sources = []model.Source{}
	}

	response.Success(c, http.StatusOK, sources)
}

// Create godoc
// POST /api/sources
func (h *SourceHandler) Create(c *gin.Context) {
	var req model.SourceRequest
	if !bindJSON(c, &req) {
		return
	}

	src, err := h.sources.Create(c.Request.Context(), req.SourceName)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, src, "source created")
}

// Update godoc
// PUT /api/sources/:id
func (h *SourceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.SourceRequest
	if !bindJSON(c, &req) {
		return
	}

	src, err := h.sources.Update(c.Request.Context(), id, req.SourceName)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, src, "source updated")
}

// Delete godoc
// DELETE /api/sources/:id
// Refused while any question still cites the source.
func (h *SourceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.sources.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "source deleted")
}
