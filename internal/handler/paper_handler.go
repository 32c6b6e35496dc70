package handler

import (
	"context"
	"net/http"

	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/biocomp/qbank-backend/internal/paper"
	"github.com/biocomp/qbank-backend/internal/response"
	"github.com/biocomp/qbank-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaperService compiles, exports and stores paper selections.
type PaperService interface {
	Preview(ctx context.Context, req *model.PaperRequest) (*paper.Document, error)
	Export(ctx context.Context, req *model.PaperRequest) (*service.ExportFile, error)
	SaveDraft(ctx context.Context, req *model.PaperRequest) (*model.PaperDraft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*model.PaperDraft, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
	PreviewDraft(ctx context.Context, id uuid.UUID) (*paper.Document, error)
	ExportDraft(ctx context.Context, id uuid.UUID) (*service.ExportFile, error)
}

// PaperHandler handles paper compilation and draft endpoints.
type PaperHandler struct {
	papers PaperService
	log    zerolog.Logger
}

// NewPaperHandler creates a new PaperHandler.
func NewPaperHandler(papers PaperService, log zerolog.Logger) *PaperHandler {
	return &PaperHandler{
		papers: papers,
		log:    logger.Component(log, "paper_handler"),
	}
}

// ─── Direct selection ─────────────────────────────────────────────────

// Preview godoc
// POST /api/papers/preview
// Returns the compiled paper and answer key as JSON.
func (h *PaperHandler) Preview(c *gin.Context) {
	var req model.PaperRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.papers.Preview(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, doc)
}

// Export godoc
// POST /api/papers/export
// Returns the paper as a .docx download.
func (h *PaperHandler) Export(c *gin.Context) {
	var req model.PaperRequest
	if !bindJSON(c, &req) {
		return
	}

	file, err := h.papers.Export(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	sendFile(c, file.Filename, file.ContentType, file.Data)
}

// ─── Drafts ───────────────────────────────────────────────────────────

// SaveDraft godoc
// POST /api/papers/drafts
func (h *PaperHandler) SaveDraft(c *gin.Context) {
	var req model.PaperRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := h.papers.SaveDraft(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, draft, "draft saved")
}

// GetDraft godoc
// GET /api/papers/drafts/:id
func (h *PaperHandler) GetDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	draft, err := h.papers.GetDraft(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, draft)
}

// DeleteDraft godoc
// DELETE /api/papers/drafts/:id
func (h *PaperHandler) DeleteDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	if err := h.papers.DeleteDraft(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "draft deleted")
}

// PreviewDraft godoc
// GET /api/papers/drafts/:id/preview
func (h *PaperHandler) PreviewDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	doc, err := h.papers.PreviewDraft(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, doc)
}

// ExportDraft godoc
// GET /api/papers/drafts/:id/export
func (h *PaperHandler) ExportDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	file, err := h.papers.ExportDraft(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	sendFile(c, file.Filename, file.ContentType, file.Data)
}

func draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
