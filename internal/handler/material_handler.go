package handler

import (
	"context"
	"net/http"

	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/biocomp/qbank-backend/internal/response"
	"github.com/biocomp/qbank-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MaterialService is the material behaviour the handler needs.
type MaterialService interface {
	Create(ctx context.Context, req *model.CreateMaterialRequest) (*model.Material, error)
	Get(ctx context.Context, id int) (*model.Material, error)
	Update(ctx context.Context, id int, req *model.UpdateMaterialRequest) (*model.Material, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, page, pageSize int) ([]model.Material, int, error)
	ListByQuestion(ctx context.Context, questionID int) ([]model.Material, error)
}

// MaterialHandler handles material (passage with sub-questions) endpoints.
type MaterialHandler struct {
	materials MaterialService
	log       zerolog.Logger
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(materials MaterialService, log zerolog.Logger) *MaterialHandler {
	return &MaterialHandler{
		materials: materials,
		log:       logger.Component(log, "material_handler"),
	}
}

// List godoc
// GET /api/materials?page=&pageSize=
// GET /api/materials?question_id= returns every material containing the
// question, without paging.
func (h *MaterialHandler) List(c *gin.Context) {
	questionID, err := validator.QueryOptionalID(c, "question_id")
	if err != nil {
		invalidQuery(c, "question_id", err)
		return
	}
	if questionID != nil {
		materials, err := h.materials.ListByQuestion(c.Request.Context(), *questionID)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		if materials == nil {
			materials = []model.Material{}
		}
		response.Success(c, http.StatusOK, gin.H{"materials": materials})
		return
	}

	page, pageSize, ok := pageParams(c)
	if !ok {
		return
	}

	materials, total, err := h.materials.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if materials == nil {
		materials = []model.Material{}
	}

	response.SuccessWithPagination(c, http.StatusOK, "materials", materials, response.NewPagination(total, page, pageSize))
}

// Create godoc
// POST /api/materials
func (h *MaterialHandler) Create(c *gin.Context) {
	var req model.CreateMaterialRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.materials.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, m, "material created")
}

// Get godoc
// GET /api/materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	m, err := h.materials.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, m)
}

// Update godoc
// PUT /api/materials/:id
// A present questions array replaces every sub-question.
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateMaterialRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.materials.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, m, "material updated")
}

// Delete godoc
// DELETE /api/materials/:id
// Sub-questions are deleted with the material.
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.materials.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "material deleted")
}
