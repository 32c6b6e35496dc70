package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/response"
	"github.com/biocomp/qbank-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type MediaService interface {
	SaveUpload(file multipart.File, header *multipart.FileHeader) (string, error)
}

// MediaHandler handles media upload endpoints.
type MediaHandler struct {
	media MediaService
	log   zerolog.Logger
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(media MediaService, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		media: media,
		log:   logger.Component(log, "media_handler"),
	}
}

// UploadMedia godoc
// POST /api/media/upload
// Uploads an image for use in rich-text content and returns its URL.
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	url, err := h.media.SaveUpload(file, header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		default:
			respondError(c, h.log, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"url": url})
}
