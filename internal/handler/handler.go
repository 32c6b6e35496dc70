package handler

import (
	"errors"
	"mime"
	"net/http"

	"github.com/biocomp/qbank-backend/internal/response"
	"github.com/biocomp/qbank-backend/internal/service"
	"github.com/biocomp/qbank-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError maps a service error to the response envelope. Anything
// outside the known taxonomy is logged and reported as a 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		field := ve.Field
		if field == "" {
			field = "detail"
		}
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{field: ve.Message})
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrDuplicateName):
		response.Fail(c, http.StatusBadRequest, response.ErrDuplicateName)
	case errors.Is(err, service.ErrInUse):
		response.Fail(c, http.StatusBadRequest, response.ErrDependencyExists)
	case errors.Is(err, service.ErrInvalidArgument):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidArgument, err.Error())
	default:
		_ = c.Error(err)
		log.Error().Err(err).
			Str("request_id", response.RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if fields := validator.Bind(c, dst); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return false
	}
	return true
}

// pathID reads the :id parameter, answering 400 when it is not a positive integer.
func pathID(c *gin.Context) (int, bool) {
	id, ok := validator.ParamID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
	}
	return id, ok
}

// pageParams reads page and pageSize (defaults 1 and 10). Range checks are
// left to the services.
func pageParams(c *gin.Context) (page, pageSize int, ok bool) {
	page, err := validator.QueryInt(c, "page", 1)
	if err != nil {
		invalidQuery(c, "page", err)
		return 0, 0, false
	}
	pageSize, err = validator.QueryInt(c, "pageSize", 10)
	if err != nil {
		invalidQuery(c, "pageSize", err)
		return 0, 0, false
	}
	return page, pageSize, true
}

func invalidQuery(c *gin.Context, name string, err error) {
	response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{name: err.Error()})
}

// sendFile answers with a download. Non-ASCII names are carried in
// filename* per RFC 2231.
func sendFile(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, contentType, data)
}
