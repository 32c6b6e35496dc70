package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Pinger is satisfied by *pgxpool.Pool and by PingFunc adapters.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler reports reachability of the backing stores.
type HealthHandler struct {
	db    Pinger
	cache Pinger
	log   zerolog.Logger
}

func NewHealthHandler(db, cache Pinger, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
		log:   logger.Component(log, "health_handler"),
	}
}

// Check godoc
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok", "redis": "ok"}
	healthy := true
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Database ping failed")
		checks["database"] = "unreachable"
		healthy = false
	}
	if err := h.cache.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Redis ping failed")
		checks["redis"] = "unreachable"
		healthy = false
	}

	if !healthy {
		response.FailWithData(c, http.StatusServiceUnavailable, response.ErrUnavailable,
			gin.H{"status": "degraded", "checks": checks})
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "ok", "checks": checks})
}
