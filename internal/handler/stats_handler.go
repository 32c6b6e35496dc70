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

type StatsService interface {
	Get(ctx context.Context) (*model.BankStats, error)
}

// StatsHandler serves the bank dashboard.
type StatsHandler struct {
	stats StatsService
	log   zerolog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats StatsService, log zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		stats: stats,
		log:   logger.Component(log, "stats_handler"),
	}
}

// Get godoc
// GET /api/stats
// Returns bank totals and question counts per type and per source.
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.stats.Get(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
