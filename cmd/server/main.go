package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biocomp/qbank-backend/internal/config"
	"github.com/biocomp/qbank-backend/internal/database"
	"github.com/biocomp/qbank-backend/internal/handler"
	"github.com/biocomp/qbank-backend/internal/logger"
	"github.com/biocomp/qbank-backend/internal/paper"
	"github.com/biocomp/qbank-backend/internal/repository"
	"github.com/biocomp/qbank-backend/internal/router"
	"github.com/biocomp/qbank-backend/internal/service"
	"github.com/biocomp/qbank-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting question bank backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("Failed to create upload directory")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	questionRepo := repository.NewQuestionRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	sourceRepo := repository.NewSourceRepository(pool)
	tagRepo := repository.NewTagRepository(pool)
	typeRepo := repository.NewQuestionTypeRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)
	draftRepo := repository.NewPaperDraftRepository(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	paperOpts := paper.Options{
		ScorePerItem:    cfg.PaperScorePerItem,
		DurationMinutes: cfg.PaperDurationMinutes,
	}
	questionService := service.NewQuestionService(questionRepo, cfg.QuestionExportMaxRows, log)
	materialService := service.NewMaterialService(materialRepo, log)
	sourceService := service.NewSourceService(sourceRepo, log)
	tagService := service.NewTagService(tagRepo, log)
	typeService := service.NewQuestionTypeService(typeRepo)
	statsService := service.NewStatsService(statsRepo)
	paperService := service.NewPaperService(questionRepo, materialRepo, draftRepo, paperOpts, cfg.PaperDraftTTL, log)
	mediaService := service.NewMediaService(cfg.UploadDir, cfg.MaxUploadBytes, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	redisPing := handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	handlers := &router.Handlers{
		Question:     handler.NewQuestionHandler(questionService, log),
		Material:     handler.NewMaterialHandler(materialService, log),
		Source:       handler.NewSourceHandler(sourceService, log),
		Tag:          handler.NewTagHandler(tagService, log),
		QuestionType: handler.NewQuestionTypeHandler(typeService, log),
		Paper:        handler.NewPaperHandler(paperService, log),
		Stats:        handler.NewStatsHandler(statsService, log),
		Media:        handler.NewMediaHandler(mediaService, log),
		Health:       handler.NewHealthHandler(pool, redisPing, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// Stop accepting new requests and let in-flight ones finish. The pool
	// and redis client close through the deferred calls above.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
