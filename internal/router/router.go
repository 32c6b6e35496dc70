package router

import (
	"time"

	"github.com/biocomp/qbank-backend/internal/config"
	"github.com/biocomp/qbank-backend/internal/handler"
	"github.com/biocomp/qbank-backend/internal/middleware"
	"github.com/biocomp/qbank-backend/internal/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Question     *handler.QuestionHandler
	Material     *handler.MaterialHandler
	Source       *handler.SourceHandler
	Tag          *handler.TagHandler
	QuestionType *handler.QuestionTypeHandler
	Paper        *handler.PaperHandler
	Stats        *handler.StatsHandler
	Media        *handler.MediaHandler
	Health       *handler.HealthHandler
}

// SetupRouter configures middlewares and every route of the question bank.
func SetupRouter(handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the access log can carry it.
	router.Use(response.RequestIDMiddleware(log))
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Brotli())

	// Uploaded images never change once written.
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(365*24*time.Hour, true))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	router.GET("/health", handlers.Health.Check)

	api := router.Group("/api")

	// Rendering a document or storing an upload is the expensive path.
	heavy := middleware.NewRateLimiter(cfg.ExportRatePerMinute, time.Minute).Middleware()

	// ─── Questions ─────────────────────────────────────────────────────
	questions := api.Group("/questions")
	{
		questions.GET("", handlers.Question.List)
		questions.POST("", handlers.Question.Create)
		questions.GET("/export", heavy, handlers.Question.Export)
		questions.GET("/:id", handlers.Question.Get)
		questions.PUT("/:id", handlers.Question.Update)
		questions.DELETE("/:id", handlers.Question.Delete)
	}

	// ─── Materials ─────────────────────────────────────────────────────
	materials := api.Group("/materials")
	{
		materials.GET("", handlers.Material.List)
		materials.POST("", handlers.Material.Create)
		materials.GET("/:id", handlers.Material.Get)
		materials.PUT("/:id", handlers.Material.Update)
		materials.DELETE("/:id", handlers.Material.Delete)
	}

	// ─── Reference data ────────────────────────────────────────────────
	sources := api.Group("/sources")
	{
		sources.GET("", handlers.Source.List)
		sources.POST("", handlers.Source.Create)
		sources.PUT("/:id", handlers.Source.Update)
		sources.DELETE("/:id", handlers.Source.Delete)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", handlers.Tag.List)
		tags.POST("", handlers.Tag.Create)
		tags.PUT("/:id", handlers.Tag.Update)
		tags.DELETE("/:id", handlers.Tag.Delete)
	}

	api.GET("/question-types", handlers.QuestionType.List)

	// ─── Papers ────────────────────────────────────────────────────────
	papers := api.Group("/papers")
	{
		papers.POST("/preview", handlers.Paper.Preview)
		papers.POST("/export", heavy, handlers.Paper.Export)

		papers.POST("/drafts", handlers.Paper.SaveDraft)
		papers.GET("/drafts/:id", handlers.Paper.GetDraft)
		papers.DELETE("/drafts/:id", handlers.Paper.DeleteDraft)
		papers.GET("/drafts/:id/preview", handlers.Paper.PreviewDraft)
		papers.GET("/drafts/:id/export", heavy, handlers.Paper.ExportDraft)
	}

	// ─── Dashboard & media ─────────────────────────────────────────────
	api.GET("/stats", handlers.Stats.Get)
	api.POST("/media/upload", heavy, handlers.Media.UploadMedia)

	return router
}
