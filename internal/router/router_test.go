package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biocomp/qbank-backend/internal/config"
	"github.com/biocomp/qbank-backend/internal/handler"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	log := zerolog.Nop()
	ok := handler.PingFunc(func(context.Context) error { return nil })

	handlers := &Handlers{
		Question:     handler.NewQuestionHandler(nil, log),
		Material:     handler.NewMaterialHandler(nil, log),
		Source:       handler.NewSourceHandler(nil, log),
		Tag:          handler.NewTagHandler(nil, log),
		QuestionType: handler.NewQuestionTypeHandler(nil, log),
		Paper:        handler.NewPaperHandler(nil, log),
		Stats:        handler.NewStatsHandler(nil, log),
		Media:        handler.NewMediaHandler(nil, log),
		Health:       handler.NewHealthHandler(ok, ok, log),
	}
	cfg := &config.Config{GinMode: gin.TestMode, UploadDir: t.TempDir(), ExportRatePerMinute: 5}
	return SetupRouter(handlers, cfg, log)
}

func TestSetupRouter_Routes(t *testing.T) {
	r := testRouter(t)

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		"GET /health",
		"GET /api/questions",
		"POST /api/questions",
		"GET /api/questions/export",
		"GET /api/questions/:id",
		"PUT /api/questions/:id",
		"DELETE /api/questions/:id",
		"GET /api/materials",
		"POST /api/materials",
		"GET /api/materials/:id",
		"PUT /api/materials/:id",
		"DELETE /api/materials/:id",
		"GET /api/sources",
		"POST /api/sources",
		"PUT /api/sources/:id",
		"DELETE /api/sources/:id",
		"GET /api/tags",
		"POST /api/tags",
		"PUT /api/tags/:id",
		"DELETE /api/tags/:id",
		"GET /api/question-types",
		"POST /api/papers/preview",
		"POST /api/papers/export",
		"POST /api/papers/drafts",
		"GET /api/papers/drafts/:id",
		"DELETE /api/papers/drafts/:id",
		"GET /api/papers/drafts/:id/preview",
		"GET /api/papers/drafts/:id/export",
		"GET /api/stats",
		"POST /api/media/upload",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %q is not registered", route)
		}
	}
}

func TestSetupRouter_HealthCarriesRequestID(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") != "abc" {
		t.Errorf("X-Request-ID = %q", w.Header().Get("X-Request-ID"))
	}
}
