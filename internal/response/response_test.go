package response

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total, page, size, wantPages int
	}{
		{15, 2, 10, 2},
		{0, 1, 10, 0},
		{10, 1, 10, 1},
		{11, 1, 10, 2},
	}
	for _, tt := range tests {
		p := NewPagination(tt.total, tt.page, tt.size)
		if p.TotalPages != tt.wantPages {
			t.Errorf("NewPagination(%d, %d, %d).TotalPages = %d, want %d", tt.total, tt.page, tt.size, p.TotalPages, tt.wantPages)
		}
	}
}

func TestEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(zerolog.Nop()))
	r.GET("/ok", func(c *gin.Context) {
		SuccessWithPagination(c, http.StatusOK, "questions", []int{1, 2}, NewPagination(2, 1, 10))
	})
	r.GET("/fail", func(c *gin.Context) {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{"stem": "required"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "req-1")
	r.ServeHTTP(w, req)

	var ok struct {
		Success bool `json:"success"`
		Data    struct {
			Questions  []int      `json:"questions"`
			Pagination Pagination `json:"pagination"`
		} `json:"data"`
		Metadata Metadata `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &ok); err != nil {
		t.Fatal(err)
	}
	if !ok.Success || len(ok.Data.Questions) != 2 || ok.Data.Pagination.PageSize != 10 {
		t.Errorf("body = %s", w.Body.String())
	}
	if ok.Metadata.RequestID != "req-1" || w.Header().Get("X-Request-ID") != "req-1" {
		t.Errorf("request id not propagated: %+v", ok.Metadata)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	var fail map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &fail); err != nil {
		t.Fatal(err)
	}
	if fail["success"] != false || fail["message"] == "" {
		t.Errorf("body = %s", w.Body.String())
	}
	if _, has := fail["data"]; has {
		t.Error("failed responses must omit data")
	}
	errBody := fail["error"].(map[string]any)
	if errBody["code"] != string(ErrValidation) {
		t.Errorf("code = %v", errBody["code"])
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestIDMiddleware(zerolog.New(&buf)))
	r.GET("/", func(c *gin.Context) {
		Logger(c).Info().Msg("inside")
		c.String(http.StatusOK, RequestID(c))
	})

	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{"client id reused", "abc-123_x.y", true},
		{"missing", "", false},
		{"unsafe characters", "bad id<script>", false},
		{"too long", strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-ID", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			id := w.Header().Get("X-Request-ID")
			if id == "" || id != w.Body.String() {
				t.Fatalf("header %q, body %q", id, w.Body.String())
			}
			if (id == tt.header) != tt.reuse {
				t.Errorf("id = %q, reuse of %q = %v", id, tt.header, tt.reuse)
			}

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
			}
			if entry["request_id"] != id {
				t.Errorf("logged request_id = %v, want %s", entry["request_id"], id)
			}
		})
	}
}
