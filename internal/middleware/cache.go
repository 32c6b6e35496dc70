package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// CacheControl marks successful responses as publicly cacheable for maxAge.
// Immutable is added for content whose URL changes whenever it does, such as
// uploads stored under random names. Error responses get no-store so a
// missing file is not cached by clients.
func CacheControl(maxAge time.Duration, immutable bool) gin.HandlerFunc {
	value := "public, max-age=" + strconv.Itoa(int(maxAge/time.Second))
	if immutable {
		value += ", immutable"
	}
	return func(c *gin.Context) {
		c.Writer = &cacheWriter{ResponseWriter: c.Writer, value: value}
		c.Next()
	}
}

type cacheWriter struct {
	gin.ResponseWriter
	value string
	set   bool
}

func (w *cacheWriter) apply(status int) {
	if w.set {
		return
	}
	w.set = true
	if status >= http.StatusBadRequest {
		w.Header().Set("Cache-Control", "no-store")
		return
	}
	w.Header().Set("Cache-Control", w.value)
}

func (w *cacheWriter) WriteHeader(code int) {
	w.apply(code)
	w.ResponseWriter.WriteHeader(code)
}

func (w *cacheWriter) WriteHeaderNow() {
	w.apply(w.ResponseWriter.Status())
	w.ResponseWriter.WriteHeaderNow()
}

func (w *cacheWriter) Write(data []byte) (int, error) {
	w.apply(w.ResponseWriter.Status())
	return w.ResponseWriter.Write(data)
}

func (w *cacheWriter) WriteString(s string) (int, error) {
	w.apply(w.ResponseWriter.Status())
	return w.ResponseWriter.WriteString(s)
}
