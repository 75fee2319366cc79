package utils

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRequest_LevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	logger.LogRequest("GET", "/x", 200, "1ms")
	logger.LogRequest("GET", "/x", 404, "1ms")
	logger.LogRequest("GET", "/x", 502, "1ms")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
}

func TestContextLogger_AssignsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	base := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	router := gin.New()
	router.Use(ContextLogger(base))
	router.GET("/ping", func(c *gin.Context) {
		GetLoggerFromContext(c).Info("handled")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Contains(t, buf.String(), "request_id="+generated)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}
