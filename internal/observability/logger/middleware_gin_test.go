package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/roommanager/internal/observability/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	var seenID string
	r := gin.New()
	r.Use(RequestLogger(zap.New(core), func(error) (string, string) { return "validation_error", "min" }))
	r.GET("/rooms/availability", func(c *gin.Context) {
		seenID = obscontext.RequestIDFromContext(c.Request.Context())
		_ = c.Error(errors.New("bad"))
		c.Status(http.StatusBadRequest)
	})
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/rooms/availability?availablePremiumRooms=-1", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", seenID)
	assert.Equal(t, "req-1", w.Header().Get(HeaderRequestID))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "http", entry.LoggerName)
	fields := entry.ContextMap()
	assert.Equal(t, "/rooms/availability", fields["route"])
	assert.Equal(t, "min", fields["error_code"])
	assert.Equal(t, "req-1", fields["request_id"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.DebugLevel, logs.All()[1].Level)
}
