package logger

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	obscontext "github.com/smallbiznis/roommanager/internal/observability/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const HeaderRequestID = "X-Request-Id"

// ErrorClassifier returns the public error type and a stable code for logs.
type ErrorClassifier func(err error) (errType string, code string)

// RequestLogger assigns a request id and writes one access log entry per request.
// Probes log at debug, client errors at warn and server errors at error.
func RequestLogger(base *zap.Logger, classify ErrorClassifier) gin.HandlerFunc {
	if base == nil {
		base = zap.NewNop()
	}
	base = base.Named("http")

	return func(c *gin.Context) {
		start := time.Now()
		requestID := requestIDFrom(c)
		c.Request = c.Request.WithContext(obscontext.WithRequestID(c.Request.Context(), requestID))

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		status := c.Writer.Status()

		ce := WithContext(c.Request.Context(), base).Check(levelFor(route, status), "request")
		if ce == nil {
			return
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
		}
		if last := c.Errors.Last(); last != nil && classify != nil {
			errType, code := classify(last.Err)
			fields = append(fields, zap.String("error_type", errType), zap.String("error_code", code))
		}
		ce.Write(fields...)
	}
}

func requestIDFrom(c *gin.Context) string {
	id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
	if id == "" {
		id = uuid.NewString()
	}
	c.Header(HeaderRequestID, id)
	return id
}

func levelFor(route string, status int) zapcore.Level {
	switch {
	case route == "/health" || route == "/metrics":
		return zapcore.DebugLevel
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
