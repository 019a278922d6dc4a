package tracing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/roommanager/internal/observability/context"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "roommanager/http"

// GinMiddleware continues an inbound trace, or starts one, for each request.
// The span is renamed to the matched route once the handlers ran.
func GinMiddleware() gin.HandlerFunc {
	tracer := otel.Tracer(tracerName)
	return func(c *gin.Context) {
		req := c.Request
		parent := ExtractContext(req.Context(), propagation.HeaderCarrier(req.Header))
		ctx, span := tracer.Start(parent, req.Method, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		c.Request = req.WithContext(ctx)
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		status := c.Writer.Status()
		span.SetName(req.Method + " " + route)

		attrs := []attribute.KeyValue{
			attribute.String("http.method", req.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		}
		if id := obscontext.RequestIDFromContext(ctx); id != "" {
			attrs = append(attrs, attribute.String("request_id", id))
		}
		span.SetAttributes(SafeAttributes(attrs...)...)

		if status < http.StatusInternalServerError {
			return
		}
		if last := c.Errors.Last(); last != nil {
			span.RecordError(SafeError(last.Err))
		}
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}
