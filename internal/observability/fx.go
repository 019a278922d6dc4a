package observability

import (
	"github.com/smallbiznis/roommanager/internal/observability/logger"
	"github.com/smallbiznis/roommanager/internal/observability/metrics"
	"github.com/smallbiznis/roommanager/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		Config.LoggerConfig,
		Config.TracingConfig,
		Config.MetricsConfig,
		logger.New,
		tracing.NewProvider,
		metrics.NewProvider,
		metrics.New,
		metrics.NewHTTPMetrics,
	),
	// the tracer provider has no consumers but must be built to install the global provider
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)
