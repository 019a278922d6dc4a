package tracing

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/roommanager/pkg/telemetry/correlation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Config struct {
	Enabled          bool
	ServiceName      string
	ServiceVersion   string
	Environment      string
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

func (c Config) resource() *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.ServiceVersion),
		attribute.String("deployment.environment", c.Environment),
	)
}

// NewProvider installs the global tracer provider and W3C propagators. With export
// disabled spans are still recorded so correlation ids and log trace ids stay populated.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (*sdktrace.TracerProvider, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(cfg.resource()),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRatio))),
		sdktrace.WithSpanProcessor(correlationProcessor{}),
	}
	if cfg.Enabled {
		exp, err := spanExporter(context.Background(), cfg.ExporterProtocol, cfg.ExporterEndpoint)
		if err != nil {
			return nil, fmt.Errorf("trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	log.Named("tracing").Info("tracer provider ready",
		zap.Bool("export", cfg.Enabled),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
	)
	if lc != nil {
		lc.Append(fx.StopHook(tp.Shutdown))
	}
	return tp, nil
}

func spanExporter(ctx context.Context, protocol, endpoint string) (sdktrace.SpanExporter, error) {
	switch p := strings.ToLower(strings.TrimSpace(protocol)); p {
	case "", "grpc", "grpc/protobuf":
		opts := []otlptracegrpc.Option{otlptracegrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlptracegrpc.WithEndpoint(endpoint))
		}
		return otlptracegrpc.New(ctx, opts...)
	case "http", "http/protobuf":
		opts := []otlptracehttp.Option{otlptracehttp.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
		}
		return otlptracehttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported protocol %q", p)
	}
}

// correlationProcessor stamps every span with the correlation id carried on its context,
// minting one for spans started outside a request.
type correlationProcessor struct{}

func (correlationProcessor) OnStart(ctx context.Context, s sdktrace.ReadWriteSpan) {
	_, id := correlation.EnsureCorrelationID(ctx)
	s.SetAttributes(attribute.String("correlation_id", id))
}

func (correlationProcessor) OnEnd(sdktrace.ReadOnlySpan) {}

func (correlationProcessor) Shutdown(context.Context) error { return nil }

func (correlationProcessor) ForceFlush(context.Context) error { return nil }
