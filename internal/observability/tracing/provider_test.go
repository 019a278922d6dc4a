package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

func TestNewProviderStampsCorrelationID(t *testing.T) {
	tp, err := NewProvider(nil, Config{ServiceName: "roommanager", SamplingRatio: 1}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "customers.load")
	span.End()

	ro, ok := span.(sdktrace.ReadOnlySpan)
	require.True(t, ok)
	var found bool
	for _, kv := range ro.Attributes() {
		if kv.Key == attribute.Key("correlation_id") {
			found = kv.Value.AsString() != ""
		}
	}
	assert.True(t, found)
}

func TestSpanExporterRejectsUnknownProtocol(t *testing.T) {
	_, err := spanExporter(context.Background(), "zipkin", "")
	assert.Error(t, err)
}
