package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("tier", "PREMIUM"),
		attribute.String("request_id", "456"),
		attribute.String("result", "ok"),
	)
	require.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("tier"), attrs[0].Key)
	assert.Equal(t, attribute.Key("result"), attrs[1].Key)
}

func TestRecordersAreNilSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordAllocation(ctx, "ok")
		m.RecordAdmitted(ctx, "PREMIUM", 3)
		m.RecordIndexLoad(ctx, "file", "ok", 10)
	})
}

func TestNewProviderDisabledIsNoop(t *testing.T) {
	mp, err := NewProvider(nil, Config{}, zap.NewNop())
	require.NoError(t, err)

	m, err := New(Config{ServiceName: "rooms"}, mp)
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		m.RecordAllocation(context.Background(), "ok")
		m.RecordIndexLoad(context.Background(), "static", "ok", 10)
	})
}
