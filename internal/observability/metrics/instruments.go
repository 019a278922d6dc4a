package metrics

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Label keys allowed on domain instruments. Anything else is dropped.
var allowedLabelKeys = map[attribute.Key]struct{}{
	"result": {},
	"tier":   {},
	"source": {},
}

// Metrics holds the allocation and index instruments. A nil *Metrics records nothing.
type Metrics struct {
	allocations metric.Int64Counter
	admitted    metric.Int64Counter
	indexLoads  metric.Int64Counter
	indexSize   metric.Int64Gauge
}

func New(cfg Config, mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(cfg.meterName())

	var m Metrics
	var errs []error
	counter := func(name, desc, unit string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		errs = append(errs, err)
		return c
	}
	m.allocations = counter("roommanager_allocations_total", "Allocation requests by result.", "{request}")
	m.admitted = counter("roommanager_admitted_customers_total", "Customers admitted by tier.", "{customer}")
	m.indexLoads = counter("roommanager_index_loads_total", "Customer index loads by source and result.", "{load}")

	size, err := meter.Int64Gauge("roommanager_index_customers",
		metric.WithDescription("Customers in the live index."), metric.WithUnit("{customer}"))
	errs = append(errs, err)
	m.indexSize = size

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Metrics) RecordAllocation(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.allocations.Add(ctx, 1, withLabels(attribute.String("result", result)))
}

func (m *Metrics) RecordAdmitted(ctx context.Context, tier string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.admitted.Add(ctx, int64(count), withLabels(attribute.String("tier", tier)))
}

// RecordIndexLoad counts a load attempt. The size gauge only moves on result "ok".
func (m *Metrics) RecordIndexLoad(ctx context.Context, source, result string, size int) {
	if m == nil {
		return
	}
	src := attribute.String("source", source)
	m.indexLoads.Add(ctx, 1, withLabels(src, attribute.String("result", result)))
	if result == "ok" {
		m.indexSize.Record(ctx, int64(size), withLabels(src))
	}
}

func withLabels(attrs ...attribute.KeyValue) metric.MeasurementOption {
	return metric.WithAttributes(FilterAttributes(attrs...)...)
}

// FilterAttributes keeps only low-cardinality labels.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	out := attrs[:0:0]
	for _, kv := range attrs {
		if _, ok := allowedLabelKeys[kv.Key]; ok {
			out = append(out, kv)
		}
	}
	return out
}
