package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/roommanager/internal/clock"
	"github.com/smallbiznis/roommanager/internal/customer/domain"
	"github.com/smallbiznis/roommanager/internal/customer/index"
	obslogger "github.com/smallbiznis/roommanager/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/roommanager/internal/observability/metrics"
	"github.com/smallbiznis/roommanager/internal/observability/tracing"
	"github.com/smallbiznis/roommanager/internal/ratelimit"
	"github.com/smallbiznis/roommanager/pkg/telemetry/correlation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Source  domain.Source
	Holder  *index.Holder
	GenID   *snowflake.Node
	Clock   clock.Clock
	Guard   *ratelimit.ReloadGuard `optional:"true"`
	Metrics *obsmetrics.Metrics    `optional:"true"`
}

// reloadGuard is satisfied by *ratelimit.ReloadGuard, whose nil value allows everything.
type reloadGuard interface {
	Allow(ctx context.Context) (ratelimit.Result, error)
	Acquire(ctx context.Context) (release func(), ok bool, err error)
}

// Loader fills the index holder from the configured source. Loads are
// serialised; readers keep using the previous snapshot until the swap.
type Loader struct {
	log     *zap.Logger
	source  domain.Source
	holder  *index.Holder
	genID   *snowflake.Node
	clock   clock.Clock
	guard   reloadGuard
	metrics *obsmetrics.Metrics

	mu     sync.Mutex
	status atomic.Pointer[domain.Status]
}

func NewLoader(p Params) *Loader {
	l := &Loader{
		log:     p.Log.Named("customer.loader"),
		source:  p.Source,
		holder:  p.Holder,
		genID:   p.GenID,
		clock:   p.Clock,
		guard:   p.Guard,
		metrics: p.Metrics,
	}
	l.status.Store(&domain.Status{State: domain.StateUninitialized, Source: p.Source.Name()})
	return l
}

func (l *Loader) Status() domain.Status {
	return *l.status.Load()
}

func (l *Loader) Load(ctx context.Context) (domain.Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// Reload is Load for operator-triggered refreshes: throttled, and refused
// while another reload runs here or on another replica.
func (l *Loader) Reload(ctx context.Context) (domain.Status, error) {
	// a refused reload must not spend a rate token
	if !l.mu.TryLock() {
		return l.Status(), domain.ErrReloadInProgress
	}
	defer l.mu.Unlock()

	res, err := l.guard.Allow(ctx)
	if err != nil {
		l.log.Warn("reload rate limit unavailable", zap.Error(err))
	} else if !res.Allowed {
		l.log.Info("reload throttled", zap.Duration("retry_after", res.RetryAfter))
		return l.Status(), domain.ErrReloadThrottled
	}

	release, ok, err := l.guard.Acquire(ctx)
	if err != nil {
		return l.Status(), fmt.Errorf("acquire reload lock: %w", err)
	}
	if !ok {
		return l.Status(), domain.ErrReloadInProgress
	}
	defer release()

	return l.load(ctx)
}

func (l *Loader) load(ctx context.Context) (domain.Status, error) {
	ctx, _ = correlation.EnsureCorrelationID(ctx)
	ctx, span := otel.Tracer("roommanager/customers").Start(ctx, "customers.load")
	defer span.End()

	name := l.source.Name()
	log := obslogger.WithContext(ctx, l.log).With(zap.String("source", name))
	start := l.clock.Now()
	log.Info("start loading customers")

	prices, err := l.source.Load(ctx)
	if err != nil {
		return l.fail(ctx, span, log, name, err)
	}
	sorted, err := index.Build(prices)
	if err != nil {
		return l.fail(ctx, span, log, name, err)
	}

	l.holder.Store(sorted)

	loadedAt := l.clock.Now()
	status := &domain.Status{
		State:      domain.StateReady,
		Size:       sorted.Len(),
		Generation: l.genID.Generate(),
		Source:     name,
		LoadedAt:   &loadedAt,
		Duration:   loadedAt.Sub(start),
	}
	l.status.Store(status)

	span.SetAttributes(tracing.SafeAttributes(
		attribute.String("customers.source", name),
		attribute.Int("customers.count", status.Size),
	)...)
	l.metrics.RecordIndexLoad(ctx, name, "ok", status.Size)
	log.Info("load complete",
		zap.Int("entries", status.Size),
		zap.Int64("generation", status.Generation.Int64()),
		zap.Duration("duration", status.Duration),
	)
	return *status, nil
}

func (l *Loader) fail(ctx context.Context, span trace.Span, log *zap.Logger, name string, err error) (domain.Status, error) {
	span.RecordError(tracing.SafeError(err))
	span.SetStatus(codes.Error, "load failed")
	l.metrics.RecordIndexLoad(ctx, name, "error", 0)
	log.Error("load failed", zap.Error(err))
	return l.Status(), fmt.Errorf("%w: %s: %w", domain.ErrLoadFailed, name, err)
}

var _ domain.Loader = (*Loader)(nil)
