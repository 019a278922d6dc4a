package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/roommanager/internal/clock"
	"github.com/smallbiznis/roommanager/internal/customer/domain"
	"github.com/smallbiznis/roommanager/internal/customer/index"
	"github.com/smallbiznis/roommanager/internal/customer/source"
	"github.com/smallbiznis/roommanager/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	mu     sync.Mutex
	prices []decimal.Decimal
	err    error
	calls  int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Load(context.Context) ([]decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.prices, f.err
}

func (f *fakeSource) set(prices []decimal.Decimal, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices, f.err = prices, err
}

type blockingSource struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSource) Name() string { return "blocking" }

func (b *blockingSource) Load(context.Context) ([]decimal.Decimal, error) {
	close(b.started)
	<-b.release
	return []decimal.Decimal{decimal.NewFromInt(1)}, nil
}

func dec(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, decimal.RequireFromString(v))
	}
	return out
}

var loadTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestLoader(t *testing.T, src domain.Source) (*Loader, *index.Holder) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	holder := index.NewHolder()
	return NewLoader(Params{
		Log:    zap.NewNop(),
		Source: src,
		Holder: holder,
		GenID:  node,
		Clock:  clock.NewFakeClock(loadTime),
	}), holder
}

func TestLoader_StatusBeforeFirstLoad(t *testing.T) {
	l, holder := newTestLoader(t, &fakeSource{})

	st := l.Status()
	assert.Equal(t, domain.StateUninitialized, st.State)
	assert.Equal(t, "fake", st.Source)
	assert.Nil(t, st.LoadedAt)
	assert.IsType(t, index.Uninitialized{}, holder.Snapshot())
}

func TestLoader_Load(t *testing.T) {
	l, holder := newTestLoader(t, &fakeSource{prices: dec("23", "155", "99.99", "100")})

	st, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StateReady, st.State)
	assert.Equal(t, 4, st.Size)
	assert.NotZero(t, st.Generation)
	require.NotNil(t, st.LoadedAt)
	assert.Equal(t, loadTime, *st.LoadedAt)
	assert.Equal(t, st, l.Status())

	top, err := holder.TopAtOrAbove(decimal.NewFromInt(100), 10)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestLoader_FailedFirstLoadLeavesIndexUninitialized(t *testing.T) {
	boom := errors.New("boom")
	l, holder := newTestLoader(t, &fakeSource{err: boom})

	_, err := l.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.ErrorIs(t, err, boom)

	_, err = holder.BelowThreshold(decimal.NewFromInt(100), 1)
	assert.ErrorIs(t, err, domain.ErrIndexUninitialized)
	assert.Equal(t, domain.StateUninitialized, l.Status().State)
}

func TestLoader_FailedReloadKeepsPreviousSnapshot(t *testing.T) {
	src := &fakeSource{prices: dec("10", "200")}
	l, holder := newTestLoader(t, src)

	first, err := l.Load(context.Background())
	require.NoError(t, err)

	src.set(dec("5", "-1"), nil)
	st, err := l.Reload(context.Background())
	assert.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	assert.Equal(t, first, st)

	src.set(nil, errors.New("unreachable"))
	_, err = l.Reload(context.Background())
	assert.ErrorIs(t, err, domain.ErrLoadFailed)

	snap, ok := holder.Snapshot().(index.Ready)
	require.True(t, ok)
	assert.Equal(t, 2, snap.Index.Len())
	assert.Equal(t, first.Generation, l.Status().Generation)
}

func TestLoader_ReloadAssignsNewGeneration(t *testing.T) {
	src := &fakeSource{prices: dec("10")}
	l, _ := newTestLoader(t, src)

	first, err := l.Load(context.Background())
	require.NoError(t, err)

	src.set(dec("10", "20", "30"), nil)
	second, err := l.Reload(context.Background())
	require.NoError(t, err)

	assert.Greater(t, second.Generation.Int64(), first.Generation.Int64())
	assert.Equal(t, 3, second.Size)
	assert.Equal(t, 2, src.calls)
}

func TestLoader_ReloadWhileLoading(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	l, _ := newTestLoader(t, src)

	done := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background())
		done <- err
	}()
	<-src.started

	_, err := l.Reload(context.Background())
	assert.ErrorIs(t, err, domain.ErrReloadInProgress)

	close(src.release)
	require.NoError(t, <-done)
	assert.Equal(t, domain.StateReady, l.Status().State)
}

type countingGuard struct {
	allows   int
	acquires int
	deny     bool
}

func (g *countingGuard) Allow(context.Context) (ratelimit.Result, error) {
	g.allows++
	return ratelimit.Result{Allowed: !g.deny}, nil
}

func (g *countingGuard) Acquire(context.Context) (func(), bool, error) {
	g.acquires++
	return func() {}, true, nil
}

func TestLoader_ReloadInProgressSpendsNoRateToken(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	l, _ := newTestLoader(t, src)
	guard := &countingGuard{}
	l.guard = guard

	done := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background())
		done <- err
	}()
	<-src.started

	_, err := l.Reload(context.Background())
	assert.ErrorIs(t, err, domain.ErrReloadInProgress)
	assert.Zero(t, guard.allows)
	assert.Zero(t, guard.acquires)

	close(src.release)
	require.NoError(t, <-done)
}

func TestLoader_ReloadThrottled(t *testing.T) {
	l, holder := newTestLoader(t, &fakeSource{prices: dec("100")})
	guard := &countingGuard{deny: true}
	l.guard = guard

	_, err := l.Reload(context.Background())
	assert.ErrorIs(t, err, domain.ErrReloadThrottled)
	assert.Equal(t, 1, guard.allows)
	assert.Zero(t, guard.acquires)
	assert.IsType(t, index.Uninitialized{}, holder.Snapshot())
}

func TestWatcher_ReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "customers.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1, 2]`), 0o644))

	l, holder := newTestLoader(t, source.NewFile(path))
	_, err := l.Load(context.Background())
	require.NoError(t, err)

	w, err := NewWatcher(zap.NewNop(), l, path)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	t.Cleanup(func() {
		cancel()
		_ = w.Close()
	})

	require.NoError(t, os.WriteFile(path, []byte(`[1, 2, 3, 4]`), 0o644))

	assert.Eventually(t, func() bool {
		snap, ok := holder.Snapshot().(index.Ready)
		return ok && snap.Index.Len() == 4
	}, 5*time.Second, 50*time.Millisecond)
}
