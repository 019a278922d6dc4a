package ratelimit

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/roommanager/internal/config"
)

const (
	keyReloadBucket = "roommanager:customers:reload:rate"
	keyReloadLock   = "roommanager:customers:reload:lock"
)

// ReloadGuard throttles index reloads and serialises them across replicas.
// A nil guard allows everything, which is what single-instance deployments get.
type ReloadGuard struct {
	bucket  *TokenBucket
	locker  *Locker
	rate    float64
	burst   int
	lockTTL time.Duration
}

type GuardParams struct {
	Client  redis.UniversalClient
	Rate    float64
	Burst   int
	LockTTL time.Duration
}

func NewReloadGuard(p GuardParams) *ReloadGuard {
	if p.Client == nil {
		return nil
	}
	return &ReloadGuard{
		bucket:  NewTokenBucket(p.Client),
		locker:  NewLocker(p.Client),
		rate:    p.Rate,
		burst:   p.Burst,
		lockTTL: p.LockTTL,
	}
}

// ProvideReloadGuard builds the guard when Redis is configured.
func ProvideReloadGuard(cfg config.Config, client redis.UniversalClient) *ReloadGuard {
	return NewReloadGuard(GuardParams{
		Client:  client,
		Rate:    cfg.Customers.ReloadRate,
		Burst:   cfg.Customers.ReloadBurst,
		LockTTL: cfg.Customers.ReloadLockTTL,
	})
}

func (g *ReloadGuard) Allow(ctx context.Context) (Result, error) {
	if g == nil || g.rate <= 0 || g.burst <= 0 {
		return Result{Allowed: true}, nil
	}
	return g.bucket.Allow(ctx, keyReloadBucket, g.rate, g.burst)
}

// Acquire returns a release func when the lock was taken, or ok=false when another replica holds it.
func (g *ReloadGuard) Acquire(ctx context.Context) (release func(), ok bool, err error) {
	if g == nil {
		return func() {}, true, nil
	}
	lease, err := g.locker.Acquire(ctx, keyReloadLock, g.lockTTL)
	if err != nil || lease == nil {
		return func() {}, false, err
	}
	return func() {
		_ = lease.Release(context.WithoutCancel(ctx))
	}, true, nil
}
