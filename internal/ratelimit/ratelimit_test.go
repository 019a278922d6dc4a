package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilReloadGuardAllowsEverything(t *testing.T) {
	var g *ReloadGuard
	ctx := context.Background()

	res, err := g.Allow(ctx)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	release, ok, err := g.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotPanics(t, release)
}

func TestNewReloadGuardWithoutClient(t *testing.T) {
	assert.Nil(t, NewReloadGuard(GuardParams{Rate: 1, Burst: 1, LockTTL: time.Second}))
}

func TestTokenBucketRequiresClient(t *testing.T) {
	var bucket *TokenBucket
	_, err := bucket.Allow(context.Background(), "key", 1, 1)
	assert.Error(t, err)
	assert.Nil(t, NewTokenBucket(nil))
}

func TestLockerRequiresClient(t *testing.T) {
	lease, err := NewLocker(nil).Acquire(context.Background(), "key", time.Second)
	assert.ErrorIs(t, err, ErrLockUnavailable)
	assert.Nil(t, lease)
	assert.NoError(t, lease.Release(context.Background()))
}

func TestBucketTTL(t *testing.T) {
	assert.Equal(t, time.Second, bucketTTL(0, 1))
	assert.Equal(t, 30*time.Second, bucketTTL(0.2, 3))
	assert.Equal(t, time.Second, bucketTTL(100, 1))
}

func TestScriptValueConversion(t *testing.T) {
	assert.Equal(t, int64(1), toInt(int64(1)))
	assert.Equal(t, int64(1), toInt("1"))
	assert.InDelta(t, 0.4, toFloat("0.4"), 1e-9)
	assert.InDelta(t, 2.0, toFloat(int64(2)), 1e-9)
	assert.Zero(t, toFloat(nil))
}
