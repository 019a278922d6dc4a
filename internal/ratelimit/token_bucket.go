package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Refill and take run in one script against the server clock so replicas
// with skewed clocks share a single bucket.
var takeToken = redis.NewScript(`
local rate, burst, ttl = tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3])
local t = redis.call("TIME")
local now = t[1] * 1000 + math.floor(t[2] / 1000)

local state = redis.call("HMGET", KEYS[1], "tokens", "ts")
local tokens, last = tonumber(state[1]), tonumber(state[2])
if tokens == nil then
  tokens = burst
else
  tokens = math.min(burst, tokens + math.max(0, now - last) * rate / 1000)
end

local ok = 0
if tokens >= 1 then
  ok = 1
  tokens = tokens - 1
end
redis.call("HSET", KEYS[1], "tokens", tokens, "ts", now)
redis.call("PEXPIRE", KEYS[1], ttl)
return {ok, tostring(tokens)}
`)

// TokenBucket is a Redis-backed bucket refilled at rate tokens per second up to burst.
type TokenBucket struct {
	client redis.Scripter
}

type Result struct {
	Allowed bool
	// Remaining is fractional while the bucket refills.
	Remaining  float64
	RetryAfter time.Duration
}

func NewTokenBucket(client redis.Scripter) *TokenBucket {
	if client == nil {
		return nil
	}
	return &TokenBucket{client: client}
}

func (t *TokenBucket) Allow(ctx context.Context, key string, rate float64, burst int) (Result, error) {
	if t == nil {
		return Result{}, errors.New("token bucket: no redis client")
	}
	if key == "" || rate <= 0 || burst <= 0 {
		return Result{}, fmt.Errorf("token bucket: invalid key %q rate %v burst %d", key, rate, burst)
	}

	ttl := bucketTTL(rate, burst).Milliseconds()
	reply, err := takeToken.Run(ctx, t.client, []string{key}, rate, burst, ttl).Slice()
	if err != nil {
		return Result{}, err
	}
	if len(reply) != 2 {
		return Result{}, fmt.Errorf("token bucket: unexpected reply %v", reply)
	}

	res := Result{Allowed: toInt(reply[0]) == 1, Remaining: toFloat(reply[1])}
	if !res.Allowed {
		res.RetryAfter = time.Duration((1 - res.Remaining) / rate * float64(time.Second))
	}
	return res, nil
}

// bucketTTL keeps an idle bucket for twice its full refill time, at least a second.
func bucketTTL(rate float64, burst int) time.Duration {
	if rate <= 0 || burst <= 0 {
		return time.Second
	}
	return time.Duration(math.Max(1, math.Ceil(2*float64(burst)/rate))) * time.Second
}

func toInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	}
	return 0
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}
