package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

var ErrLockUnavailable = errors.New("lock_unavailable")

// compare-and-delete so a lease that outlived its TTL cannot drop a successor's lock
var releaseLease = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out expiring single-owner leases on Redis keys.
type Locker struct {
	client redis.Cmdable
}

func NewLocker(client redis.Cmdable) *Locker {
	return &Locker{client: client}
}

// Lease is a held lock. Release is idempotent and safe on a nil Lease.
type Lease struct {
	client redis.Cmdable
	key    string
	token  string
}

// Acquire returns a nil lease without error when someone else holds key.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (*Lease, error) {
	if l == nil || l.client == nil {
		return nil, ErrLockUnavailable
	}
	if key == "" || ttl <= 0 {
		return nil, errors.New("lock needs a key and a positive ttl")
	}

	token := uuid.NewString()
	won, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil || !won {
		return nil, err
	}
	return &Lease{client: l.client, key: key, token: token}, nil
}

func (s *Lease) Release(ctx context.Context) error {
	if s == nil || s.token == "" {
		return nil
	}
	token := s.token
	s.token = ""
	return releaseLease.Run(ctx, s.client, []string{s.key}, token).Err()
}
