package source

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/roommanager/internal/customer/domain"
)

// ListReader is the part of the Redis API the source needs.
type ListReader interface {
	LRange(ctx context.Context, key string, start, stop int64) *goredis.StringSliceCmd
}

// Redis reads offers from a list whose elements are decimal strings.
type Redis struct {
	client ListReader
	key    string
}

func NewRedis(client ListReader, key string) *Redis {
	return &Redis{client: client, key: key}
}

func (r *Redis) Name() string { return "redis" }

func (r *Redis) Load(ctx context.Context) ([]decimal.Decimal, error) {
	values, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis %s: %w", r.key, err)
	}

	prices := make([]decimal.Decimal, 0, len(values))
	for i, v := range values {
		price, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("redis %s: %w: element %d: %v", r.key, domain.ErrParse, i, err)
		}
		prices = append(prices, price)
	}
	return prices, nil
}
