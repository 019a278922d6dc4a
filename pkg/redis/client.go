// Package redis builds the shared go-redis client.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/roommanager/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// New returns nil when no Redis address is configured.
func New(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (goredis.UniversalClient, error) {
	if !cfg.Redis.Enabled() {
		log.Info("redis disabled")
		return nil, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
	}
	log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	return client, nil
}
