package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/roommanager/internal/config"
	"github.com/smallbiznis/roommanager/internal/customer/domain"
	"github.com/smallbiznis/roommanager/internal/migration"
	"github.com/smallbiznis/roommanager/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Lc    fx.Lifecycle
	Cfg   config.Config
	Log   *zap.Logger
	Redis goredis.UniversalClient `optional:"true"`
}

// Provide builds the configured source, or a Multi when several are listed.
func Provide(p Params) (domain.Source, error) {
	names := p.Cfg.Customers.Sources
	if len(names) == 0 {
		names = []string{config.SourceFile}
	}

	sources := make([]domain.Source, 0, len(names))
	for _, name := range names {
		s, err := build(p, name)
		if err != nil {
			return nil, fmt.Errorf("customer source %q: %w", name, err)
		}
		sources = append(sources, s)
	}

	if len(sources) == 1 {
		return sources[0], nil
	}
	return NewMulti(sources...), nil
}

func build(p Params, name string) (domain.Source, error) {
	switch name {
	case config.SourceStatic:
		return NewStatic(), nil
	case config.SourceFile:
		return NewFile(p.Cfg.Customers.File), nil
	case config.SourceS3:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := NewS3Client(ctx, p.Cfg.S3)
		if err != nil {
			return nil, err
		}
		return NewS3(client, p.Cfg.S3.Bucket, p.Cfg.S3.Key), nil
	case config.SourceDatabase:
		conn, err := db.Open(db.FromAppConfig(p.Cfg), p.Log)
		if err != nil {
			return nil, err
		}
		db.Register(p.Lc, conn, p.Log)
		if err := migration.Apply(conn, p.Cfg, p.Log); err != nil {
			return nil, err
		}
		return NewDatabase(conn), nil
	case config.SourceRedis:
		if p.Redis == nil {
			return nil, errors.New("REDIS_ADDR is required")
		}
		return NewRedis(p.Redis, p.Cfg.Customers.RedisKey), nil
	default:
		return nil, errors.New("unknown source")
	}
}
