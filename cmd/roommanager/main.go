package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/roommanager/internal/allocation"
	"github.com/smallbiznis/roommanager/internal/clock"
	"github.com/smallbiznis/roommanager/internal/config"
	"github.com/smallbiznis/roommanager/internal/customer"
	"github.com/smallbiznis/roommanager/internal/observability"
	"github.com/smallbiznis/roommanager/internal/ratelimit"
	"github.com/smallbiznis/roommanager/internal/server"
	"github.com/smallbiznis/roommanager/pkg/redis"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),
		fx.Provide(redis.New),
		ratelimit.Module,

		customer.Module,
		allocation.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
