package bootstrap

import (
	"context"
	"log/slog"

	"storefront/internal/infra/mongodb"
	"storefront/internal/pkg/config"

	"go.uber.org/fx"
)

var MongoModule = fx.Module("mongo",
	fx.Provide(
		NewMongoConnection,
	),
)

func NewMongoConnection(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *mongodb.Connection {
	conn := mongodb.New(cfg.Mongo, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return conn.Connect(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return conn.Disconnect(ctx)
		},
	})

	return conn
}
