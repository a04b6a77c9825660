package bootstrap

import (
	"context"
	"database/sql"

	"kiosk-sales-api/internal/infra/db"
	"kiosk-sales-api/internal/pkg/config"

	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
		fx.Annotate(
			db.NewMySQLPool,
			fx.As(new(db.Pool)),
		),
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*sql.DB, error) {
	conn, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return conn, nil
}
