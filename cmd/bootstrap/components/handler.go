package components

import (
	"context"
	"time"

	"kiosk-sales-api/internal/handler"
	"kiosk-sales-api/internal/handler/api"
	"kiosk-sales-api/internal/handler/middleware"
	"kiosk-sales-api/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSaleHandler,
		api.NewCommerceHandler,
		NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)

func NewRateLimiter(lc fx.Lifecycle, cfg config.Config) *middleware.ClientRateLimiter {
	limiter := middleware.NewClientRateLimiter(cfg.RateLimit)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if cfg.RateLimit.Enabled {
				limiter.StartCleanup(time.Minute)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			limiter.Stop()
			return nil
		},
	})
	return limiter
}
