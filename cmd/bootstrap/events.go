package bootstrap

import (
	"context"
	"log/slog"

	"kiosk-sales-api/internal/infra/events"
	"kiosk-sales-api/internal/pkg/clock"
	"kiosk-sales-api/internal/pkg/config"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewClock,
		NewPublisher,
	),
)

func NewClock(cfg config.Config) clock.Clock {
	return clock.NewClockIn(cfg.DB.TimeZone)
}

// NewPublisher falls back to a no-op publisher when no broker is configured.
func NewPublisher(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) events.Publisher {
	if !cfg.Events.Enabled() {
		logger.Info("Event publishing disabled: KAFKA_BROKERS not set")
		return events.NopPublisher{}
	}

	writer := events.NewKafkaWriter(cfg.Events, logger)
	publisher := events.NewKafkaPublisher(writer, clk, cfg.Events.WriteTimeout, logger)
	logger.Info("Event publishing enabled", "brokers", cfg.Events.Brokers, "topic", cfg.Events.Topic, "async", cfg.Events.Async)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
