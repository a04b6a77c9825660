package components

import (
	"kiosk-sales-api/internal/infra/events"
	"kiosk-sales-api/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	func(p events.Publisher) usecase.EventPublisher {
		return p
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		usecase.NewSaleUseCase,
		usecase.NewCommerceUseCase,
	),
)
