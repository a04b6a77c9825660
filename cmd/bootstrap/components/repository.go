package components

import (
	"kiosk-sales-api/internal/infra/repository"
	"kiosk-sales-api/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewPricingRepository,
			fx.As(new(usecase.PricingRepository)),
		),
		fx.Annotate(
			repository.NewSaleRepository,
			fx.As(new(usecase.SaleRepository)),
		),
		fx.Annotate(
			repository.NewCommerceRepository,
			fx.As(new(usecase.CommerceRepository)),
		),
	),
)
