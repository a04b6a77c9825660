package repository

import (
	"context"
	"log/slog"

	"kiosk-sales-api/internal/domain/sale"
	"kiosk-sales-api/internal/infra"
	"kiosk-sales-api/internal/infra/db"
	"kiosk-sales-api/internal/infra/repository/converter"
)

const activePriceQuery = `
SELECT k.kioskID AS kioskId,
       p.productID AS productId,
       pp.productPriceID AS productPriceId,
       pp.price AS unitPrice
FROM mk_kiosks k
INNER JOIN mk_products p ON p.kioskID = k.kioskID
INNER JOIN mk_productPrices pp ON pp.productID = p.productID
WHERE k.kioskName = ?
  AND p.name = ?
  AND pp.currentPrice = 1
ORDER BY pp.postTime DESC, pp.productPriceID DESC
LIMIT 1`

type PricingRepository struct {
	pool   db.Pool
	logger *slog.Logger
}

func NewPricingRepository(pool db.Pool, logger *slog.Logger) *PricingRepository {
	return &PricingRepository{pool: pool, logger: logger}
}

// FindActivePrice returns nil when the kiosk has no current price for the product.
func (r *PricingRepository) FindActivePrice(ctx context.Context, localName, productName string) (*sale.Pricing, error) {
	var pricing *sale.Pricing
	err := db.WithSession(ctx, r.pool, func(sess db.Session) error {
		rs, err := sess.Query(ctx, activePriceQuery, localName, productName)
		if err != nil {
			return infra.WrapRepoErr(r.logger, "failed to query active price", err)
		}
		row, ok := rs.FirstRow()
		if !ok {
			return nil
		}
		pricing, err = converter.RowToPricing(row)
		if err != nil {
			return infra.NewRepoErr(r.logger, infra.KindDBFailure, "failed to convert pricing row", err)
		}
		return nil
	})
	if err != nil {
		return nil, infra.EnsureRepoErr(r.logger, "failed to look up active price", err)
	}
	return pricing, nil
}
