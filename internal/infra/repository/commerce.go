package repository

import (
	"context"
	"log/slog"

	"kiosk-sales-api/internal/domain/settlement"
	"kiosk-sales-api/internal/infra"
	"kiosk-sales-api/internal/infra/db"
)

const settleCommerceCall = `CALL settleCommerce(?, ?, ?, ?)`

type CommerceRepository struct {
	pool   db.Pool
	logger *slog.Logger
}

func NewCommerceRepository(pool db.Pool, logger *slog.Logger) *CommerceRepository {
	return &CommerceRepository{pool: pool, logger: logger}
}

func (r *CommerceRepository) Settle(ctx context.Context, req settlement.Request) (settlement.Outcome, error) {
	var outcome settlement.Outcome
	err := db.WithSession(ctx, r.pool, func(sess db.Session) error {
		rs, err := sess.Query(ctx, settleCommerceCall, req.CommerceName, req.LocalName, req.UserID, req.TerminalID)
		if err != nil {
			return infra.WrapRepoErr(r.logger, "settlement procedure failed", err)
		}
		r.logger.Debug("settleCommerce returned", slog.String("shape", rs.Shape().String()))
		switch rs.Shape() {
		case db.ShapeNoRows:
			outcome = settlement.NoResponse()
		case db.ShapeSingleRow, db.ShapeSingleSet:
			row, _ := rs.FirstRow()
			outcome = settlement.FromRow(row)
		default:
			primary := rs.Primary(settlement.ColMessage)
			if len(primary) == 0 {
				outcome = settlement.NoResponse()
				return nil
			}
			outcome = settlement.FromRow(primary[0])
		}
		return nil
	})
	if err != nil {
		return settlement.Outcome{}, infra.EnsureRepoErr(r.logger, "failed to settle commerce", err)
	}
	return outcome, nil
}
