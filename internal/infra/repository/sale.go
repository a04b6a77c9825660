package repository

import (
	"context"
	"log/slog"

	"kiosk-sales-api/internal/domain/sale"
	"kiosk-sales-api/internal/infra"
	"kiosk-sales-api/internal/infra/db"
	"kiosk-sales-api/internal/infra/repository/converter"
	"kiosk-sales-api/internal/pkg/errs"
)

const (
	registerSaleCall = `CALL registerSale(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	latestReceiptQuery = `
SELECT r.receiptID AS receiptId,
       r.receiptNumber AS invoiceNumber,
       r.total AS total
FROM mk_receipts r
INNER JOIN mk_kiosks k ON k.kioskID = r.kioskID
WHERE r.receiptNumber = ?
  AND k.kioskName = ?
ORDER BY r.postTime DESC
LIMIT 1`
)

type SaleRepository struct {
	pool   db.Pool
	logger *slog.Logger
}

func NewSaleRepository(pool db.Pool, logger *slog.Logger) *SaleRepository {
	return &SaleRepository{pool: pool, logger: logger}
}

// Register runs the registerSale procedure and reads the resulting receipt back
// on the same connection.
func (r *SaleRepository) Register(ctx context.Context, reg sale.Registration) (*sale.Receipt, error) {
	var receipt *sale.Receipt
	err := db.WithSession(ctx, r.pool, func(sess db.Session) error {
		if err := sess.Exec(ctx, registerSaleCall, converter.RegistrationToArgs(reg)...); err != nil {
			return infra.WrapRepoErr(r.logger, "registerSale failed", err)
		}

		rs, err := sess.Query(ctx, latestReceiptQuery, reg.InvoiceNumber, reg.LocalName)
		if err != nil {
			return infra.WrapRepoErr(r.logger, "failed to read receipt", err)
		}
		row, ok := rs.FirstRow()
		if !ok {
			return infra.NewRepoErr(r.logger, infra.KindNotFound, "receipt not found after registerSale",
				errs.Mark(errs.New("no receipt row"), errs.ErrWriteNotConfirmed))
		}
		receipt, err = converter.RowToReceipt(row)
		if err != nil {
			return infra.NewRepoErr(r.logger, infra.KindDBFailure, "failed to convert receipt row", err)
		}
		return nil
	})
	if err != nil {
		return nil, infra.EnsureRepoErr(r.logger, "failed to register sale", err)
	}
	return receipt, nil
}
