package converter

import (
	"fmt"
	"strconv"
	"strings"

	"kiosk-sales-api/internal/domain/sale"
	"kiosk-sales-api/internal/infra/db"

	"github.com/shopspring/decimal"
)

func RowToPricing(row db.Row) (*sale.Pricing, error) {
	kioskID, err := Int64(row, "kioskId")
	if err != nil {
		return nil, err
	}
	productID, err := Int64(row, "productId")
	if err != nil {
		return nil, err
	}
	priceID, err := Int64(row, "productPriceId")
	if err != nil {
		return nil, err
	}
	unitPrice, err := Decimal(row, "unitPrice")
	if err != nil {
		return nil, err
	}
	return &sale.Pricing{
		KioskID:        kioskID,
		ProductID:      productID,
		ProductPriceID: priceID,
		UnitPrice:      unitPrice,
	}, nil
}

func RowToReceipt(row db.Row) (*sale.Receipt, error) {
	receiptID, err := Int64(row, "receiptId")
	if err != nil {
		return nil, err
	}
	invoiceNumber, err := Int64(row, "invoiceNumber")
	if err != nil {
		return nil, err
	}
	total, err := Decimal(row, "total")
	if err != nil {
		return nil, err
	}
	return &sale.Receipt{
		ReceiptID:     receiptID,
		InvoiceNumber: invoiceNumber,
		Total:         total,
	}, nil
}

// RegistrationToArgs keeps the positional order of registerSale.
func RegistrationToArgs(r sale.Registration) []any {
	var refs any
	if r.ReferenceNumbers != nil {
		refs = *r.ReferenceNumbers
	}
	return []any{
		r.ProductName,
		r.LocalName,
		r.QtySold,
		r.AmountPaid.String(),
		r.PaymentMethod,
		r.PaymentConfirmations,
		refs,
		r.InvoiceNumber,
		r.ClientCode,
		r.DiscountApplied.String(),
		r.UserID,
	}
}

func Int64(row db.Row, col string) (int64, error) {
	switch v := row[col].(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", col, err)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("column %s is null", col)
	default:
		return 0, fmt.Errorf("column %s: unsupported type %T", col, v)
	}
}

func Decimal(row db.Row, col string) (decimal.Decimal, error) {
	switch v := row[col].(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("column %s: %w", col, err)
		}
		return d, nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case decimal.Decimal:
		return v, nil
	case nil:
		return decimal.Zero, fmt.Errorf("column %s is null", col)
	default:
		return decimal.Zero, fmt.Errorf("column %s: unsupported type %T", col, v)
	}
}
