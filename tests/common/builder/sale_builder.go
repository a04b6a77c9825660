//go:build unit || e2e

package builder

import (
	"kiosk-sales-api/internal/domain/sale"
	reqdto "kiosk-sales-api/internal/handler/dto/request"

	"github.com/shopspring/decimal"
)

// SaleBuilder defaults to the "Soda at Store1" scenario: unit price 2.00, two
// units, expected total 4.52.
type SaleBuilder struct {
	ProductName          string
	LocalName            string
	QtySold              string
	AmountPaid           string
	PaymentMethod        string
	PaymentConfirmations string
	ReferenceNumbers     *string
	InvoiceNumber        string
	ClientCode           string
	DiscountApplied      string
	UserID               string
}

func NewSaleBuilder() *SaleBuilder {
	return &SaleBuilder{
		ProductName:          "Soda",
		LocalName:            "Store1",
		QtySold:              "2",
		AmountPaid:           "5",
		PaymentMethod:        "cash",
		PaymentConfirmations: "c1",
		InvoiceNumber:        "100",
		ClientCode:           "C1",
		UserID:               "1",
	}
}

func (b *SaleBuilder) With(mutate func(*SaleBuilder)) *SaleBuilder {
	mutate(b)
	return b
}

func (b *SaleBuilder) BuildRequest() reqdto.RegisterSaleRequest {
	req := reqdto.RegisterSaleRequest{
		ProductName:          b.ProductName,
		LocalName:            b.LocalName,
		QtySold:              reqdto.NumberOf(b.QtySold),
		AmountPaid:           reqdto.NumberOf(b.AmountPaid),
		PaymentMethod:        b.PaymentMethod,
		PaymentConfirmations: b.PaymentConfirmations,
		ReferenceNumbers:     b.ReferenceNumbers,
		InvoiceNumber:        reqdto.NumberOf(b.InvoiceNumber),
		ClientCode:           b.ClientCode,
		UserID:               reqdto.NumberOf(b.UserID),
	}
	if b.DiscountApplied != "" {
		req.DiscountApplied = reqdto.NumberOf(b.DiscountApplied)
	}
	return req
}

// BuildRegistration is what the repository receives for the builder's values.
func (b *SaleBuilder) BuildRegistration() sale.Registration {
	discount := decimal.Zero
	if b.DiscountApplied != "" {
		discount = decimal.RequireFromString(b.DiscountApplied)
	}
	req := b.BuildRequest()
	qty, _ := req.QtySold.Int64()
	invoice, _ := req.InvoiceNumber.Int64()
	userID, _ := req.UserID.Int64()
	return sale.Registration{
		ProductName:          b.ProductName,
		LocalName:            b.LocalName,
		QtySold:              qty,
		AmountPaid:           decimal.RequireFromString(b.AmountPaid),
		PaymentMethod:        b.PaymentMethod,
		PaymentConfirmations: b.PaymentConfirmations,
		ReferenceNumbers:     b.ReferenceNumbers,
		InvoiceNumber:        invoice,
		ClientCode:           b.ClientCode,
		DiscountApplied:      discount,
		UserID:               userID,
	}
}

func NewPricing(unitPrice string) *sale.Pricing {
	return &sale.Pricing{
		KioskID:        1,
		ProductID:      10,
		ProductPriceID: 100,
		UnitPrice:      decimal.RequireFromString(unitPrice),
	}
}

func NewReceipt(receiptID, invoiceNumber int64, total string) *sale.Receipt {
	return &sale.Receipt{
		ReceiptID:     receiptID,
		InvoiceNumber: invoiceNumber,
		Total:         decimal.RequireFromString(total),
	}
}
