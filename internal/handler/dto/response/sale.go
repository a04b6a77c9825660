package response

import (
	"kiosk-sales-api/internal/pkg/ptr"
	"kiosk-sales-api/internal/usecase"

	"github.com/shopspring/decimal"
)

type SaleResponse struct {
	Message       string   `json:"message"`
	ReceiptID     int64    `json:"receiptId"`
	InvoiceNumber int64    `json:"invoiceNumber"`
	Total         float64  `json:"total"`
	AmountPaid    float64  `json:"amountPaid"`
	Change        float64  `json:"change"`
	UnitPrice     *float64 `json:"unitPrice,omitempty"`
	SubTotal      *float64 `json:"subTotal,omitempty"`
	TaxAmount     *float64 `json:"taxAmount,omitempty"`
	Discount      *float64 `json:"discountApplied,omitempty"`
	ExpectedTotal *float64 `json:"expectedTotal,omitempty"`
}

func FromSaleResult(r *usecase.SaleResult) *SaleResponse {
	res := &SaleResponse{
		Message:       r.Message,
		ReceiptID:     r.ReceiptID,
		InvoiceNumber: r.InvoiceNumber,
		Total:         money(r.Total),
		AmountPaid:    money(r.AmountPaid),
		Change:        money(r.Change),
	}
	if q := r.Quote; q != nil {
		res.UnitPrice = moneyPtr(q.UnitPrice)
		res.SubTotal = moneyPtr(q.SubTotal)
		res.TaxAmount = moneyPtr(q.TaxAmount)
		res.Discount = moneyPtr(q.DiscountApplied)
		res.ExpectedTotal = moneyPtr(q.ExpectedTotal)
	}
	return res
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func moneyPtr(d decimal.Decimal) *float64 {
	return ptr.To(money(d))
}
