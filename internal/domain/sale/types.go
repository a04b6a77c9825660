package sale

import "github.com/shopspring/decimal"

// Pricing is the active price row of a product at a location. A location is a
// kiosk in the catalog, so LocationID and KioskID share the same identifier.
type Pricing struct {
	KioskID        int64
	ProductID      int64
	ProductPriceID int64
	UnitPrice      decimal.Decimal
}

func (p Pricing) LocationID() int64 {
	return p.KioskID
}

// Registration carries the positional arguments of the registerSale procedure.
type Registration struct {
	ProductName          string
	LocalName            string
	QtySold              int64
	AmountPaid           decimal.Decimal
	PaymentMethod        string
	PaymentConfirmations string
	ReferenceNumbers     *string
	InvoiceNumber        int64
	ClientCode           string
	DiscountApplied      decimal.Decimal
	UserID               int64
}

// Receipt holds the authoritative values written by registerSale.
type Receipt struct {
	ReceiptID     int64
	InvoiceNumber int64
	Total         decimal.Decimal
}
