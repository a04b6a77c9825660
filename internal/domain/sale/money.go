package sale

import "github.com/shopspring/decimal"

// TaxRate is the sales tax applied on top of the discounted subtotal.
var TaxRate = decimal.RequireFromString("0.13")

// Round2 rounds to cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
