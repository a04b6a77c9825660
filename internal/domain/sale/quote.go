package sale

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeTotal       = errors.New("calculated total is negative")
	ErrInsufficientPayment = errors.New("insufficient payment")
)

// Quote is the expected bill for a priced sale. Every field is already rounded.
type Quote struct {
	UnitPrice       decimal.Decimal
	SubTotal        decimal.Decimal
	DiscountApplied decimal.Decimal
	TaxAmount       decimal.Decimal
	ExpectedTotal   decimal.Decimal
}

// NewQuote rounds at every derived step so the result matches what a cashier
// would compute cent by cent.
func NewQuote(unitPrice decimal.Decimal, qty int64, discount decimal.Decimal) (Quote, error) {
	subTotal := Round2(unitPrice.Mul(decimal.NewFromInt(qty)))
	discounted := Round2(subTotal.Sub(discount))
	tax := Round2(discounted.Mul(TaxRate))
	expected := Round2(discounted.Add(tax))

	if expected.IsNegative() {
		return Quote{}, ErrNegativeTotal
	}

	return Quote{
		UnitPrice:       Round2(unitPrice),
		SubTotal:        subTotal,
		DiscountApplied: Round2(discount),
		TaxAmount:       tax,
		ExpectedTotal:   expected,
	}, nil
}

func (q Quote) CheckPayment(amountPaid decimal.Decimal) error {
	if amountPaid.LessThan(q.ExpectedTotal) {
		return InsufficientPaymentError{Paid: amountPaid, Expected: q.ExpectedTotal}
	}
	return nil
}

type InsufficientPaymentError struct {
	Paid     decimal.Decimal
	Expected decimal.Decimal
}

func (e InsufficientPaymentError) Error() string {
	return fmt.Sprintf("Amount paid (%s) is insufficient. Expected at least %s.", e.Paid.String(), e.Expected.String())
}

func (e InsufficientPaymentError) Is(target error) bool {
	return target == ErrInsufficientPayment
}

// Change is what the cashier hands back, computed from the authoritative total.
func Change(amountPaid, total decimal.Decimal) decimal.Decimal {
	return Round2(amountPaid.Sub(total))
}
