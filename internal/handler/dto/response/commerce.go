package response

import (
	"kiosk-sales-api/internal/domain/settlement"
	"kiosk-sales-api/internal/pkg/ptr"

	"github.com/shopspring/decimal"
)

type SettleResponse struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message"`
	SettlementID     *int64   `json:"settlementId,omitempty"`
	TotalSales       *float64 `json:"totalSales,omitempty"`
	CommissionRate   *float64 `json:"commissionRate,omitempty"`
	CommissionAmount *float64 `json:"commissionAmount,omitempty"`
	TenantAmount     *float64 `json:"tenantAmount,omitempty"`
}

func FromSettlementOutcome(o *settlement.Outcome) *SettleResponse {
	return &SettleResponse{
		Success:          o.Success,
		Message:          o.Message,
		SettlementID:     o.SettlementID,
		TotalSales:       amount(o.TotalSales),
		CommissionRate:   amount(o.CommissionRate),
		CommissionAmount: amount(o.CommissionAmount),
		TenantAmount:     amount(o.TenantAmount),
	}
}

// amount passes procedure values through unrounded.
func amount(d *decimal.Decimal) *float64 {
	return ptr.Map(d, decimal.Decimal.InexactFloat64)
}
