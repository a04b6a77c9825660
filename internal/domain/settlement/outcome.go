package settlement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Column names produced by the settleCommerce procedure.
const (
	ColMessage          = "resultado"
	ColSettlementID     = "settlementId"
	ColTotalSales       = "totalVentas"
	ColCommissionRate   = "comisionPorcentaje"
	ColCommissionAmount = "montoComision"
	ColTenantAmount     = "montoTenant"
)

const (
	defaultMessage    = "Settlement completed"
	noResponseMessage = "Settlement failed to produce a response"
)

type Request struct {
	CommerceName string
	LocalName    string
	UserID       int64
	TerminalID   string
}

type Outcome struct {
	Success          bool
	Message          string
	SettlementID     *int64
	TotalSales       *decimal.Decimal
	CommissionRate   *decimal.Decimal
	CommissionAmount *decimal.Decimal
	TenantAmount     *decimal.Decimal
}

func NoResponse() Outcome {
	return Outcome{Success: false, Message: noResponseMessage}
}

// FromRow reads the first row of the procedure's primary result set.
func FromRow(row map[string]any) Outcome {
	message := defaultMessage
	if s, ok := row[ColMessage].(string); ok {
		message = s
	}

	return Outcome{
		Success:          InferSuccess(message),
		Message:          message,
		SettlementID:     parseID(row[ColSettlementID]),
		TotalSales:       parseAmount(row[ColTotalSales]),
		CommissionRate:   parseAmount(row[ColCommissionRate]),
		CommissionAmount: parseAmount(row[ColCommissionAmount]),
		TenantAmount:     parseAmount(row[ColTenantAmount]),
	}
}

// InferSuccess reads the procedure's prose: it reports success when the message
// mentions a settlement and does not mention an error.
// TODO: switch to an explicit status column once settleCommerce returns one.
func InferSuccess(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "settlement") && !strings.Contains(lower, "error")
}

func parseAmount(v any) *decimal.Decimal {
	var (
		d   decimal.Decimal
		err error
	)
	switch val := v.(type) {
	case nil:
		return nil
	case decimal.Decimal:
		d = val
	case int64:
		d = decimal.NewFromInt(val)
	case int:
		d = decimal.NewFromInt(int64(val))
	case float64:
		d = decimal.NewFromFloat(val)
	case float32:
		d = decimal.NewFromFloat32(val)
	case []byte:
		return parseAmount(string(val))
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil
		}
		d, err = decimal.NewFromString(s)
		if err != nil {
			return nil
		}
	default:
		d, err = decimal.NewFromString(fmt.Sprint(val))
		if err != nil {
			return nil
		}
	}
	return &d
}

func parseID(v any) *int64 {
	switch val := v.(type) {
	case int64:
		return &val
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return nil
		}
		return &id
	case []byte:
		return parseID(string(val))
	}
	d := parseAmount(v)
	if d == nil || !d.IsInteger() {
		return nil
	}
	id := d.IntPart()
	return &id
}
