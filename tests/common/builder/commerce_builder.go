//go:build unit || e2e

package builder

import (
	"kiosk-sales-api/internal/domain/settlement"
	reqdto "kiosk-sales-api/internal/handler/dto/request"
)

type SettleBuilder struct {
	CommerceName string
	LocationName string
	// LocalName fills the alias key; empty leaves it out of the payload.
	LocalName    string
	UserID       string
	TerminalID   string
}

func NewSettleBuilder() *SettleBuilder {
	return &SettleBuilder{
		CommerceName: "Acme",
		LocationName: "Store1",
		UserID:       "1",
		TerminalID:   "POS-01",
	}
}

func (b *SettleBuilder) With(mutate func(*SettleBuilder)) *SettleBuilder {
	mutate(b)
	return b
}

func (b *SettleBuilder) BuildRequest() reqdto.SettleCommerceRequest {
	return reqdto.SettleCommerceRequest{
		CommerceName: b.CommerceName,
		LocationName: b.LocationName,
		LocalName:    b.LocalName,
		UserID:       reqdto.NumberOf(b.UserID),
		TerminalID:   b.TerminalID,
	}
}

func (b *SettleBuilder) BuildDomain() settlement.Request {
	userID, _ := reqdto.NumberOf(b.UserID).Int64()
	return settlement.Request{
		CommerceName: b.CommerceName,
		LocalName:    b.BuildRequest().Location(),
		UserID:       userID,
		TerminalID:   b.TerminalID,
	}
}
