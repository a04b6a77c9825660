package request

import "strings"

type SettleCommerceRequest struct {
	CommerceName string `json:"commerceName"`
	LocationName string `json:"locationName"`
	// LocalName is accepted as an alias so clients can reuse the sale payload's key.
	LocalName  string `json:"localName,omitempty" swaggerignore:"true"`
	UserID     Number `json:"userId,omitzero" swaggertype:"integer"`
	TerminalID string `json:"terminalId"`
}

// Location prefers locationName and falls back to the localName alias.
func (r SettleCommerceRequest) Location() string {
	if loc := strings.TrimSpace(r.LocationName); loc != "" {
		return loc
	}
	return strings.TrimSpace(r.LocalName)
}

// LocationConflict is true when both keys are present with different values.
func (r SettleCommerceRequest) LocationConflict() bool {
	loc, alias := strings.TrimSpace(r.LocationName), strings.TrimSpace(r.LocalName)
	return loc != "" && alias != "" && loc != alias
}
