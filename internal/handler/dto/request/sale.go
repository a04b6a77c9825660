package request

type RegisterSaleRequest struct {
	ProductName          string  `json:"productName"`
	LocalName            string  `json:"localName"`
	QtySold              Number  `json:"qtySold,omitzero" swaggertype:"number"`
	AmountPaid           Number  `json:"amountPaid,omitzero" swaggertype:"number"`
	PaymentMethod        string  `json:"paymentMethod"`
	PaymentConfirmations string  `json:"paymentConfirmations"`
	ReferenceNumbers     *string `json:"referenceNumbers,omitempty"`
	InvoiceNumber        Number  `json:"invoiceNumber,omitzero" swaggertype:"integer"`
	ClientCode           string  `json:"clientCode"`
	DiscountApplied      Number  `json:"discountApplied,omitzero" swaggertype:"number"`
	UserID               Number  `json:"userId,omitzero" swaggertype:"integer"`
}
