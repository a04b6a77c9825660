package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"kiosk-sales-api/internal/domain/sale"
	reqdto "kiosk-sales-api/internal/handler/dto/request"
	"kiosk-sales-api/internal/infra/events"
	"kiosk-sales-api/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=sale.go -destination=../../tests/mock/usecase/sale.go -package=usecasemock

const (
	msgInvalidSale   = "Invalid sale payload"
	msgNegativeTotal = "Calculated total is negative; review the discount applied."
	msgSaleOK        = "Sale registered successfully"
)

type PricingRepository interface {
	FindActivePrice(ctx context.Context, localName, productName string) (*sale.Pricing, error)
}

type SaleRepository interface {
	Register(ctx context.Context, reg sale.Registration) (*sale.Receipt, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}

type SaleUseCase interface {
	RegisterSale(ctx context.Context, req reqdto.RegisterSaleRequest) (*SaleResult, error)
}

type SaleResult struct {
	Message       string
	ReceiptID     int64
	InvoiceNumber int64
	Total         decimal.Decimal
	AmountPaid    decimal.Decimal
	Change        decimal.Decimal
	// Quote is nil when the product had no active price.
	Quote *sale.Quote
}

type saleInput struct {
	ProductName          string          `json:"productName" validate:"required,max=20"`
	LocalName            string          `json:"localName" validate:"required,max=20"`
	QtySold              int64           `json:"qtySold" validate:"gt=0"`
	AmountPaid           decimal.Decimal `json:"amountPaid" validate:"gte=0"`
	PaymentMethod        string          `json:"paymentMethod" validate:"required,max=100"`
	PaymentConfirmations string          `json:"paymentConfirmations" validate:"required,max=255"`
	ReferenceNumbers     *string         `json:"referenceNumbers" validate:"omitempty,max=255"`
	InvoiceNumber        int64           `json:"invoiceNumber" validate:"gt=0"`
	ClientCode           string          `json:"clientCode" validate:"required,max=50"`
	DiscountApplied      decimal.Decimal `json:"discountApplied" validate:"gte=0"`
	UserID               int64           `json:"userId" validate:"gt=0"`
}

func (in saleInput) registration() sale.Registration {
	return sale.Registration{
		ProductName:          in.ProductName,
		LocalName:            in.LocalName,
		QtySold:              in.QtySold,
		AmountPaid:           in.AmountPaid,
		PaymentMethod:        in.PaymentMethod,
		PaymentConfirmations: in.PaymentConfirmations,
		ReferenceNumbers:     in.ReferenceNumbers,
		InvoiceNumber:        in.InvoiceNumber,
		ClientCode:           in.ClientCode,
		DiscountApplied:      in.DiscountApplied,
		UserID:               in.UserID,
	}
}

type saleUseCaseImpl struct {
	pricingRepo PricingRepository
	saleRepo    SaleRepository
	publisher   EventPublisher
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewSaleUseCase(
	pricingRepo PricingRepository,
	saleRepo SaleRepository,
	publisher EventPublisher,
	logger *slog.Logger,
) SaleUseCase {
	return &saleUseCaseImpl{
		pricingRepo: pricingRepo,
		saleRepo:    saleRepo,
		publisher:   publisher,
		validate:    newValidator(),
		logger:      logger,
	}
}

func (s *saleUseCaseImpl) RegisterSale(ctx context.Context, req reqdto.RegisterSaleRequest) (*SaleResult, error) {
	in, err := s.parse(req)
	if err != nil {
		return nil, err
	}

	pricing, err := s.pricingRepo.FindActivePrice(ctx, in.LocalName, in.ProductName)
	if err != nil {
		return nil, err
	}

	var quote *sale.Quote
	if pricing != nil {
		q, qerr := sale.NewQuote(pricing.UnitPrice, in.QtySold, in.DiscountApplied)
		if qerr != nil {
			return nil, businessError(qerr)
		}
		if perr := q.CheckPayment(in.AmountPaid); perr != nil {
			return nil, businessError(perr)
		}
		quote = &q
	}

	receipt, err := s.saleRepo.Register(ctx, in.registration())
	if err != nil {
		return nil, err
	}

	total := sale.Round2(receipt.Total)
	result := &SaleResult{
		Message:       msgSaleOK,
		ReceiptID:     receipt.ReceiptID,
		InvoiceNumber: receipt.InvoiceNumber,
		Total:         total,
		AmountPaid:    sale.Round2(in.AmountPaid),
		Change:        sale.Change(in.AmountPaid, receipt.Total),
		Quote:         quote,
	}

	s.publishRegistered(ctx, in, result)
	return result, nil
}

func (s *saleUseCaseImpl) parse(req reqdto.RegisterSaleRequest) (saleInput, error) {
	check := newFieldChecker()
	in := saleInput{
		ProductName:          strings.TrimSpace(req.ProductName),
		LocalName:            strings.TrimSpace(req.LocalName),
		QtySold:              check.int64("qtySold", req.QtySold),
		AmountPaid:           check.decimal("amountPaid", req.AmountPaid),
		PaymentMethod:        strings.TrimSpace(req.PaymentMethod),
		PaymentConfirmations: strings.TrimSpace(req.PaymentConfirmations),
		ReferenceNumbers:     trimmedPtr(req.ReferenceNumbers),
		InvoiceNumber:        check.int64("invoiceNumber", req.InvoiceNumber),
		ClientCode:           strings.TrimSpace(req.ClientCode),
		DiscountApplied:      check.optionalDecimal("discountApplied", req.DiscountApplied),
		UserID:               check.int64("userId", req.UserID),
	}
	if err := check.validate(s.validate, in); err != nil {
		return saleInput{}, errs.Wrap(err, "sale validator misconfigured")
	}
	if issues := check.Issues(); len(issues) > 0 {
		return saleInput{}, NewPayloadError(msgInvalidSale, issues)
	}
	return in, nil
}

func businessError(err error) error {
	if errors.Is(err, sale.ErrNegativeTotal) {
		return NewBusinessError(msgNegativeTotal)
	}
	return NewBusinessError(err.Error())
}

func (s *saleUseCaseImpl) publishRegistered(ctx context.Context, in saleInput, r *SaleResult) {
	payload := map[string]any{
		"receiptId":     r.ReceiptID,
		"invoiceNumber": r.InvoiceNumber,
		"localName":     in.LocalName,
		"productName":   in.ProductName,
		"qtySold":       in.QtySold,
		"total":         r.Total.StringFixed(2),
		"amountPaid":    r.AmountPaid.StringFixed(2),
		"userId":        in.UserID,
	}
	key := strconv.FormatInt(r.InvoiceNumber, 10)
	if err := s.publisher.Publish(ctx, events.TypeSaleRegistered, key, payload); err != nil {
		s.logger.Warn("failed to publish sale event", slog.String("error", err.Error()), slog.Int64("invoiceNumber", r.InvoiceNumber))
	}
}
