package usecase

import (
	"context"
	"log/slog"
	"strings"

	"kiosk-sales-api/internal/domain/settlement"
	reqdto "kiosk-sales-api/internal/handler/dto/request"
	"kiosk-sales-api/internal/infra/events"
	"kiosk-sales-api/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

//go:generate mockgen -source=commerce.go -destination=../../tests/mock/usecase/commerce.go -package=usecasemock

const (
	msgInvalidSettle  = "Invalid settle payload"
	msgSettlementFail = "Commerce settlement failed"
	msgLocationClash  = "Conflicts with localName"
)

type CommerceRepository interface {
	Settle(ctx context.Context, req settlement.Request) (settlement.Outcome, error)
}

type CommerceUseCase interface {
	SettleCommerce(ctx context.Context, req reqdto.SettleCommerceRequest) (*settlement.Outcome, error)
}

type settleInput struct {
	CommerceName string `json:"commerceName" validate:"required,max=50"`
	LocationName string `json:"locationName" validate:"required,max=45"`
	UserID       int64  `json:"userId" validate:"gt=0"`
	TerminalID   string `json:"terminalId" validate:"required,max=120"`
}

type commerceUseCaseImpl struct {
	commerceRepo CommerceRepository
	publisher    EventPublisher
	validate     *validator.Validate
	logger       *slog.Logger
}

func NewCommerceUseCase(commerceRepo CommerceRepository, publisher EventPublisher, logger *slog.Logger) CommerceUseCase {
	return &commerceUseCaseImpl{
		commerceRepo: commerceRepo,
		publisher:    publisher,
		validate:     newValidator(),
		logger:       logger,
	}
}

func (u *commerceUseCaseImpl) SettleCommerce(ctx context.Context, req reqdto.SettleCommerceRequest) (*settlement.Outcome, error) {
	check := newFieldChecker()
	in := settleInput{
		CommerceName: strings.TrimSpace(req.CommerceName),
		LocationName: req.Location(),
		UserID:       check.int64("userId", req.UserID),
		TerminalID:   strings.TrimSpace(req.TerminalID),
	}
	if req.LocationConflict() {
		check.add("locationName", msgLocationClash)
	}
	if err := check.validate(u.validate, in); err != nil {
		return nil, errs.Wrap(err, "settle validator misconfigured")
	}
	if issues := check.Issues(); len(issues) > 0 {
		return nil, NewPayloadError(msgInvalidSettle, issues)
	}

	outcome, err := u.commerceRepo.Settle(ctx, settlement.Request{
		CommerceName: in.CommerceName,
		LocalName:    in.LocationName,
		UserID:       in.UserID,
		TerminalID:   in.TerminalID,
	})
	if err != nil {
		return nil, err
	}
	if !outcome.Success {
		msg := outcome.Message
		if msg == "" {
			msg = msgSettlementFail
		}
		return nil, NewBusinessError(msg)
	}

	u.publishSettled(ctx, in, outcome)
	return &outcome, nil
}

func (u *commerceUseCaseImpl) publishSettled(ctx context.Context, in settleInput, o settlement.Outcome) {
	payload := map[string]any{
		"commerceName": in.CommerceName,
		"locationName": in.LocationName,
		"terminalId":   in.TerminalID,
		"userId":       in.UserID,
		"message":      o.Message,
	}
	if o.SettlementID != nil {
		payload["settlementId"] = *o.SettlementID
	}
	if o.TotalSales != nil {
		payload["totalSales"] = o.TotalSales.String()
	}
	if err := u.publisher.Publish(ctx, events.TypeCommerceSettled, in.CommerceName, payload); err != nil {
		u.logger.Warn("failed to publish settlement event", slog.String("error", err.Error()), slog.String("commerceName", in.CommerceName))
	}
}
