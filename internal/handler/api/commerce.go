package api

import (
	"log/slog"
	"net/http"

	reqdto "kiosk-sales-api/internal/handler/dto/request"
	resdto "kiosk-sales-api/internal/handler/dto/response"
	"kiosk-sales-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CommerceHandler struct {
	commerceUseCase usecase.CommerceUseCase
	logger          *slog.Logger
}

func NewCommerceHandler(commerceUseCase usecase.CommerceUseCase, logger *slog.Logger) *CommerceHandler {
	return &CommerceHandler{commerceUseCase: commerceUseCase, logger: logger}
}

// @Summary Settle commerce
// @Description Run the settlement procedure for a commerce at a location
// @Tags commerce
// @Accept json
// @Produce json
// @Param request body reqdto.SettleCommerceRequest true "Settlement"
// @Success 200 {object} resdto.SettleResponse
// @Failure 400 {object} httperr.Response
// @Failure 415 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /commerce/settle [post]
func (h *CommerceHandler) Settle(c *gin.Context) {
	var req reqdto.SettleCommerceRequest
	if err := decodeStrict(c, &req, "Invalid settle payload"); err != nil {
		respondError(c, h.logger, err, false)
		return
	}

	outcome, err := h.commerceUseCase.SettleCommerce(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, false)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSettlementOutcome(outcome))
}
