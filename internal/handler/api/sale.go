package api

import (
	"log/slog"
	"net/http"

	reqdto "kiosk-sales-api/internal/handler/dto/request"
	resdto "kiosk-sales-api/internal/handler/dto/response"
	"kiosk-sales-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	saleUseCase usecase.SaleUseCase
	logger      *slog.Logger
}

func NewSaleHandler(saleUseCase usecase.SaleUseCase, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{saleUseCase: saleUseCase, logger: logger}
}

// @Summary Register sale
// @Description Validate payment against the active price and register the sale
// @Tags sales
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterSaleRequest true "Sale"
// @Success 201 {object} resdto.SaleResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 415 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /sales [post]
func (h *SaleHandler) Register(c *gin.Context) {
	var req reqdto.RegisterSaleRequest
	if err := decodeStrict(c, &req, "Invalid sale payload"); err != nil {
		respondError(c, h.logger, err, true)
		return
	}

	result, err := h.saleUseCase.RegisterSale(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, true)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSaleResult(result))
}
