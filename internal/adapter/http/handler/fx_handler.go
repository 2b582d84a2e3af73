package handler

import (
	"wallet-core/internal/adapter/http/dto"
	"wallet-core/internal/core/ports"
	"wallet-core/pkg/apperror"
	"wallet-core/pkg/response"

	"github.com/gin-gonic/gin"
)

// FXHandler handles currency conversion endpoints.
type FXHandler struct {
	fxSvc ports.FXService
}

// NewFXHandler creates a new FXHandler.
func NewFXHandler(fxSvc ports.FXService) *FXHandler {
	return &FXHandler{fxSvc: fxSvc}
}

// Convert handles POST /api/v1/fx/convert.
func (h *FXHandler) Convert(c *gin.Context) {
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.fxSvc.Convert(c.Request.Context(), req.Amount, req.From, req.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ConvertResponse{
		Amount:          result.Amount,
		ConvertedAmount: result.ConvertedAmount,
		FromCurrency:    result.FromCurrency,
		ToCurrency:      result.ToCurrency,
		Rate:            result.Rate,
	})
}
