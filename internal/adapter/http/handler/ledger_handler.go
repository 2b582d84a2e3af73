package handler

import (
	"wallet-core/internal/adapter/http/dto"
	"wallet-core/internal/core/ports"
	"wallet-core/pkg/apperror"
	"wallet-core/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler handles money-movement endpoints.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// Deposit handles POST /api/v1/wallets/:id/deposit.
func (h *LedgerHandler) Deposit(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.ledgerSvc.Deposit(c.Request.Context(), ports.DepositRequest{
		WalletID: walletID,
		Amount:   req.Amount,
		Method:   req.Method,
		Metadata: req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toOperationResponse(result))
}

// Withdraw handles POST /api/v1/wallets/:id/withdraw.
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.ledgerSvc.Withdraw(c.Request.Context(), ports.WithdrawRequest{
		WalletID: walletID,
		Amount:   req.Amount,
		Method:   req.Method,
		Metadata: req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toOperationResponse(result))
}

// Transfer handles POST /api/v1/transfers.
func (h *LedgerHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	senderID, err := uuid.Parse(req.SenderWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid sender wallet id"))
		return
	}
	receiverOwnerID, err := uuid.Parse(req.ReceiverOwnerID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid receiver owner id"))
		return
	}

	result, err := h.ledgerSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		SenderWalletID:  senderID,
		ReceiverOwnerID: receiverOwnerID,
		Amount:          req.Amount,
		Description:     req.Description,
		Reference:       req.Reference,
		Metadata:        req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.TransferResponse{
		PublicID:         result.PublicID,
		SenderWalletID:   result.SenderWalletID.String(),
		ReceiverWalletID: result.ReceiverWallet.String(),
		Amount:           result.Amount,
		Fee:              result.Fee,
		SenderBalance:    result.SenderBalance,
		ReceiverBalance:  result.ReceiverBalance,
	})
}

func toOperationResponse(r *ports.OperationResult) dto.OperationResponse {
	return dto.OperationResponse{
		EntryID:   r.EntryID.String(),
		NetAmount: r.NetAmount,
		Fee:       r.Fee,
		Balance:   r.Balance,
	}
}
