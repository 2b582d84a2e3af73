package handler

import (
	"net/http"
	"time"

	"wallet-core/internal/adapter/http/dto"
	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"
	"wallet-core/pkg/apperror"
	"wallet-core/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet lifecycle endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// Ensure handles POST /api/v1/wallets. Creating a wallet is idempotent:
// repeated calls for the same owner and currency return the same wallet.
func (h *WalletHandler) Ensure(c *gin.Context) {
	var req dto.EnsureWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid owner id"))
		return
	}

	wallet, err := h.walletSvc.EnsureWallet(c.Request.Context(), ownerID, req.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWalletResponse(wallet))
}

// Get handles GET /api/v1/wallets/:id.
func (h *WalletHandler) Get(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	wallet, err := h.walletSvc.GetWallet(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWalletResponse(wallet))
}

// SetStatus handles PATCH /api/v1/wallets/:id/status.
func (h *WalletHandler) SetStatus(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	var req dto.SetWalletStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	status := domain.WalletStatus(req.Status)
	if err := h.walletSvc.SetStatus(c.Request.Context(), walletID, status, req.Reason, req.Actor); err != nil {
		response.Error(c, err)
		return
	}

	wallet, err := h.walletSvc.GetWallet(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWalletResponse(wallet))
}

func toWalletResponse(w *domain.Wallet) dto.WalletResponse {
	resp := dto.WalletResponse{
		ID:            w.ID.String(),
		OwnerID:       w.OwnerID.String(),
		PublicID:      w.PublicID,
		Balance:       w.Balance,
		Currency:      w.Currency,
		Status:        string(w.Status),
		TotalReceived: w.TotalReceived,
		TotalSent:     w.TotalSent,
		BlockedReason: w.BlockedReason,
		CreatedAt:     w.CreatedAt.UTC().Format(time.RFC3339),
	}
	if w.LastTransactionAt != nil {
		s := w.LastTransactionAt.UTC().Format(time.RFC3339)
		resp.LastTransactionAt = &s
	}
	return resp
}

// HealthCheck handles GET /health. Deep check verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
