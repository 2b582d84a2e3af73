package handler

import (
	"strconv"
	"time"

	"wallet-core/internal/adapter/http/dto"
	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"
	"wallet-core/pkg/apperror"
	"wallet-core/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportingHandler handles the back-office read endpoints.
type ReportingHandler struct {
	reportingSvc ports.ReportingService
}

// NewReportingHandler creates a new ReportingHandler.
func NewReportingHandler(reportingSvc ports.ReportingService) *ReportingHandler {
	return &ReportingHandler{reportingSvc: reportingSvc}
}

// OwnerStats handles GET /api/v1/owners/:id/stats.
func (h *ReportingHandler) OwnerStats(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid owner id"))
		return
	}

	stats, err := h.reportingSvc.GetOwnerWalletStats(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.OwnerStatsResponse{
		WalletCount:         stats.WalletCount,
		BalancesByCurrency:  stats.BalancesByCurrency,
		TransactionCount30d: stats.TransactionCount30d,
	}
	if stats.LastTransactionAt != nil {
		s := stats.LastTransactionAt.UTC().Format(time.RFC3339)
		resp.LastTransactionAt = &s
	}

	response.OK(c, resp)
}

// ListEntries handles GET /api/v1/wallets/:id/entries.
func (h *ReportingHandler) ListEntries(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	entries, total, err := h.reportingSvc.ListEntries(c.Request.Context(), walletID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.EntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, toEntryResponse(&entries[i]))
	}

	response.Paginated(c, items, total, page, pageSize)
}

func toEntryResponse(e *domain.LedgerEntry) dto.EntryResponse {
	resp := dto.EntryResponse{
		ID:            e.ID.String(),
		PublicID:      e.PublicID,
		WalletID:      e.WalletID.String(),
		Kind:          string(e.Kind),
		Amount:        e.Amount,
		Currency:      e.Currency,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Reference:     e.Reference,
		Status:        string(e.Status),
		Metadata:      e.Metadata,
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.CounterpartyWalletID != nil {
		s := e.CounterpartyWalletID.String()
		resp.CounterpartyWalletID = &s
	}
	return resp
}
