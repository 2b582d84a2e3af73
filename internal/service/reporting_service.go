package service

import (
	"context"
	"fmt"
	"time"

	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"
	"wallet-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	statsWindow     = 30 * 24 * time.Hour
	defaultPageSize = 20
	maxPageSize     = 100
)

// ReportingServiceImpl implements ports.ReportingService.
type ReportingServiceImpl struct {
	walletRepo ports.WalletRepository
	ledgerRepo ports.LedgerRepository
	log        zerolog.Logger
}

// NewReportingService creates a new ReportingServiceImpl.
func NewReportingService(walletRepo ports.WalletRepository, ledgerRepo ports.LedgerRepository, log zerolog.Logger) *ReportingServiceImpl {
	return &ReportingServiceImpl{walletRepo: walletRepo, ledgerRepo: ledgerRepo, log: log}
}

// GetOwnerWalletStats aggregates all of an owner's wallets with their
// trailing 30-day activity.
func (s *ReportingServiceImpl) GetOwnerWalletStats(ctx context.Context, ownerID uuid.UUID) (*ports.OwnerWalletStats, error) {
	wallets, err := s.walletRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
	}

	stats := &ports.OwnerWalletStats{
		WalletCount:        len(wallets),
		BalancesByCurrency: make(map[string]int64, len(wallets)),
	}
	for i := range wallets {
		w := &wallets[i]
		stats.BalancesByCurrency[w.Currency] += w.Balance
		if w.LastTransactionAt != nil {
			if stats.LastTransactionAt == nil || w.LastTransactionAt.After(*stats.LastTransactionAt) {
				stats.LastTransactionAt = w.LastTransactionAt
			}
		}
	}

	activity, err := s.ledgerRepo.OwnerActivity(ctx, ownerID, time.Now().UTC().Add(-statsWindow))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("owner activity: %w", err))
	}
	stats.TransactionCount30d = activity.Count

	return stats, nil
}

// ListEntries pages through a wallet's ledger, newest first.
func (s *ReportingServiceImpl) ListEntries(ctx context.Context, walletID uuid.UUID, page, pageSize int) ([]domain.LedgerEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	entries, total, err := s.ledgerRepo.ListByWallet(ctx, walletID, page, pageSize)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list entries: %w", err))
	}
	return entries, total, nil
}
