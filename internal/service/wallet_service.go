package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"
	"wallet-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	ledgerRepo ports.LedgerRepository
	allocator  ports.IdentifierAllocator
	transactor ports.DBTransactor
	audit      ports.AuditSink
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	ledgerRepo ports.LedgerRepository,
	allocator ports.IdentifierAllocator,
	transactor ports.DBTransactor,
	audit ports.AuditSink,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		allocator:  allocator,
		transactor: transactor,
		audit:      audit,
		log:        log,
	}
}

// EnsureWallet returns the owner's wallet for the currency, creating it
// lazily when absent. Concurrent first use is resolved by the uniqueness
// constraint on (owner, currency): the loser of the race re-reads the
// winner's row.
func (s *WalletServiceImpl) EnsureWallet(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error) {
	existing, err := s.walletRepo.GetByOwnerAndCurrency(ctx, ownerID, currency)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup wallet: %w", err))
	}
	if existing != nil {
		return existing, nil
	}

	publicID, err := s.allocator.Allocate(ctx, domain.ScopeWallets, &ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		PublicID:  publicID.Value,
		Balance:   0,
		Currency:  currency,
		Status:    domain.WalletStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		if errors.Is(err, ports.ErrConflict) {
			// Lost a creation race; the other writer's wallet is the one.
			winner, getErr := s.walletRepo.GetByOwnerAndCurrency(ctx, ownerID, currency)
			if getErr != nil {
				return nil, apperror.InternalError(fmt.Errorf("re-read wallet after conflict: %w", getErr))
			}
			if winner == nil {
				return nil, apperror.InternalError(fmt.Errorf("wallet conflict but no row for owner %s", ownerID))
			}
			return winner, nil
		}
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("owner_id", ownerID.String()).
		Str("public_id", wallet.PublicID).
		Str("currency", currency).
		Msg("wallet created")

	s.audit.Record(ctx, &domain.AuditRecord{
		ID:           uuid.New(),
		OwnerID:      &ownerID,
		Action:       domain.AuditActionWalletCreate,
		ResourceType: "wallet",
		ResourceID:   wallet.ID.String(),
		Actor:        "system",
		CreatedAt:    now,
	})

	return wallet, nil
}

// GetWallet fetches a wallet by its internal identifier.
func (s *WalletServiceImpl) GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return wallet, nil
}

// SetStatus transitions the wallet between Active and Blocked under a row
// lock and appends a zero-amount ledger entry recording the change. A
// transition to the current status is a no-op.
func (s *WalletServiceImpl) SetStatus(ctx context.Context, walletID uuid.UUID, status domain.WalletStatus, reason, actor string) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, walletID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return apperror.ErrNotFound("wallet")
	}
	if wallet.Status == status {
		return nil
	}

	now := time.Now().UTC()
	var blockedReason *string
	var blockedAt *time.Time
	entryKind := domain.EntryKindUnblock
	auditAction := domain.AuditActionUnblock
	if status == domain.WalletStatusBlocked {
		blockedReason = &reason
		blockedAt = &now
		entryKind = domain.EntryKindBlock
		auditAction = domain.AuditActionBlock
	}

	if err := s.walletRepo.UpdateStatus(ctx, dbTx, walletID, status, blockedReason, blockedAt); err != nil {
		return apperror.InternalError(fmt.Errorf("update wallet status: %w", err))
	}

	entry := &domain.LedgerEntry{
		ID:            uuid.New(),
		WalletID:      walletID,
		OwnerID:       wallet.OwnerID,
		Kind:          entryKind,
		Amount:        0,
		Currency:      wallet.Currency,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  wallet.Balance,
		Status:        domain.EntryStatusCompleted,
		Metadata:      map[string]string{"reason": reason, "actor": actor},
		CreatedAt:     now,
	}
	if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
		return apperror.InternalError(fmt.Errorf("record status entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("wallet_id", walletID.String()).
		Str("status", string(status)).
		Str("actor", actor).
		Msg("wallet status changed")

	details, _ := json.Marshal(map[string]string{"reason": reason})
	s.audit.Record(ctx, &domain.AuditRecord{
		ID:           uuid.New(),
		OwnerID:      &wallet.OwnerID,
		Action:       auditAction,
		ResourceType: "wallet",
		ResourceID:   walletID.String(),
		Details:      string(details),
		Actor:        actor,
		CreatedAt:    now,
	})

	return nil
}
