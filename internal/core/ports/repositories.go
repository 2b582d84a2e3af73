package ports

import (
	"context"
	"errors"
	"time"

	"wallet-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Sentinel errors surfaced by repositories so services can react to
// datastore-level outcomes without knowing SQLSTATEs.
var (
	// ErrConflict is returned when an insert violates a uniqueness
	// constraint (identifier collision, concurrent wallet creation,
	// duplicate transfer reference).
	ErrConflict = errors.New("unique constraint conflict")

	// ErrSerialization is returned for retryable store faults:
	// serialization failures, deadlocks, lock timeouts.
	ErrSerialization = errors.New("serialization failure")
)

// ReservedIDRepository persists public identifier reservations.
// Reservation is a single atomic insert; a duplicate value yields
// ErrConflict, never a separate existence check.
type ReservedIDRepository interface {
	Reserve(ctx context.Context, id *domain.PublicID) error
	Get(ctx context.Context, value string) (*domain.PublicID, error)
}

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for
// pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error // ErrConflict on (owner, currency) duplicate
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByOwnerAndCurrency(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error)
	// UpdateBalances writes the post-operation balance and running totals
	// within a transaction. Totals are monotonically non-decreasing.
	UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance, totalReceived, totalSent int64, lastTransactionAt time.Time) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, status domain.WalletStatus, reason *string, blockedAt *time.Time) error
}

// LedgerRepository defines persistence for immutable ledger entries.
type LedgerRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	ListByWallet(ctx context.Context, walletID uuid.UUID, page, pageSize int) ([]domain.LedgerEntry, int64, error)
	// OwnerActivity aggregates money-movement entries for an owner since
	// the given instant (fraud window, reporting).
	OwnerActivity(ctx context.Context, ownerID uuid.UUID, since time.Time) (*ActivitySummary, error)
}

// ActivitySummary aggregates an owner's money-movement entries in a window.
type ActivitySummary struct {
	Count  int64
	Volume int64 // Sum of absolute amounts
}

// FeeRuleRepository resolves fee configuration rows.
type FeeRuleRepository interface {
	// GetActive returns the unique active rule for the pair, or nil if none.
	GetActive(ctx context.Context, kind domain.OperationKind, currency string) (*domain.FeeRule, error)
}

// SuspiciousActivityRepository persists fraud heuristic outcomes.
type SuspiciousActivityRepository interface {
	Create(ctx context.Context, record *domain.SuspiciousActivity) error
}

// ExchangeRateRepository resolves currency conversion rates.
type ExchangeRateRepository interface {
	// GetLatest returns the most recent active rate for the pair, or nil.
	GetLatest(ctx context.Context, from, to string) (*domain.ExchangeRate, error)
}

// AuditRepository persists append-only audit records.
type AuditRepository interface {
	Create(ctx context.Context, record *domain.AuditRecord) error
}

// TransferCache is the fast-path idempotency check for transfers keyed by
// client reference.
type TransferCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached result JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
