package ports

import (
	"context"
	"time"

	"wallet-core/internal/core/domain"

	"github.com/google/uuid"
)

// IdentifierAllocator mints globally-unique public identifiers and reserves
// them against a scope. Allocation is bounded: when the attempt budget is
// exhausted it fails with a collision-exhausted error rather than looping.
type IdentifierAllocator interface {
	Allocate(ctx context.Context, scope string, ownerID *uuid.UUID) (*domain.PublicID, error)
}

// WalletService owns wallet lifecycle: lazy idempotent creation and
// Active/Blocked status transitions.
type WalletService interface {
	// EnsureWallet returns the owner's wallet for the currency, creating it
	// with a zero balance if absent. Safe under concurrent first use.
	EnsureWallet(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error)
	GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error)
	// SetStatus transitions Active<->Blocked and appends a zero-amount
	// BLOCK/UNBLOCK ledger entry recording reason and actor.
	SetStatus(ctx context.Context, walletID uuid.UUID, status domain.WalletStatus, reason, actor string) error
}

// LedgerService moves money between wallets with fee computation and
// atomicity guarantees. Business-rule failures are definitive; only
// transient store faults are retried internally.
type LedgerService interface {
	Deposit(ctx context.Context, req DepositRequest) (*OperationResult, error)
	Withdraw(ctx context.Context, req WithdrawRequest) (*OperationResult, error)
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
}

// DepositRequest holds validated input for a deposit.
type DepositRequest struct {
	WalletID uuid.UUID
	Amount   int64
	Method   string
	Metadata map[string]string
}

// WithdrawRequest holds validated input for a withdrawal.
type WithdrawRequest struct {
	WalletID uuid.UUID
	Amount   int64
	Method   string
	Metadata map[string]string
}

// TransferRequest holds validated input for a wallet-to-wallet transfer.
// Reference, when set, deduplicates retried submissions of the same transfer.
type TransferRequest struct {
	SenderWalletID  uuid.UUID
	ReceiverOwnerID uuid.UUID
	Amount          int64
	Description     string
	Reference       string
	Metadata        map[string]string
}

// OperationResult is the outcome of a deposit or withdrawal.
type OperationResult struct {
	EntryID   uuid.UUID `json:"entry_id"`
	NetAmount int64     `json:"net_amount"`
	Fee       int64     `json:"fee"`
	Balance   int64     `json:"balance"`
}

// TransferResult is the outcome of a transfer.
type TransferResult struct {
	PublicID        string    `json:"public_id"`
	SenderWalletID  uuid.UUID `json:"sender_wallet_id"`
	ReceiverWallet  uuid.UUID `json:"receiver_wallet_id"`
	Amount          int64     `json:"amount"`
	Fee             int64     `json:"fee"`
	SenderBalance   int64     `json:"sender_balance"`
	ReceiverBalance int64     `json:"receiver_balance"`
}

// FeeService resolves fee amounts from configuration.
type FeeService interface {
	// Resolve returns the fee (>= 0) for the operation; absence of an
	// active rule yields zero.
	Resolve(ctx context.Context, kind domain.OperationKind, currency string, amount int64) (int64, error)
}

// FraudService scores an owner's recent activity window.
type FraudService interface {
	// Evaluate applies the heuristics and persists a suspicious activity
	// record when at least one fires. Returns nil when nothing fired.
	Evaluate(ctx context.Context, input FraudInput) (*FraudAssessment, error)
}

// FraudInput describes the operation that triggered the evaluation.
type FraudInput struct {
	OwnerID  uuid.UUID
	WalletID uuid.UUID
	Amount   int64
	Kind     domain.OperationKind
}

// FraudAssessment is the heuristics outcome. ShouldBlock is a
// recommendation only; the caller decides whether to act on it.
type FraudAssessment struct {
	Record      *domain.SuspiciousActivity
	Severity    domain.Severity
	Flags       []string
	ShouldBlock bool
}

// FXService converts amounts between currencies.
type FXService interface {
	Convert(ctx context.Context, amount int64, from, to string) (*ConversionResult, error)
}

// ConversionResult holds a completed currency conversion.
type ConversionResult struct {
	Amount          int64   `json:"amount"`
	ConvertedAmount int64   `json:"converted_amount"`
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
	Rate            float64 `json:"rate"`
}

// ReportingService aggregates wallet and ledger data for back-office use.
type ReportingService interface {
	GetOwnerWalletStats(ctx context.Context, ownerID uuid.UUID) (*OwnerWalletStats, error)
	ListEntries(ctx context.Context, walletID uuid.UUID, page, pageSize int) ([]domain.LedgerEntry, int64, error)
}

// OwnerWalletStats aggregates an owner's wallets and recent activity.
type OwnerWalletStats struct {
	WalletCount         int              `json:"wallet_count"`
	BalancesByCurrency  map[string]int64 `json:"balances_by_currency"`
	TransactionCount30d int64            `json:"transaction_count_30d"`
	LastTransactionAt   *time.Time       `json:"last_transaction_at,omitempty"`
}

// AuditSink is the durable append-only operation log consumed, but not
// owned, by the ledger core. Implementations must not block the caller.
type AuditSink interface {
	Record(ctx context.Context, record *domain.AuditRecord)
}

// HealthChecker verifies connectivity of an external dependency.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}
