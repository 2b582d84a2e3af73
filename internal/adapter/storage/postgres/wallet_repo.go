package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const walletColumns = `id, owner_id, public_id, balance, currency, status,
	total_received, total_sent, blocked_reason, blocked_at, last_transaction_at, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet. A concurrent creation for the same
// (owner_id, currency) pair surfaces as ports.ErrConflict.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, owner_id, public_id, balance, currency, status,
		total_received, total_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.OwnerID, w.PublicID, w.Balance, w.Currency, w.Status,
		w.TotalReceived, w.TotalSent, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return classify("insert wallet", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := fmt.Sprintf(`SELECT %s FROM wallets WHERE id = $1`, walletColumns)
	return scanWallet(r.pool.QueryRow(ctx, query, id))
}

// GetByOwnerAndCurrency fetches a wallet by owner and currency (non-locking read).
func (r *WalletRepo) GetByOwnerAndCurrency(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error) {
	query := fmt.Sprintf(`SELECT %s FROM wallets WHERE owner_id = $1 AND currency = $2`, walletColumns)
	return scanWallet(r.pool.QueryRow(ctx, query, ownerID, currency))
}

// GetByIDForUpdate fetches a wallet by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	query := fmt.Sprintf(`SELECT %s FROM wallets WHERE id = $1 FOR UPDATE`, walletColumns)
	return scanWallet(tx.QueryRow(ctx, query, id))
}

// ListByOwner fetches all wallets belonging to an owner.
func (r *WalletRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error) {
	query := fmt.Sprintf(`SELECT %s FROM wallets WHERE owner_id = $1 ORDER BY created_at`, walletColumns)

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list wallets by owner: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		w := domain.Wallet{}
		if err := scanWalletRow(rows, &w); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return wallets, nil
}

// UpdateBalances writes the post-operation balance and running totals
// within a transaction.
func (r *WalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance, totalReceived, totalSent int64, lastTransactionAt time.Time) error {
	query := `UPDATE wallets SET balance = $1, total_received = $2, total_sent = $3,
		last_transaction_at = $4, updated_at = NOW() WHERE id = $5`

	tag, err := tx.Exec(ctx, query, balance, totalReceived, totalSent, lastTransactionAt, walletID)
	if err != nil {
		return classify("update wallet balances", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

// UpdateStatus transitions a wallet's status within a transaction.
func (r *WalletRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, status domain.WalletStatus, reason *string, blockedAt *time.Time) error {
	query := `UPDATE wallets SET status = $1, blocked_reason = $2, blocked_at = $3, updated_at = NOW()
		WHERE id = $4`

	tag, err := tx.Exec(ctx, query, status, reason, blockedAt, walletID)
	if err != nil {
		return classify("update wallet status", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.OwnerID, &w.PublicID, &w.Balance, &w.Currency, &w.Status,
		&w.TotalReceived, &w.TotalSent, &w.BlockedReason, &w.BlockedAt,
		&w.LastTransactionAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}

func scanWalletRow(rows pgx.Rows, w *domain.Wallet) error {
	return rows.Scan(
		&w.ID, &w.OwnerID, &w.PublicID, &w.Balance, &w.Currency, &w.Status,
		&w.TotalReceived, &w.TotalSent, &w.BlockedReason, &w.BlockedAt,
		&w.LastTransactionAt, &w.CreatedAt, &w.UpdatedAt,
	)
}
