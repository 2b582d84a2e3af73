package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const ledgerColumns = `id, public_id, wallet_id, owner_id, kind, amount, currency,
	balance_before, balance_after, counterparty_wallet_id, reference, status, metadata, created_at`

// LedgerRepo implements ports.LedgerRepository.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Create inserts an immutable ledger entry within a database transaction.
func (r *LedgerRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	metadata, err := marshalMetadata(e.Metadata)
	if err != nil {
		return fmt.Errorf("marshal entry metadata: %w", err)
	}

	query := `INSERT INTO ledger_entries (id, public_id, wallet_id, owner_id, kind, amount, currency,
		balance_before, balance_after, counterparty_wallet_id, reference, status, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = tx.Exec(ctx, query,
		e.ID, e.PublicID, e.WalletID, e.OwnerID, e.Kind, e.Amount, e.Currency,
		e.BalanceBefore, e.BalanceAfter, e.CounterpartyWalletID, e.Reference, e.Status, metadata, e.CreatedAt,
	)
	if err != nil {
		return classify("insert ledger entry", err)
	}
	return nil
}

// ListByWallet fetches a wallet's entries, newest first, with pagination.
func (r *LedgerRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, page, pageSize int) ([]domain.LedgerEntry, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries WHERE wallet_id = $1`, walletID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`SELECT %s FROM ledger_entries WHERE wallet_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, ledgerColumns)

	rows, err := r.pool.Query(ctx, query, walletID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e := domain.LedgerEntry{}
		var metadata []byte
		err := rows.Scan(
			&e.ID, &e.PublicID, &e.WalletID, &e.OwnerID, &e.Kind, &e.Amount, &e.Currency,
			&e.BalanceBefore, &e.BalanceAfter, &e.CounterpartyWalletID, &e.Reference, &e.Status, &metadata, &e.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan ledger entry: %w", err)
		}
		if e.Metadata, err = unmarshalMetadata(metadata); err != nil {
			return nil, 0, fmt.Errorf("unmarshal entry metadata: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return entries, total, nil
}

// OwnerActivity aggregates money-movement entries for an owner since the
// given instant. Status-only entries (BLOCK/UNBLOCK) are excluded.
func (r *LedgerRepo) OwnerActivity(ctx context.Context, ownerID uuid.UUID, since time.Time) (*ports.ActivitySummary, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE owner_id = $1 AND created_at >= $2
		AND kind IN ('DEPOSIT', 'WITHDRAW', 'TRANSFER_SENT', 'TRANSFER_RECEIVED')`

	summary := &ports.ActivitySummary{}
	err := r.pool.QueryRow(ctx, query, ownerID, since).Scan(&summary.Count, &summary.Volume)
	if err != nil {
		return nil, fmt.Errorf("owner activity: %w", err)
	}
	return summary, nil
}

func marshalMetadata(m map[string]string) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func unmarshalMetadata(b []byte) (map[string]string, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
