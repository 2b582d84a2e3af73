package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Reserved ID Repo ---

type inMemoryReservedIDRepo struct {
	mu  sync.RWMutex
	ids map[string]*domain.PublicID
}

func newInMemoryReservedIDRepo() *inMemoryReservedIDRepo {
	return &inMemoryReservedIDRepo{ids: make(map[string]*domain.PublicID)}
}

func (r *inMemoryReservedIDRepo) Reserve(ctx context.Context, id *domain.PublicID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[id.Value]; ok {
		return ports.ErrConflict
	}
	cp := *id
	r.ids[id.Value] = &cp
	return nil
}

func (r *inMemoryReservedIDRepo) Get(ctx context.Context, value string) (*domain.PublicID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[value]
	if !ok {
		return nil, nil
	}
	cp := *id
	return &cp, nil
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.wallets {
		if existing.OwnerID == w.OwnerID && existing.Currency == w.Currency {
			return ports.ErrConflict
		}
	}
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetByOwnerAndCurrency(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.OwnerID == ownerID && w.Currency == currency {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryWalletRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Wallet
	for _, w := range r.wallets {
		if w.OwnerID == ownerID {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (r *inMemoryWalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance, totalReceived, totalSent int64, lastTransactionAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Balance = balance
	w.TotalReceived = totalReceived
	w.TotalSent = totalSent
	ts := lastTransactionAt
	w.LastTransactionAt = &ts
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryWalletRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, status domain.WalletStatus, reason *string, blockedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Status = status
	w.BlockedReason = reason
	w.BlockedAt = blockedAt
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// --- In-Memory Ledger Repo ---

type inMemoryLedgerRepo struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry
}

func newInMemoryLedgerRepo() *inMemoryLedgerRepo {
	return &inMemoryLedgerRepo{}
}

func (r *inMemoryLedgerRepo) Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.Kind == domain.EntryKindTransferSent && entry.Reference != nil {
		for _, e := range r.entries {
			if e.Kind == domain.EntryKindTransferSent && e.WalletID == entry.WalletID &&
				e.Reference != nil && *e.Reference == *entry.Reference {
				return ports.ErrConflict
			}
		}
	}
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *inMemoryLedgerRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, page, pageSize int) ([]domain.LedgerEntry, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []domain.LedgerEntry
	// entries slice is append-only; iterate backwards for newest first
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].WalletID == walletID {
			matched = append(matched, *r.entries[i])
		}
	}
	total := int64(len(matched))

	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []domain.LedgerEntry{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *inMemoryLedgerRepo) OwnerActivity(ctx context.Context, ownerID uuid.UUID, since time.Time) (*ports.ActivitySummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	summary := &ports.ActivitySummary{}
	for _, e := range r.entries {
		if e.OwnerID != ownerID || !e.Kind.MovesMoney() || e.CreatedAt.Before(since) {
			continue
		}
		summary.Count++
		summary.Volume += e.Amount
	}
	return summary, nil
}

// --- In-Memory Fee Rule Repo ---

type inMemoryFeeRuleRepo struct {
	mu    sync.RWMutex
	rules []*domain.FeeRule
}

func newInMemoryFeeRuleRepo(rules ...*domain.FeeRule) *inMemoryFeeRuleRepo {
	return &inMemoryFeeRuleRepo{rules: rules}
}

func (r *inMemoryFeeRuleRepo) GetActive(ctx context.Context, kind domain.OperationKind, currency string) (*domain.FeeRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rule := range r.rules {
		if rule.IsActive && rule.TransactionKind == kind && rule.Currency == currency {
			cp := *rule
			return &cp, nil
		}
	}
	return nil, nil
}

// --- In-Memory Suspicious Activity Repo ---

type inMemorySuspiciousRepo struct {
	mu      sync.RWMutex
	records []*domain.SuspiciousActivity
}

func newInMemorySuspiciousRepo() *inMemorySuspiciousRepo {
	return &inMemorySuspiciousRepo{}
}

func (r *inMemorySuspiciousRepo) Create(ctx context.Context, record *domain.SuspiciousActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *record
	r.records = append(r.records, &cp)
	return nil
}

func (r *inMemorySuspiciousRepo) all() []domain.SuspiciousActivity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SuspiciousActivity, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out
}

// --- In-Memory Exchange Rate Repo ---

type inMemoryExchangeRateRepo struct {
	mu    sync.RWMutex
	rates []*domain.ExchangeRate
}

func newInMemoryExchangeRateRepo(rates ...*domain.ExchangeRate) *inMemoryExchangeRateRepo {
	return &inMemoryExchangeRateRepo{rates: rates}
}

func (r *inMemoryExchangeRateRepo) GetLatest(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *domain.ExchangeRate
	for _, rate := range r.rates {
		if !rate.IsActive || rate.FromCurrency != from || rate.ToCurrency != to {
			continue
		}
		if latest == nil || rate.CreatedAt.After(latest.CreatedAt) {
			latest = rate
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu      sync.RWMutex
	records []*domain.AuditRecord
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, record *domain.AuditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *record
	r.records = append(r.records, &cp)
	return nil
}

// --- In-Memory Transactor (serialized tx) ---

// inMemoryTransactor serializes transaction blocks behind one lock,
// standing in for the row-level locks a real database would take. Without
// it concurrent transfers would lose updates in the map-backed repos.
type inMemoryTransactor struct {
	mu sync.Mutex
}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &serialTx{release: &t.mu}, nil
}

// serialTx is a pgx.Tx that releases the transactor lock exactly once,
// whether the block commits or rolls back.
type serialTx struct {
	release *sync.Mutex
	once    sync.Once
}

func (t *serialTx) done() {
	t.once.Do(t.release.Unlock)
}

func (t *serialTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *serialTx) Commit(ctx context.Context) error          { t.done(); return nil }
func (t *serialTx) Rollback(ctx context.Context) error        { t.done(); return nil }
func (t *serialTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *serialTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *serialTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *serialTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *serialTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *serialTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *serialTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *serialTx) Conn() *pgx.Conn { return nil }
