package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWallet(ownerID uuid.UUID) *domain.Wallet {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Wallet{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		PublicID:      "WKT2041",
		Balance:       150000,
		Currency:      "USD",
		Status:        domain.WalletStatusActive,
		TotalReceived: 200000,
		TotalSent:     50000,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func walletTestColumns() []string {
	return []string{"id", "owner_id", "public_id", "balance", "currency", "status",
		"total_received", "total_sent", "blocked_reason", "blocked_at",
		"last_transaction_at", "created_at", "updated_at"}
}

func walletRow(w *domain.Wallet) *pgxmock.Rows {
	return pgxmock.NewRows(walletTestColumns()).AddRow(
		w.ID, w.OwnerID, w.PublicID, w.Balance, w.Currency, w.Status,
		w.TotalReceived, w.TotalSent, w.BlockedReason, w.BlockedAt,
		w.LastTransactionAt, w.CreatedAt, w.UpdatedAt,
	)
}

func TestWalletRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(uuid.New())

	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(w.ID, w.OwnerID, w.PublicID, w.Balance, w.Currency, w.Status,
			w.TotalReceived, w.TotalSent, w.CreatedAt, w.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), w)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Create_DuplicatePair(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(uuid.New())

	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(w.ID, w.OwnerID, w.PublicID, w.Balance, w.Currency, w.Status,
			w.TotalReceived, w.TotalSent, w.CreatedAt, w.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "wallets_owner_id_currency_key"})

	err = repo.Create(context.Background(), w)
	assert.True(t, errors.Is(err, ports.ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs(w.ID).
		WillReturnRows(walletRow(w))

	result, err := repo.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.ID, result.ID)
	assert.Equal(t, w.Balance, result.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(walletTestColumns()))

	result, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByOwnerAndCurrency(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE owner_id .+ AND currency").
		WithArgs(w.OwnerID, "USD").
		WillReturnRows(walletRow(w))

	result, err := repo.GetByOwnerAndCurrency(context.Background(), w.OwnerID, "USD")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id .+ FOR UPDATE").
		WithArgs(w.ID).
		WillReturnRows(walletRow(w))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByIDForUpdate(context.Background(), tx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_ListByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	ownerID := uuid.New()
	w1 := newTestWallet(ownerID)
	w2 := newTestWallet(ownerID)
	w2.Currency = "EUR"

	rows := walletRow(w1).AddRow(
		w2.ID, w2.OwnerID, w2.PublicID, w2.Balance, w2.Currency, w2.Status,
		w2.TotalReceived, w2.TotalSent, w2.BlockedReason, w2.BlockedAt,
		w2.LastTransactionAt, w2.CreatedAt, w2.UpdatedAt,
	)

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE owner_id .+ ORDER BY created_at").
		WithArgs(ownerID).
		WillReturnRows(rows)

	result, err := repo.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "USD", result[0].Currency)
	assert.Equal(t, "EUR", result[1].Currency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdateBalances(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	walletID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallets SET balance").
		WithArgs(int64(90000), int64(200000), int64(110000), now, walletID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBalances(context.Background(), tx, walletID, 90000, 200000, 110000, now)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdateBalances_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	walletID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallets SET balance").
		WithArgs(int64(100), int64(100), int64(0), now, walletID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBalances(context.Background(), tx, walletID, 100, 100, 0, now)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "wallet not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	walletID := uuid.New()
	reason := "chargeback review"
	blockedAt := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallets SET status").
		WithArgs(domain.WalletStatusBlocked, &reason, &blockedAt, walletID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateStatus(context.Background(), tx, walletID, domain.WalletStatusBlocked, &reason, &blockedAt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
