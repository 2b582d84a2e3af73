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

func newTestPublicID(scope string) *domain.PublicID {
	owner := uuid.New()
	return &domain.PublicID{
		Value:     "KXR0417",
		Scope:     scope,
		OwnerID:   &owner,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestReservedIDRepo_Reserve(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReservedIDRepo(mock)
	id := newTestPublicID(domain.ScopeWallets)

	mock.ExpectExec("INSERT INTO reserved_ids").
		WithArgs(id.Value, id.Scope, id.OwnerID, id.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Reserve(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservedIDRepo_Reserve_Collision(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReservedIDRepo(mock)
	id := newTestPublicID(domain.ScopeTransactions)

	mock.ExpectExec("INSERT INTO reserved_ids").
		WithArgs(id.Value, id.Scope, id.OwnerID, id.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "reserved_ids_pkey"})

	err = repo.Reserve(context.Background(), id)
	assert.True(t, errors.Is(err, ports.ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservedIDRepo_Reserve_StoreError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReservedIDRepo(mock)
	id := newTestPublicID(domain.ScopeWallets)

	mock.ExpectExec("INSERT INTO reserved_ids").
		WithArgs(id.Value, id.Scope, id.OwnerID, id.CreatedAt).
		WillReturnError(errors.New("connection refused"))

	err = repo.Reserve(context.Background(), id)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ports.ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservedIDRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReservedIDRepo(mock)
	id := newTestPublicID(domain.ScopeWallets)

	mock.ExpectQuery("SELECT .+ FROM reserved_ids WHERE public_id").
		WithArgs(id.Value).
		WillReturnRows(pgxmock.NewRows([]string{"public_id", "scope", "owner_id", "created_at"}).
			AddRow(id.Value, id.Scope, id.OwnerID, id.CreatedAt))

	result, err := repo.Get(context.Background(), id.Value)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, id.Value, result.Value)
	assert.Equal(t, id.Scope, result.Scope)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservedIDRepo_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReservedIDRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM reserved_ids WHERE public_id").
		WithArgs("ZZZ9999").
		WillReturnRows(pgxmock.NewRows([]string{"public_id", "scope", "owner_id", "created_at"}))

	result, err := repo.Get(context.Background(), "ZZZ9999")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
