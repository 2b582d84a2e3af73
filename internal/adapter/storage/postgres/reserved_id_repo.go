package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-core/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ReservedIDRepo implements ports.ReservedIDRepository.
type ReservedIDRepo struct {
	pool Pool
}

// NewReservedIDRepo creates a new ReservedIDRepo.
func NewReservedIDRepo(pool Pool) *ReservedIDRepo {
	return &ReservedIDRepo{pool: pool}
}

// Reserve inserts a reservation row. The insert is the duplicate check:
// a colliding value surfaces as ports.ErrConflict via the primary key on
// public_id, which spans all scopes.
func (r *ReservedIDRepo) Reserve(ctx context.Context, id *domain.PublicID) error {
	query := `INSERT INTO reserved_ids (public_id, scope, owner_id, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, id.Value, id.Scope, id.OwnerID, id.CreatedAt)
	if err != nil {
		return classify("reserve public id", err)
	}
	return nil
}

// Get fetches a reservation by value.
func (r *ReservedIDRepo) Get(ctx context.Context, value string) (*domain.PublicID, error) {
	query := `SELECT public_id, scope, owner_id, created_at FROM reserved_ids WHERE public_id = $1`

	id := &domain.PublicID{}
	err := r.pool.QueryRow(ctx, query, value).Scan(&id.Value, &id.Scope, &id.OwnerID, &id.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reserved id: %w", err)
	}
	return id, nil
}
