package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-core/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ExchangeRateRepo implements ports.ExchangeRateRepository.
type ExchangeRateRepo struct {
	pool Pool
}

// NewExchangeRateRepo creates a new ExchangeRateRepo.
func NewExchangeRateRepo(pool Pool) *ExchangeRateRepo {
	return &ExchangeRateRepo{pool: pool}
}

// GetLatest fetches the most recent active rate for the currency pair.
// Returns nil, nil when no active rate exists.
func (r *ExchangeRateRepo) GetLatest(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	query := `SELECT id, from_currency, to_currency, rate, is_active, created_at
		FROM exchange_rates WHERE from_currency = $1 AND to_currency = $2 AND is_active = TRUE
		ORDER BY created_at DESC LIMIT 1`

	rate := &domain.ExchangeRate{}
	err := r.pool.QueryRow(ctx, query, from, to).Scan(
		&rate.ID, &rate.FromCurrency, &rate.ToCurrency,
		&rate.Rate, &rate.IsActive, &rate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest exchange rate: %w", err)
	}
	return rate, nil
}
