package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-core/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// FeeRuleRepo implements ports.FeeRuleRepository.
type FeeRuleRepo struct {
	pool Pool
}

// NewFeeRuleRepo creates a new FeeRuleRepo.
func NewFeeRuleRepo(pool Pool) *FeeRuleRepo {
	return &FeeRuleRepo{pool: pool}
}

// GetActive fetches the unique active rule for (kind, currency).
// Returns nil, nil when no active rule exists.
func (r *FeeRuleRepo) GetActive(ctx context.Context, kind domain.OperationKind, currency string) (*domain.FeeRule, error) {
	query := `SELECT id, transaction_kind, currency, fee_type, fee_value, is_active, created_at
		FROM fee_rules WHERE transaction_kind = $1 AND currency = $2 AND is_active = TRUE`

	rule := &domain.FeeRule{}
	err := r.pool.QueryRow(ctx, query, kind, currency).Scan(
		&rule.ID, &rule.TransactionKind, &rule.Currency,
		&rule.FeeType, &rule.FeeValue, &rule.IsActive, &rule.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active fee rule: %w", err)
	}
	return rule, nil
}
