package service

import (
	"context"
	"fmt"

	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"
	"wallet-core/pkg/apperror"

	"github.com/rs/zerolog"
)

// FeeServiceImpl implements ports.FeeService.
type FeeServiceImpl struct {
	ruleRepo ports.FeeRuleRepository
	log      zerolog.Logger
}

// NewFeeService creates a new FeeServiceImpl.
func NewFeeService(ruleRepo ports.FeeRuleRepository, log zerolog.Logger) *FeeServiceImpl {
	return &FeeServiceImpl{ruleRepo: ruleRepo, log: log}
}

// Resolve computes the fee for the operation. No active rule means zero.
func (s *FeeServiceImpl) Resolve(ctx context.Context, kind domain.OperationKind, currency string, amount int64) (int64, error) {
	rule, err := s.ruleRepo.GetActive(ctx, kind, currency)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("resolve fee rule: %w", err))
	}
	if rule == nil {
		return 0, nil
	}

	fee := rule.Apply(amount)
	s.log.Debug().
		Str("kind", string(kind)).
		Str("currency", currency).
		Str("fee_type", string(rule.FeeType)).
		Int64("amount", amount).
		Int64("fee", fee).
		Msg("fee resolved")
	return fee, nil
}
