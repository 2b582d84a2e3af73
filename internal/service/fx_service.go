package service

import (
	"context"
	"fmt"

	"wallet-core/internal/core/ports"
	"wallet-core/pkg/apperror"

	"github.com/rs/zerolog"
)

// FXServiceImpl implements ports.FXService.
type FXServiceImpl struct {
	rateRepo ports.ExchangeRateRepository
	log      zerolog.Logger
}

// NewFXService creates a new FXServiceImpl.
func NewFXService(rateRepo ports.ExchangeRateRepository, log zerolog.Logger) *FXServiceImpl {
	return &FXServiceImpl{rateRepo: rateRepo, log: log}
}

// Convert applies the latest active rate for the pair. Identity pairs
// convert at 1.0 without a rate lookup.
func (s *FXServiceImpl) Convert(ctx context.Context, amount int64, from, to string) (*ports.ConversionResult, error) {
	if amount < 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if from == to {
		return &ports.ConversionResult{
			Amount:          amount,
			ConvertedAmount: amount,
			FromCurrency:    from,
			ToCurrency:      to,
			Rate:            1.0,
		}, nil
	}

	rate, err := s.rateRepo.GetLatest(ctx, from, to)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get exchange rate: %w", err))
	}
	if rate == nil {
		return nil, apperror.ErrRateNotFound(from, to)
	}

	return &ports.ConversionResult{
		Amount:          amount,
		ConvertedAmount: rate.Convert(amount),
		FromCurrency:    from,
		ToCurrency:      to,
		Rate:            rate.Rate,
	}, nil
}
