package service

import (
	"context"
	"testing"

	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFXService_Convert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockExchangeRateRepository(ctrl)
	svc := NewFXService(mockRepo, zerolog.Nop())

	mockRepo.EXPECT().GetLatest(gomock.Any(), "USD", "EUR").Return(&domain.ExchangeRate{
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		Rate:         0.92,
		IsActive:     true,
	}, nil)

	result, err := svc.Convert(context.Background(), 100000, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, int64(92000), result.ConvertedAmount)
	assert.Equal(t, 0.92, result.Rate)
}

func TestFXService_Convert_RateNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockExchangeRateRepository(ctrl)
	svc := NewFXService(mockRepo, zerolog.Nop())

	mockRepo.EXPECT().GetLatest(gomock.Any(), "USD", "XOF").Return(nil, nil)

	_, err := svc.Convert(context.Background(), 100000, "USD", "XOF")
	assertAppError(t, err, "FX_001")
}

func TestFXService_Convert_IdentityPair(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockExchangeRateRepository(ctrl)
	svc := NewFXService(mockRepo, zerolog.Nop())

	result, err := svc.Convert(context.Background(), 5000, "USD", "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), result.ConvertedAmount)
	assert.Equal(t, 1.0, result.Rate)
}

func TestFXService_Convert_NegativeAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockExchangeRateRepository(ctrl)
	svc := NewFXService(mockRepo, zerolog.Nop())

	_, err := svc.Convert(context.Background(), -1, "USD", "EUR")
	assertAppError(t, err, "LED_002")
}

func TestFXService_Convert_RoundsToNearestUnit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockExchangeRateRepository(ctrl)
	svc := NewFXService(mockRepo, zerolog.Nop())

	mockRepo.EXPECT().GetLatest(gomock.Any(), "USD", "JPY").Return(&domain.ExchangeRate{
		Rate: 1.477,
	}, nil)

	// 333 * 1.477 = 491.841 -> 492
	result, err := svc.Convert(context.Background(), 333, "USD", "JPY")
	require.NoError(t, err)
	assert.Equal(t, int64(492), result.ConvertedAmount)
}
