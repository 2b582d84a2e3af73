package service

import (
	"context"
	"testing"
	"time"

	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"
	"wallet-core/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReportingService_GetOwnerWalletStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallets := mocks.NewMockWalletRepository(ctrl)
	mockLedger := mocks.NewMockLedgerRepository(ctrl)
	svc := NewReportingService(mockWallets, mockLedger, zerolog.Nop())

	ownerID := uuid.New()
	older := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	mockWallets.EXPECT().ListByOwner(gomock.Any(), ownerID).Return([]domain.Wallet{
		{OwnerID: ownerID, Currency: "USD", Balance: 150000, LastTransactionAt: &older},
		{OwnerID: ownerID, Currency: "USD", Balance: 20000},
		{OwnerID: ownerID, Currency: "EUR", Balance: 70000, LastTransactionAt: &newer},
	}, nil)
	mockLedger.EXPECT().OwnerActivity(gomock.Any(), ownerID, gomock.Any()).
		Return(&ports.ActivitySummary{Count: 17, Volume: 900000}, nil)

	stats, err := svc.GetOwnerWalletStats(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.WalletCount)
	assert.Equal(t, int64(170000), stats.BalancesByCurrency["USD"])
	assert.Equal(t, int64(70000), stats.BalancesByCurrency["EUR"])
	assert.Equal(t, int64(17), stats.TransactionCount30d)
	require.NotNil(t, stats.LastTransactionAt)
	assert.Equal(t, newer, *stats.LastTransactionAt)
}

func TestReportingService_GetOwnerWalletStats_NoWallets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallets := mocks.NewMockWalletRepository(ctrl)
	mockLedger := mocks.NewMockLedgerRepository(ctrl)
	svc := NewReportingService(mockWallets, mockLedger, zerolog.Nop())

	ownerID := uuid.New()
	mockWallets.EXPECT().ListByOwner(gomock.Any(), ownerID).Return(nil, nil)
	mockLedger.EXPECT().OwnerActivity(gomock.Any(), ownerID, gomock.Any()).
		Return(&ports.ActivitySummary{}, nil)

	stats, err := svc.GetOwnerWalletStats(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.WalletCount)
	assert.Empty(t, stats.BalancesByCurrency)
	assert.Nil(t, stats.LastTransactionAt)
}

func TestReportingService_ListEntries_NormalizesPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallets := mocks.NewMockWalletRepository(ctrl)
	mockLedger := mocks.NewMockLedgerRepository(ctrl)
	svc := NewReportingService(mockWallets, mockLedger, zerolog.Nop())

	walletID := uuid.New()
	mockLedger.EXPECT().ListByWallet(gomock.Any(), walletID, 1, 20).
		Return([]domain.LedgerEntry{{WalletID: walletID}}, int64(1), nil)

	entries, total, err := svc.ListEntries(context.Background(), walletID, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, entries, 1)
}
