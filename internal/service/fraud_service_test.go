package service

import (
	"context"
	"testing"
	"time"

	"wallet-core/config"
	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"
	"wallet-core/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fraudTestDeps struct {
	svc        *FraudServiceImpl
	ledgerRepo *mocks.MockLedgerRepository
	suspRepo   *mocks.MockSuspiciousActivityRepository
	ctrl       *gomock.Controller
	now        time.Time
}

func setupFraudService(t *testing.T) *fraudTestDeps {
	ctrl := gomock.NewController(t)
	d := &fraudTestDeps{
		ledgerRepo: mocks.NewMockLedgerRepository(ctrl),
		suspRepo:   mocks.NewMockSuspiciousActivityRepository(ctrl),
		ctrl:       ctrl,
		now:        time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
	cfg := config.FraudConfig{
		HighAmountThreshold: 2000000,
		HighFrequencyCount:  10,
		HighVolumeThreshold: 5000000,
		Window:              24 * time.Hour,
	}
	d.svc = NewFraudService(d.ledgerRepo, d.suspRepo, cfg, zerolog.Nop())
	d.svc.now = func() time.Time { return d.now }
	return d
}

func fraudInput(amount int64) ports.FraudInput {
	return ports.FraudInput{
		OwnerID:  uuid.New(),
		WalletID: uuid.New(),
		Amount:   amount,
		Kind:     domain.OperationTransfer,
	}
}

func TestFraudService_Evaluate_NothingFires(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	input := fraudInput(1000)
	d.ledgerRepo.EXPECT().OwnerActivity(gomock.Any(), input.OwnerID, d.now.Add(-24*time.Hour)).
		Return(&ports.ActivitySummary{Count: 2, Volume: 30000}, nil)

	assessment, err := d.svc.Evaluate(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, assessment)
}

func TestFraudService_Evaluate_HighAmount(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	input := fraudInput(2500000)
	d.ledgerRepo.EXPECT().OwnerActivity(gomock.Any(), input.OwnerID, gomock.Any()).
		Return(&ports.ActivitySummary{Count: 1, Volume: 2500000}, nil)
	d.suspRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domain.SuspiciousActivity) error {
			assert.Equal(t, []string{domain.FlagHighAmount}, rec.Flags)
			assert.Equal(t, domain.SeverityHigh, rec.Severity)
			assert.Equal(t, d.now.Add(-24*time.Hour), rec.WindowStart)
			assert.Equal(t, d.now, rec.WindowEnd)
			return nil
		})

	assessment, err := d.svc.Evaluate(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, assessment)
	assert.Equal(t, domain.SeverityHigh, assessment.Severity)
	assert.False(t, assessment.ShouldBlock)
}

func TestFraudService_Evaluate_HighFrequencyAlone(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	input := fraudInput(1000)
	d.ledgerRepo.EXPECT().OwnerActivity(gomock.Any(), input.OwnerID, gomock.Any()).
		Return(&ports.ActivitySummary{Count: 15, Volume: 150000}, nil)
	d.suspRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	assessment, err := d.svc.Evaluate(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, assessment)
	assert.Equal(t, []string{domain.FlagHighFrequency}, assessment.Flags)
	assert.Equal(t, domain.SeverityMedium, assessment.Severity)
	assert.False(t, assessment.ShouldBlock)
}

func TestFraudService_Evaluate_HighAmountAndFrequencyEscalates(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	input := fraudInput(2500000)
	d.ledgerRepo.EXPECT().OwnerActivity(gomock.Any(), input.OwnerID, gomock.Any()).
		Return(&ports.ActivitySummary{Count: 12, Volume: 4000000}, nil)
	d.suspRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	assessment, err := d.svc.Evaluate(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, assessment)
	assert.ElementsMatch(t, []string{domain.FlagHighAmount, domain.FlagHighFrequency}, assessment.Flags)
	assert.Equal(t, domain.SeverityCritical, assessment.Severity)
	assert.True(t, assessment.ShouldBlock)
}

func TestFraudService_Evaluate_HighVolume(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	input := fraudInput(1000)
	d.ledgerRepo.EXPECT().OwnerActivity(gomock.Any(), input.OwnerID, gomock.Any()).
		Return(&ports.ActivitySummary{Count: 3, Volume: 6000000}, nil)
	d.suspRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	assessment, err := d.svc.Evaluate(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, assessment)
	assert.Equal(t, []string{domain.FlagHighVolume24h}, assessment.Flags)
	assert.Equal(t, domain.SeverityCritical, assessment.Severity)
	assert.True(t, assessment.ShouldBlock)
}

func TestFraudService_Evaluate_ThresholdBoundary(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	// Exactly at every threshold: nothing fires. The thresholds are
	// exclusive; only values strictly above them flag.
	input := fraudInput(2000000)
	d.ledgerRepo.EXPECT().OwnerActivity(gomock.Any(), input.OwnerID, gomock.Any()).
		Return(&ports.ActivitySummary{Count: 10, Volume: 5000000}, nil)

	assessment, err := d.svc.Evaluate(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, assessment)
}

func TestFraudService_Evaluate_OneAboveThresholdFires(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	input := fraudInput(2000001)
	d.ledgerRepo.EXPECT().OwnerActivity(gomock.Any(), input.OwnerID, gomock.Any()).
		Return(&ports.ActivitySummary{Count: 11, Volume: 5000001}, nil)
	d.suspRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	assessment, err := d.svc.Evaluate(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, assessment)
	assert.ElementsMatch(t,
		[]string{domain.FlagHighAmount, domain.FlagHighFrequency, domain.FlagHighVolume24h},
		assessment.Flags)
	assert.Equal(t, domain.SeverityCritical, assessment.Severity)
	assert.True(t, assessment.ShouldBlock)
}
