package service

import (
	"context"
	"errors"
	"testing"

	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFeeService_Resolve_Percentage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockFeeRuleRepository(ctrl)
	svc := NewFeeService(mockRepo, zerolog.Nop())

	mockRepo.EXPECT().GetActive(gomock.Any(), domain.OperationTransfer, "USD").Return(&domain.FeeRule{
		ID:              uuid.New(),
		TransactionKind: domain.OperationTransfer,
		Currency:        "USD",
		FeeType:         domain.FeeTypePercentage,
		FeeValue:        2,
		IsActive:        true,
	}, nil)

	fee, err := svc.Resolve(context.Background(), domain.OperationTransfer, "USD", 100000)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), fee)
}

func TestFeeService_Resolve_Fixed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockFeeRuleRepository(ctrl)
	svc := NewFeeService(mockRepo, zerolog.Nop())

	mockRepo.EXPECT().GetActive(gomock.Any(), domain.OperationWithdraw, "USD").Return(&domain.FeeRule{
		FeeType:  domain.FeeTypeFixed,
		FeeValue: 500,
		IsActive: true,
	}, nil)

	fee, err := svc.Resolve(context.Background(), domain.OperationWithdraw, "USD", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(500), fee)
}

func TestFeeService_Resolve_NoRuleMeansZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockFeeRuleRepository(ctrl)
	svc := NewFeeService(mockRepo, zerolog.Nop())

	mockRepo.EXPECT().GetActive(gomock.Any(), domain.OperationDeposit, "EUR").Return(nil, nil)

	fee, err := svc.Resolve(context.Background(), domain.OperationDeposit, "EUR", 100000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fee)
}

func TestFeeService_Resolve_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockFeeRuleRepository(ctrl)
	svc := NewFeeService(mockRepo, zerolog.Nop())

	mockRepo.EXPECT().GetActive(gomock.Any(), domain.OperationDeposit, "EUR").
		Return(nil, errors.New("connection reset"))

	_, err := svc.Resolve(context.Background(), domain.OperationDeposit, "EUR", 100000)
	assertAppError(t, err, "SYS_001")
}
