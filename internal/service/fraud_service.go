package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallet-core/config"
	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"
	"wallet-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FraudServiceImpl implements ports.FraudService. The heuristics score the
// owner's trailing activity window; the combined severity is the maximum
// over all fired flags.
type FraudServiceImpl struct {
	ledgerRepo ports.LedgerRepository
	suspRepo   ports.SuspiciousActivityRepository
	cfg        config.FraudConfig
	log        zerolog.Logger

	now func() time.Time
}

// NewFraudService creates a new FraudServiceImpl.
func NewFraudService(
	ledgerRepo ports.LedgerRepository,
	suspRepo ports.SuspiciousActivityRepository,
	cfg config.FraudConfig,
	log zerolog.Logger,
) *FraudServiceImpl {
	return &FraudServiceImpl{
		ledgerRepo: ledgerRepo,
		suspRepo:   suspRepo,
		cfg:        cfg,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate applies the heuristics to the operation and the owner's window.
// Returns nil when no flag fires; otherwise persists and returns the record.
func (s *FraudServiceImpl) Evaluate(ctx context.Context, input ports.FraudInput) (*ports.FraudAssessment, error) {
	windowEnd := s.now()
	windowStart := windowEnd.Add(-s.cfg.Window)

	activity, err := s.ledgerRepo.OwnerActivity(ctx, input.OwnerID, windowStart)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("owner activity: %w", err))
	}

	var flags []string
	severity := domain.SeverityLow

	if input.Amount > s.cfg.HighAmountThreshold {
		flags = append(flags, domain.FlagHighAmount)
		severity = domain.MaxSeverity(severity, domain.SeverityHigh)
	}

	if activity.Count > s.cfg.HighFrequencyCount {
		flags = append(flags, domain.FlagHighFrequency)
		// Frequency alone is Medium; combined with a high amount the
		// pattern escalates to Critical.
		freqSeverity := domain.SeverityMedium
		if severity.Rank() >= domain.SeverityHigh.Rank() {
			freqSeverity = domain.SeverityCritical
		}
		severity = domain.MaxSeverity(severity, freqSeverity)
	}

	if activity.Volume > s.cfg.HighVolumeThreshold {
		flags = append(flags, domain.FlagHighVolume24h)
		severity = domain.MaxSeverity(severity, domain.SeverityCritical)
	}

	if len(flags) == 0 {
		return nil, nil
	}

	record := &domain.SuspiciousActivity{
		ID:          uuid.New(),
		WalletID:    input.WalletID,
		OwnerID:     input.OwnerID,
		Flags:       flags,
		Severity:    severity,
		Description: fmt.Sprintf("%s triggered %s", input.Kind, strings.Join(flags, ", ")),
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Metadata: map[string]string{
			"amount":        fmt.Sprintf("%d", input.Amount),
			"window_count":  fmt.Sprintf("%d", activity.Count),
			"window_volume": fmt.Sprintf("%d", activity.Volume),
		},
		CreatedAt: windowEnd,
	}
	if err := s.suspRepo.Create(ctx, record); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("persist suspicious activity: %w", err))
	}

	s.log.Warn().
		Str("owner_id", input.OwnerID.String()).
		Str("wallet_id", input.WalletID.String()).
		Str("severity", string(severity)).
		Strs("flags", flags).
		Msg("suspicious activity recorded")

	return &ports.FraudAssessment{
		Record:      record,
		Severity:    severity,
		Flags:       flags,
		ShouldBlock: severity == domain.SeverityCritical,
	}, nil
}
