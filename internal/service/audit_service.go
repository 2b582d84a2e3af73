package service

import (
	"context"

	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"

	"github.com/rs/zerolog"
)

// AuditSinkImpl implements ports.AuditSink.
type AuditSinkImpl struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditSink creates a new AuditSinkImpl.
// If repo is nil, records are only written to the logger.
func NewAuditSink(repo ports.AuditRepository, log zerolog.Logger) *AuditSinkImpl {
	return &AuditSinkImpl{repo: repo, log: log}
}

// Record appends an audit record asynchronously (fire-and-forget).
func (s *AuditSinkImpl) Record(ctx context.Context, record *domain.AuditRecord) {
	go func() {
		s.log.Info().
			Str("action", string(record.Action)).
			Str("resource_type", record.ResourceType).
			Str("resource_id", record.ResourceID).
			Str("actor", record.Actor).
			Msg("audit")

		if s.repo != nil {
			if err := s.repo.Create(context.Background(), record); err != nil {
				s.log.Warn().Err(err).Str("action", string(record.Action)).Msg("failed to persist audit record")
			}
		}
	}()
}
