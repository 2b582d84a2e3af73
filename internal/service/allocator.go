package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"wallet-core/config"
	"wallet-core/internal/core/domain"
	"wallet-core/internal/core/ports"
	"wallet-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AllocatorImpl implements ports.IdentifierAllocator. Each attempt is a
// single optimistic insert; a uniqueness conflict means the candidate was
// taken and a fresh one is drawn after a jittered backoff.
type AllocatorImpl struct {
	repo ports.ReservedIDRepository
	cfg  config.AllocatorConfig
	log  zerolog.Logger

	// Injectable for deterministic tests.
	randInt func(n int) int
	sleep   func(d time.Duration)
}

// NewAllocator creates a new AllocatorImpl.
func NewAllocator(repo ports.ReservedIDRepository, cfg config.AllocatorConfig, log zerolog.Logger) *AllocatorImpl {
	return &AllocatorImpl{
		repo:    repo,
		cfg:     cfg,
		log:     log,
		randInt: rand.IntN,
		sleep:   time.Sleep,
	}
}

// Allocate mints a unique public identifier and reserves it under the scope.
func (s *AllocatorImpl) Allocate(ctx context.Context, scope string, ownerID *uuid.UUID) (*domain.PublicID, error) {
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			s.sleep(s.backoff(attempt - 1))
		}
		if err := ctx.Err(); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("allocate %s id: %w", scope, err))
		}

		candidate := &domain.PublicID{
			Value:     s.generate(),
			Scope:     scope,
			OwnerID:   ownerID,
			CreatedAt: time.Now().UTC(),
		}

		err := s.repo.Reserve(ctx, candidate)
		if err == nil {
			s.log.Debug().
				Str("public_id", candidate.Value).
				Str("scope", scope).
				Int("attempt", attempt).
				Msg("public identifier reserved")
			return candidate, nil
		}

		if errors.Is(err, ports.ErrConflict) {
			s.log.Debug().
				Str("public_id", candidate.Value).
				Str("scope", scope).
				Int("attempt", attempt).
				Msg("identifier collision, retrying")
			continue
		}

		// Store faults also consume the attempt budget so a flapping
		// database cannot spin this loop forever.
		s.log.Warn().Err(err).
			Str("scope", scope).
			Int("attempt", attempt).
			Msg("identifier reservation failed")
	}

	s.log.Error().
		Str("scope", scope).
		Int("attempts", s.cfg.MaxAttempts).
		Msg("identifier allocation budget exhausted")
	return nil, apperror.ErrCollisionExhausted(s.cfg.MaxAttempts)
}

// generate draws a candidate: three letters from the restricted alphabet
// followed by four digits.
func (s *AllocatorImpl) generate() string {
	buf := make([]byte, 7)
	for i := 0; i < 3; i++ {
		buf[i] = domain.PublicIDAlphabet[s.randInt(len(domain.PublicIDAlphabet))]
	}
	for i := 3; i < 7; i++ {
		buf[i] = byte('0' + s.randInt(10))
	}
	return string(buf)
}

// backoff returns the jittered delay before the given retry.
func (s *AllocatorImpl) backoff(retry int) time.Duration {
	d := s.cfg.BaseBackoff << (retry - 1)
	if d > s.cfg.MaxBackoff || d <= 0 {
		d = s.cfg.MaxBackoff
	}
	// Jitter of up to half the delay spreads out competing allocators.
	jitter := time.Duration(s.randInt(int(d/2) + 1))
	return d + jitter
}
