package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"wallet-core/internal/core/domain"
)

// SuspiciousActivityRepo implements ports.SuspiciousActivityRepository.
type SuspiciousActivityRepo struct {
	pool Pool
}

// NewSuspiciousActivityRepo creates a new SuspiciousActivityRepo.
func NewSuspiciousActivityRepo(pool Pool) *SuspiciousActivityRepo {
	return &SuspiciousActivityRepo{pool: pool}
}

// Create inserts a suspicious activity record. Records are append-only.
func (r *SuspiciousActivityRepo) Create(ctx context.Context, rec *domain.SuspiciousActivity) error {
	metadata, err := marshalMetadata(rec.Metadata)
	if err != nil {
		return fmt.Errorf("marshal suspicious activity metadata: %w", err)
	}
	flags, err := json.Marshal(rec.Flags)
	if err != nil {
		return fmt.Errorf("marshal suspicious activity flags: %w", err)
	}

	query := `INSERT INTO suspicious_activity (id, wallet_id, owner_id, flags, severity, description,
		window_start, window_end, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.pool.Exec(ctx, query,
		rec.ID, rec.WalletID, rec.OwnerID, flags, rec.Severity, rec.Description,
		rec.WindowStart, rec.WindowEnd, metadata, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert suspicious activity: %w", err)
	}
	return nil
}
