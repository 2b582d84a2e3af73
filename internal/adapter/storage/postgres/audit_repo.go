package postgres

import (
	"context"
	"fmt"

	"wallet-core/internal/core/domain"
)

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Create appends an audit record.
func (r *AuditRepo) Create(ctx context.Context, rec *domain.AuditRecord) error {
	query := `INSERT INTO audit_logs (id, owner_id, action, resource_type, resource_id, details, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.OwnerID, rec.Action, rec.ResourceType,
		rec.ResourceID, rec.Details, rec.Actor, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}
