package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited ledger operation.
type AuditAction string

const (
	AuditActionDeposit      AuditAction = "DEPOSIT"
	AuditActionWithdraw     AuditAction = "WITHDRAW"
	AuditActionTransfer     AuditAction = "TRANSFER"
	AuditActionWalletCreate AuditAction = "WALLET_CREATE"
	AuditActionBlock        AuditAction = "BLOCK"
	AuditActionUnblock      AuditAction = "UNBLOCK"
)

// AuditRecord is one append-only line in the durable operation log.
type AuditRecord struct {
	ID           uuid.UUID   `json:"id"`
	OwnerID      *uuid.UUID  `json:"owner_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	Actor        string      `json:"actor,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
