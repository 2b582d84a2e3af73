package domain

import (
	"time"

	"github.com/google/uuid"
)

// WalletStatus represents the lifecycle state of a wallet.
type WalletStatus string

const (
	WalletStatusActive  WalletStatus = "ACTIVE"
	WalletStatusBlocked WalletStatus = "BLOCKED"
)

// Wallet holds a single owner's balance in one currency. Balances are
// stored in the smallest currency unit and never go negative. A wallet is
// created lazily on first use and is never hard-deleted.
type Wallet struct {
	ID                uuid.UUID    `json:"id"`
	OwnerID           uuid.UUID    `json:"owner_id"`
	PublicID          string       `json:"public_id"`
	Balance           int64        `json:"balance"`
	Currency          string       `json:"currency"`
	Status            WalletStatus `json:"status"`
	TotalReceived     int64        `json:"total_received"`
	TotalSent         int64        `json:"total_sent"`
	BlockedReason     *string      `json:"blocked_reason,omitempty"`
	BlockedAt         *time.Time   `json:"blocked_at,omitempty"`
	LastTransactionAt *time.Time   `json:"last_transaction_at,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// IsBlocked returns true if the wallet rejects money movement.
func (w *Wallet) IsBlocked() bool {
	return w.Status == WalletStatusBlocked
}
