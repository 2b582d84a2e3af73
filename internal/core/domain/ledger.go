package domain

import (
	"time"

	"github.com/google/uuid"
)

// OperationKind identifies a money-movement operation for fee resolution.
type OperationKind string

const (
	OperationDeposit  OperationKind = "DEPOSIT"
	OperationWithdraw OperationKind = "WITHDRAW"
	OperationTransfer OperationKind = "TRANSFER"
)

// EntryKind represents the kind of ledger entry.
type EntryKind string

const (
	EntryKindDeposit          EntryKind = "DEPOSIT"
	EntryKindWithdraw         EntryKind = "WITHDRAW"
	EntryKindTransferSent     EntryKind = "TRANSFER_SENT"
	EntryKindTransferReceived EntryKind = "TRANSFER_RECEIVED"
	EntryKindBlock            EntryKind = "BLOCK"
	EntryKindUnblock          EntryKind = "UNBLOCK"
)

// Direction returns the sign the entry kind applies to the wallet balance:
// +1 credit, -1 debit, 0 for status-only entries.
func (k EntryKind) Direction() int64 {
	switch k {
	case EntryKindDeposit, EntryKindTransferReceived:
		return 1
	case EntryKindWithdraw, EntryKindTransferSent:
		return -1
	default:
		return 0
	}
}

// MovesMoney reports whether entries of this kind affect the balance.
func (k EntryKind) MovesMoney() bool {
	return k.Direction() != 0
}

// EntryStatus represents the lifecycle state of a ledger entry.
type EntryStatus string

const (
	EntryStatusCompleted EntryStatus = "COMPLETED"
	EntryStatusPending   EntryStatus = "PENDING"
	EntryStatusFailed    EntryStatus = "FAILED"
)

// LedgerEntry is an immutable record of a single balance-affecting event on
// one wallet. The invariant BalanceAfter = BalanceBefore + Direction*Amount
// holds exactly; entries are append-only and never mutated after creation.
type LedgerEntry struct {
	ID                   uuid.UUID         `json:"id"`
	PublicID             *string           `json:"public_id,omitempty"`
	WalletID             uuid.UUID         `json:"wallet_id"`
	OwnerID              uuid.UUID         `json:"owner_id"`
	Kind                 EntryKind         `json:"kind"`
	Amount               int64             `json:"amount"`
	Currency             string            `json:"currency"`
	BalanceBefore        int64             `json:"balance_before"`
	BalanceAfter         int64             `json:"balance_after"`
	CounterpartyWalletID *uuid.UUID        `json:"counterparty_wallet_id,omitempty"`
	// Reference is the client-supplied dedupe key. Unique per sending
	// wallet on TRANSFER_SENT rows.
	Reference *string           `json:"reference,omitempty"`
	Status    EntryStatus       `json:"status"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
