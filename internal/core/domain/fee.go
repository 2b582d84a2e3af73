package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeeType determines how a fee rule computes its fee.
type FeeType string

const (
	FeeTypeFixed      FeeType = "FIXED"
	FeeTypePercentage FeeType = "PERCENTAGE"
)

// FeeRule maps an (operation kind, currency) pair to a fee computation.
// At most one active rule exists per pair; absence of a rule means zero fee.
type FeeRule struct {
	ID              uuid.UUID     `json:"id"`
	TransactionKind OperationKind `json:"transaction_kind"`
	Currency        string        `json:"currency"`
	FeeType         FeeType       `json:"fee_type"`
	FeeValue        int64         `json:"fee_value"` // fixed amount, or percent for PERCENTAGE
	IsActive        bool          `json:"is_active"`
	CreatedAt       time.Time     `json:"created_at"`
}

// Apply computes the fee for the given amount, clamped to be non-negative.
func (r *FeeRule) Apply(amount int64) int64 {
	var fee int64
	switch r.FeeType {
	case FeeTypeFixed:
		fee = r.FeeValue
	case FeeTypePercentage:
		// Split before multiplying so amount*FeeValue cannot overflow int64.
		fee = amount/100*r.FeeValue + amount%100*r.FeeValue/100
	}
	if fee < 0 {
		return 0
	}
	return fee
}
