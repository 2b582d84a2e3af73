package domain

import (
	"time"

	"github.com/google/uuid"
)

// Severity classifies how anomalous an owner's recent activity is.
// The ordering Low < Medium < High < Critical is total.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Rank returns the numeric position of the severity in the ordering.
func (s Severity) Rank() int {
	switch s {
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 0
	}
}

// MaxSeverity returns the higher of two severities.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Heuristic flag names recorded on suspicious activity.
const (
	FlagHighAmount    = "high_amount"
	FlagHighFrequency = "high_frequency"
	FlagHighVolume24h = "high_volume_24h"
)

// SuspiciousActivity records the outcome of fraud heuristics over an
// owner's trailing activity window. Records are immutable; a later
// evaluation supersedes an earlier one by creating a new record.
type SuspiciousActivity struct {
	ID          uuid.UUID         `json:"id"`
	WalletID    uuid.UUID         `json:"wallet_id"`
	OwnerID     uuid.UUID         `json:"owner_id"`
	Flags       []string          `json:"flags"`
	Severity    Severity          `json:"severity"`
	Description string            `json:"description"`
	WindowStart time.Time         `json:"window_start"`
	WindowEnd   time.Time         `json:"window_end"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
