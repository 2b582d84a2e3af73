package domain

import (
	"time"

	"github.com/google/uuid"
)

// PublicIDAlphabet is the letter set used in public identifiers.
// Visually ambiguous letters (I, L, O) are excluded.
const PublicIDAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ"

// Reservation scopes for public identifiers. Identifiers are globally
// unique regardless of scope.
const (
	ScopeWallets      = "wallets"
	ScopeTransactions = "transactions"
)

// PublicID is a reserved human-readable identifier: exactly 3 letters from
// PublicIDAlphabet followed by exactly 4 digits (e.g. "KXR0417").
type PublicID struct {
	Value     string     `json:"value"`
	Scope     string     `json:"scope"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ValidPublicID reports whether s matches the public identifier format.
// Lowercase letters, excluded letters, and wrong lengths are all rejected.
func ValidPublicID(s string) bool {
	if len(s) != 7 {
		return false
	}
	for i := 0; i < 3; i++ {
		if !validPublicIDLetter(s[i]) {
			return false
		}
	}
	for i := 3; i < 7; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func validPublicIDLetter(c byte) bool {
	if c < 'A' || c > 'Z' {
		return false
	}
	return c != 'I' && c != 'L' && c != 'O'
}
