package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ExchangeRate is a point-in-time conversion rate between two currencies.
// The most recent active row per pair is authoritative.
type ExchangeRate struct {
	ID           uuid.UUID `json:"id"`
	FromCurrency string    `json:"from_currency"`
	ToCurrency   string    `json:"to_currency"`
	Rate         float64   `json:"rate"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Convert applies the rate to an amount in smallest currency units,
// rounding to the nearest unit.
func (r *ExchangeRate) Convert(amount int64) int64 {
	return int64(math.Round(float64(amount) * r.Rate))
}
