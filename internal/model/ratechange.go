package model

import "time"

// RateChange is a central-bank rate event applied to all open margin trades
// from EffectiveDate (inclusive) onward. CreatedAt preserves insertion order,
// which breaks ties between events sharing an effective date.
type RateChange struct {
	ID            string    `json:"id"`
	EffectiveDate time.Time `json:"effectiveDate"`
	Rate          float64   `json:"rate"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}
