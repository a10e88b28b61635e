// Package models defines the core domain types shared across the application.
package models

import "strings"

// Market represents a single Polymarket prediction market as returned
// by the Gamma API.
type Market struct {
	Question    string   `json:"question"`
	Slug        string   `json:"slug"`
	YesPrice    *float64 `json:"yes_price"`
	NoPrice     *float64 `json:"no_price"`
	Volume24h   float64  `json:"volume_24h"`
	VolumeTotal float64  `json:"volume_total"`
	Liquidity   float64  `json:"liquidity"`
	Active      bool     `json:"active"`
	Closed      bool     `json:"closed"`
}

// HasPrices returns true if both outcome prices were decoded.
func (m *Market) HasPrices() bool {
	return m.YesPrice != nil && m.NoPrice != nil
}

// PriceFor returns the current probability for the given outcome side.
// "Yes" and "Up" (case-insensitive) map to the first listed outcome;
// anything else maps to the second, falling back to the complement of
// the first when the second slot is missing (a two-outcome market's
// probabilities sum to 1). Returns nil when no price can be derived.
func (m *Market) PriceFor(outcome string) *float64 {
	switch strings.ToLower(outcome) {
	case "yes", "up":
		return m.YesPrice
	default:
		if m.NoPrice != nil {
			return m.NoPrice
		}
		if m.YesPrice != nil {
			p := 1 - *m.YesPrice
			return &p
		}
		return nil
	}
}
