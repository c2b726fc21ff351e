package model

import (
	"math"
	"time"
)

// ExchangeRate is a timestamped Bs-per-USD rate as stored by the remote store.
type ExchangeRate struct {
	ID    ID        `json:"id,omitempty"`
	Value float64   `json:"value"`
	Date  time.Time `json:"date"`
}

// Usable reports whether the rate value can participate in price conversion.
// A non-finite or negative value degrades computed prices to "N/A" rather than
// propagating NaN into displays.
func (r ExchangeRate) Usable() bool {
	return !math.IsNaN(r.Value) && !math.IsInf(r.Value, 0) && r.Value >= 0
}

// DerivedPrice holds the price figures computed for one tier against a rate.
// Pointer fields are nil when the figure cannot be derived (missing weight,
// unusable rate); they render as "N/A", never as zero.
type DerivedPrice struct {
	UnitPriceUSD float64  `json:"unit_price_usd"`
	UnitPriceBs  *float64 `json:"unit_price_bs"`
	PerKiloUSD   *float64 `json:"per_kilo_usd"`
	PerKiloBs    *float64 `json:"per_kilo_bs"`
}
