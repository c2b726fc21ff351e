// Package money holds display formatting helpers for currency figures.
// Derived figures that could not be computed arrive as nil and render as
// "N/A"; they are never coerced to zero.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// NA is the display placeholder for a figure that could not be derived.
const NA = "N/A"

// FormatUSD renders a USD amount rounded to two decimals, e.g. "$10.00".
func FormatUSD(v *float64) string {
	if !displayable(v) {
		return NA
	}
	return "$" + decimal.NewFromFloat(*v).StringFixed(2)
}

// FormatBs renders a local-currency amount rounded to two decimals, e.g. "365.00 Bs".
func FormatBs(v *float64) string {
	if !displayable(v) {
		return NA
	}
	return decimal.NewFromFloat(*v).StringFixed(2) + " Bs"
}

// FormatRate renders a raw exchange-rate value, e.g. "36.50".
func FormatRate(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return NA
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func displayable(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
