// Package pricing derives per-unit and per-kilogram price figures from a
// product tier and an exchange-rate value. All functions are pure.
package pricing

import (
	"math"

	"github.com/Jhonaiker2309/supermarket-administration/pkg/model"
)

// TierPrices computes the derived figures for one weight/price tier against a
// Bs-per-USD rate value.
//
// The USD unit price is always the tier price. Local-currency figures are nil
// when the rate is zero, negative, NaN or infinite; per-kilogram figures are
// additionally nil when the tier has no positive weight. Tier weights are in
// grams, so the per-kilo figure scales by 1000.
func TierPrices(tier model.WeightPrice, rate float64) model.DerivedPrice {
	out := model.DerivedPrice{UnitPriceUSD: tier.Price}

	if tier.Weight > 0 {
		perKilo := tier.Price / tier.Weight * 1000
		out.PerKiloUSD = &perKilo
	}

	if !usableRate(rate) {
		return out
	}

	unitBs := tier.Price * rate
	out.UnitPriceBs = &unitBs
	if out.PerKiloUSD != nil {
		perKiloBs := *out.PerKiloUSD * rate
		out.PerKiloBs = &perKiloBs
	}
	return out
}

// ProductPrices computes the derived figures for every tier of a product, in
// tier order. Recomputed on every call; same inputs give same outputs.
func ProductPrices(p model.Product, rate float64) []model.DerivedPrice {
	if len(p.WeightPrices) == 0 {
		return nil
	}
	out := make([]model.DerivedPrice, len(p.WeightPrices))
	for i, tier := range p.WeightPrices {
		out[i] = TierPrices(tier, rate)
	}
	return out
}

// usableRate reports whether the rate value can participate in conversion.
// A zero or missing rate must surface as "N/A", never as a silent 0 price.
func usableRate(rate float64) bool {
	return rate > 0 && !math.IsNaN(rate) && !math.IsInf(rate, 0)
}
