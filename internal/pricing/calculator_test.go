package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jhonaiker2309/supermarket-administration/pkg/model"
)

func TestTierPrices_FullConversion(t *testing.T) {
	// 500g at $10 against 36.50 Bs/USD.
	d := TierPrices(model.WeightPrice{Weight: 500, Price: 10}, 36.5)

	assert.Equal(t, 10.0, d.UnitPriceUSD)
	require.NotNil(t, d.UnitPriceBs)
	assert.InDelta(t, 365.0, *d.UnitPriceBs, 1e-9)
	require.NotNil(t, d.PerKiloUSD)
	assert.InDelta(t, 20.0, *d.PerKiloUSD, 1e-9)
	require.NotNil(t, d.PerKiloBs)
	assert.InDelta(t, 730.0, *d.PerKiloBs, 1e-9)
}

func TestTierPrices_PerKiloFormula(t *testing.T) {
	tiers := []model.WeightPrice{
		{Weight: 1000, Price: 4},
		{Weight: 250, Price: 3.75},
		{Weight: 730, Price: 12.34},
	}
	for _, tier := range tiers {
		d := TierPrices(tier, 1)
		require.NotNil(t, d.PerKiloUSD)
		assert.InDelta(t, tier.Price/tier.Weight*1000, *d.PerKiloUSD, 1e-9)
	}
}

func TestTierPrices_MissingWeight(t *testing.T) {
	for _, weight := range []float64{0, -5} {
		d := TierPrices(model.WeightPrice{Weight: weight, Price: 10}, 36.5)

		// Per-kilo fields short-circuit to nil; unit prices are unaffected.
		assert.Nil(t, d.PerKiloUSD)
		assert.Nil(t, d.PerKiloBs)
		assert.Equal(t, 10.0, d.UnitPriceUSD)
		require.NotNil(t, d.UnitPriceBs)
		assert.InDelta(t, 365.0, *d.UnitPriceBs, 1e-9)
	}
}

func TestTierPrices_UnusableRate(t *testing.T) {
	tests := []struct {
		name string
		rate float64
	}{
		{"zero", 0},
		{"negative", -3},
		{"nan", math.NaN()},
		{"positive infinity", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := TierPrices(model.WeightPrice{Weight: 500, Price: 10}, tt.rate)

			// USD figures survive; local-currency figures degrade to nil,
			// never to NaN or a silent zero.
			assert.Equal(t, 10.0, d.UnitPriceUSD)
			require.NotNil(t, d.PerKiloUSD)
			assert.InDelta(t, 20.0, *d.PerKiloUSD, 1e-9)
			assert.Nil(t, d.UnitPriceBs)
			assert.Nil(t, d.PerKiloBs)
		})
	}
}

func TestTierPrices_Deterministic(t *testing.T) {
	tier := model.WeightPrice{Weight: 330, Price: 2.5}
	a := TierPrices(tier, 40.25)
	b := TierPrices(tier, 40.25)
	assert.Equal(t, a.UnitPriceUSD, b.UnitPriceUSD)
	assert.Equal(t, *a.UnitPriceBs, *b.UnitPriceBs)
	assert.Equal(t, *a.PerKiloUSD, *b.PerKiloUSD)
	assert.Equal(t, *a.PerKiloBs, *b.PerKiloBs)
}

func TestProductPrices(t *testing.T) {
	p := model.Product{
		Name:  "Harina",
		Brand: "PAN",
		Store: "Central",
		WeightPrices: []model.WeightPrice{
			{Weight: 1000, Price: 2},
			{Weight: 0, Price: 5},
		},
	}

	derived := ProductPrices(p, 36.5)
	require.Len(t, derived, 2)
	require.NotNil(t, derived[0].PerKiloUSD)
	assert.InDelta(t, 2.0, *derived[0].PerKiloUSD, 1e-9)
	assert.Nil(t, derived[1].PerKiloUSD)

	assert.Nil(t, ProductPrices(model.Product{Name: "sin tiers"}, 36.5))
}
