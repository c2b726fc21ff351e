package api

import (
	"fmt"
	"math"

	"github.com/Jhonaiker2309/supermarket-administration/pkg/model"
)

// validateProduct checks the fields the remote store requires. Products are
// validated after normalization, so only the tiered shape needs checking.
func validateProduct(p model.Product) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Brand == "" {
		return fmt.Errorf("brand is required")
	}
	if p.Store == "" {
		return fmt.Errorf("store is required")
	}
	for i, tier := range p.WeightPrices {
		if tier.Weight < 0 {
			return fmt.Errorf("weight_prices[%d]: weight must not be negative", i)
		}
		if tier.Price < 0 || math.IsNaN(tier.Price) || math.IsInf(tier.Price, 0) {
			return fmt.Errorf("weight_prices[%d]: price must be a non-negative number", i)
		}
	}
	return nil
}

// validateRate checks that a rate record is storable: a finite non-negative
// value and a real instant.
func validateRate(r model.ExchangeRate) error {
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) || r.Value < 0 {
		return fmt.Errorf("value must be a finite non-negative number")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}
