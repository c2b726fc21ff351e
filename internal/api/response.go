package api

import (
	"time"

	"github.com/Jhonaiker2309/supermarket-administration/internal/syncer"
	"github.com/Jhonaiker2309/supermarket-administration/pkg/model"
	"github.com/Jhonaiker2309/supermarket-administration/pkg/money"
)

// RateView is the presentation form of the resolved current rate. Display
// strings degrade to "N/A" instead of propagating NaN.
type RateView struct {
	ID      model.ID   `json:"id,omitempty"`
	Value   *float64   `json:"value,omitempty"`
	Display string     `json:"display"`
	Date    *time.Time `json:"date,omitempty"`
}

// TierView is one weight/price tier with its derived figures formatted for
// display.
type TierView struct {
	Weight     float64 `json:"weight"`
	PriceUSD   string  `json:"price_usd"`
	PriceBs    string  `json:"price_bs"`
	PerKiloUSD string  `json:"per_kilo_usd"`
	PerKiloBs  string  `json:"per_kilo_bs"`
}

// PricedProductView is a product with its tiers priced against the current rate.
type PricedProductView struct {
	ID        model.ID       `json:"id,omitempty"`
	Name      string         `json:"name"`
	Brand     string         `json:"brand"`
	Store     string         `json:"store"`
	StoreLink string         `json:"store_link,omitempty"`
	Images    model.ImageSet `json:"images,omitempty"`
	Tiers     []TierView     `json:"tiers"`
}

func rateView(r *model.ExchangeRate) RateView {
	if r == nil {
		return RateView{Display: money.NA}
	}
	v := RateView{
		ID:      r.ID,
		Display: money.FormatRate(r.Value),
		Date:    &r.Date,
	}
	if r.Usable() {
		val := r.Value
		v.Value = &val
	}
	return v
}

func toPricedViews(priced []syncer.PricedProduct) []PricedProductView {
	out := make([]PricedProductView, len(priced))
	for i, pp := range priced {
		view := PricedProductView{
			ID:        pp.ID,
			Name:      pp.Name,
			Brand:     pp.Brand,
			Store:     pp.Store,
			StoreLink: pp.StoreLink,
			Images:    pp.Images,
			Tiers:     make([]TierView, len(pp.Tiers)),
		}
		for j, d := range pp.Tiers {
			usd := d.UnitPriceUSD
			view.Tiers[j] = TierView{
				Weight:     pp.WeightPrices[j].Weight,
				PriceUSD:   money.FormatUSD(&usd),
				PriceBs:    money.FormatBs(d.UnitPriceBs),
				PerKiloUSD: money.FormatUSD(d.PerKiloUSD),
				PerKiloBs:  money.FormatBs(d.PerKiloBs),
			}
		}
		out[i] = view
	}
	return out
}
