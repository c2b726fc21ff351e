// Package syncer composes the product and exchange-rate mirrors behind the
// single interface the API layer consumes.
package syncer

import (
	"context"
	"errors"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/Jhonaiker2309/supermarket-administration/internal/catalog"
	"github.com/Jhonaiker2309/supermarket-administration/internal/pricing"
	"github.com/Jhonaiker2309/supermarket-administration/internal/publisher"
	"github.com/Jhonaiker2309/supermarket-administration/internal/rates"
	"github.com/Jhonaiker2309/supermarket-administration/pkg/model"
)

// PricedProduct is a product joined with the figures derived for each of its
// tiers against the current rate. Computed on every read, never persisted.
type PricedProduct struct {
	model.Product
	Tiers []model.DerivedPrice `json:"derived_prices"`
}

// Facade owns both entity mirrors. It is constructed once in main and passed
// by reference; there is no ambient global holding the collections.
type Facade struct {
	logger   *zap.Logger
	products *catalog.Store
	rates    *rates.Store
	fallback *rates.Fallback
	pub      *publisher.Publisher

	startOnce sync.Once
}

func New(
	logger *zap.Logger,
	products *catalog.Store,
	rateStore *rates.Store,
	fallback *rates.Fallback,
	pub *publisher.Publisher,
) *Facade {
	return &Facade{
		logger:   logger,
		products: products,
		rates:    rateStore,
		fallback: fallback,
		pub:      pub,
	}
}

// Start loads both collections. It runs at most once per process; failed
// collections stay reloadable through ReloadProducts/ReloadRates. When the
// rate history cannot be fetched, the locally persisted fallback rate seeds a
// one-element collection so price conversion keeps working.
func (f *Facade) Start(ctx context.Context) error {
	var err error
	f.startOnce.Do(func() {
		perr := f.products.Load(ctx)

		rerr := f.rates.Load(ctx)
		if rerr != nil && f.fallback != nil {
			if saved, ferr := f.fallback.Load(ctx); ferr == nil && saved != nil {
				f.rates.Seed(*saved)
				rerr = nil
			}
		}
		err = errors.Join(perr, rerr)
	})
	return err
}

// Products returns a snapshot of the product mirror.
func (f *Facade) Products() []model.Product { return f.products.Snapshot() }

// Rates returns a snapshot of the exchange-rate mirror.
func (f *Facade) Rates() []model.ExchangeRate { return f.rates.Snapshot() }

// CurrentRate resolves the rate used for conversion: the explicit selection
// when it still exists, otherwise the most recent rate, nil when the
// collection is empty.
func (f *Facade) CurrentRate(selected model.ID) *model.ExchangeRate {
	return rates.Resolve(f.rates.Snapshot(), selected)
}

// PricedProducts joins every product with its tier figures derived against
// the current rate.
func (f *Facade) PricedProducts(selected model.ID) []PricedProduct {
	rate := math.NaN()
	if cur := f.CurrentRate(selected); cur != nil && cur.Usable() {
		rate = cur.Value
	}

	products := f.products.Snapshot()
	out := make([]PricedProduct, len(products))
	for i, p := range products {
		out[i] = PricedProduct{Product: p, Tiers: pricing.ProductPrices(p, rate)}
	}
	return out
}

// AddProduct creates the product remotely and mirrors the canonical result.
func (f *Facade) AddProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	p.Normalize()
	created, err := f.products.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	f.pub.Publish(ctx, model.NewChangeEvent(model.EventProductCreated, "product", created))
	return created, nil
}

// UpdateProduct replaces the product remotely and reconciles the mirror.
func (f *Facade) UpdateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	p.Normalize()
	updated, err := f.products.Update(ctx, p)
	if err != nil {
		return updated, err
	}
	f.pub.Publish(ctx, model.NewChangeEvent(model.EventProductUpdated, "product", updated))
	return updated, nil
}

// DeleteProduct removes the product remotely and from the mirror.
func (f *Facade) DeleteProduct(ctx context.Context, ref model.ProductRef) error {
	if err := f.products.Delete(ctx, ref); err != nil {
		return err
	}
	f.pub.Publish(ctx, model.NewChangeEvent(model.EventProductDeleted, "product", ref.String()))
	return nil
}

// AddRate creates the rate remotely, mirrors the canonical result and
// persists the newest rate as the local fallback.
func (f *Facade) AddRate(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error) {
	created, err := f.rates.Create(ctx, r)
	if err != nil {
		return nil, err
	}
	f.saveFallback(ctx)
	f.pub.Publish(ctx, model.NewChangeEvent(model.EventRateCreated, "dolar", created))
	return created, nil
}

// UpdateRate replaces the rate remotely, identity preserved.
func (f *Facade) UpdateRate(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error) {
	updated, err := f.rates.Update(ctx, r)
	if err != nil {
		return updated, err
	}
	f.saveFallback(ctx)
	f.pub.Publish(ctx, model.NewChangeEvent(model.EventRateUpdated, "dolar", updated))
	return updated, nil
}

// DeleteRate removes the rate remotely and from the mirror. A previously
// selected rate that disappears here is handled by the next CurrentRate call,
// which falls back to the newest remaining rate.
func (f *Facade) DeleteRate(ctx context.Context, id model.ID) error {
	if err := f.rates.Delete(ctx, id); err != nil {
		return err
	}
	f.pub.Publish(ctx, model.NewChangeEvent(model.EventRateDeleted, "dolar", id.String()))
	return nil
}

// ReloadProducts re-triggers a full product fetch after a failed load.
func (f *Facade) ReloadProducts(ctx context.Context) error { return f.products.Load(ctx) }

// ReloadRates re-triggers a full rate fetch after a failed load.
func (f *Facade) ReloadRates(ctx context.Context) error { return f.rates.Load(ctx) }

// saveFallback persists the current newest rate. Best effort; the remote
// store already confirmed the mutation.
func (f *Facade) saveFallback(ctx context.Context) {
	if f.fallback == nil {
		return
	}
	if cur := rates.Resolve(f.rates.Snapshot(), ""); cur != nil {
		if err := f.fallback.Save(ctx, *cur); err != nil {
			f.logger.Warn("syncer.fallback_save_failed", zap.Error(err))
		}
	}
}
