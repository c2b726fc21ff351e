package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Schema identifies which wire representation a product arrived in.
type Schema string

const (
	// SchemaTiered is the current representation: weight_prices holds one tier
	// per purchasable unit size.
	SchemaTiered Schema = "tiered"
	// SchemaFlat is the legacy representation: a single top-level price/weight
	// pair plus a store link.
	SchemaFlat Schema = "flat"
)

// ID is an opaque identifier assigned by the remote store. Some store versions
// serialize ids as JSON numbers, others as strings; both decode to the same value.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// WeightPrice is one purchasable tier: a unit size in grams and its USD price.
type WeightPrice struct {
	Weight float64 `json:"weight"`
	Price  float64 `json:"price"`
}

// Image is an embedded image blob from the older product schema.
type Image struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
}

// ImageSet unifies the two image representations the store has used over time:
// a single URL string, or an ordered array of embedded blobs. The shape is
// resolved once at decode time so call sites never branch on it.
type ImageSet struct {
	URL    string
	Embeds []Image
}

func (s *ImageSet) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*s = ImageSet{}
		return nil
	}
	if data[0] == '"' {
		var u string
		if err := json.Unmarshal(data, &u); err != nil {
			return err
		}
		*s = ImageSet{URL: u}
		return nil
	}
	var embeds []Image
	if err := json.Unmarshal(data, &embeds); err != nil {
		return fmt.Errorf("images must be a URL string or an array of blobs: %w", err)
	}
	*s = ImageSet{Embeds: embeds}
	return nil
}

func (s ImageSet) MarshalJSON() ([]byte, error) {
	if s.Embeds != nil {
		return json.Marshal(s.Embeds)
	}
	return json.Marshal(s.URL)
}

// Empty reports whether the set carries neither a URL nor embedded blobs.
func (s ImageSet) Empty() bool {
	return s.URL == "" && len(s.Embeds) == 0
}

// Product is a tracked consumer product. Identity is the surrogate id when the
// store assigns one; otherwise the legacy composite key (name, brand, store).
type Product struct {
	ID        ID       `json:"id,omitempty"`
	Name      string   `json:"name"`
	Brand     string   `json:"brand"`
	Store     string   `json:"store"`
	StoreLink string   `json:"store_link,omitempty"`
	Images    ImageSet `json:"images,omitempty"`

	WeightPrices []WeightPrice `json:"weight_prices,omitempty"`

	// Legacy flat-schema fields. Normalize absorbs them into WeightPrices;
	// after normalization they are always nil/empty.
	LegacyPrice  *float64   `json:"price,omitempty"`
	LegacyWeight *float64   `json:"weight,omitempty"`
	LegacyLink   string     `json:"link,omitempty"`
	LegacyDate   *time.Time `json:"date,omitempty"`
}

// Normalize migrates a legacy flat product into the tiered representation and
// reports which schema the record arrived in. A product never mixes both
// representations after this step.
func (p *Product) Normalize() Schema {
	if len(p.WeightPrices) > 0 || p.LegacyPrice == nil {
		p.clearLegacy()
		return SchemaTiered
	}

	tier := WeightPrice{Price: *p.LegacyPrice}
	if p.LegacyWeight != nil {
		tier.Weight = *p.LegacyWeight
	}
	p.WeightPrices = []WeightPrice{tier}
	if p.StoreLink == "" {
		p.StoreLink = p.LegacyLink
	}
	p.clearLegacy()
	return SchemaFlat
}

func (p *Product) clearLegacy() {
	p.LegacyPrice = nil
	p.LegacyWeight = nil
	p.LegacyLink = ""
	p.LegacyDate = nil
}

// ProductRef addresses a product for update/delete: by surrogate id when
// available, falling back to the composite key.
type ProductRef struct {
	ID    ID
	Name  string
	Brand string
	Store string
}

// Ref returns the product's address.
func (p Product) Ref() ProductRef {
	return ProductRef{ID: p.ID, Name: p.Name, Brand: p.Brand, Store: p.Store}
}

// Matches reports whether the ref addresses the given product. Surrogate ids
// take precedence; the composite key is compatibility mode only.
func (r ProductRef) Matches(p Product) bool {
	if r.ID != "" && p.ID != "" {
		return r.ID == p.ID
	}
	return r.Name == p.Name && r.Brand == p.Brand && r.Store == p.Store
}

func (r ProductRef) String() string {
	if r.ID != "" {
		return r.ID.String()
	}
	return r.Name + "|" + r.Brand + "|" + r.Store
}
