package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_DecodesStringAndNumber(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id": "abc-1", "name": "A", "brand": "B", "store": "C"}`), &p))
	assert.Equal(t, ID("abc-1"), p.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "name": "A", "brand": "B", "store": "C"}`), &p))
	assert.Equal(t, ID("42"), p.ID)
}

func TestImageSet_DecodesURLString(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "A", "brand": "B", "store": "C",
		"images": "https://cdn.example.com/a.jpg"
	}`), &p))

	assert.Equal(t, "https://cdn.example.com/a.jpg", p.Images.URL)
	assert.Empty(t, p.Images.Embeds)
	assert.False(t, p.Images.Empty())
}

func TestImageSet_DecodesBlobArray(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "A", "brand": "B", "store": "C",
		"images": [{"data": "aGVsbG8=", "mime_type": "image/png"}]
	}`), &p))

	require.Len(t, p.Images.Embeds, 1)
	assert.Equal(t, "aGVsbG8=", p.Images.Embeds[0].Data)
	assert.Equal(t, "image/png", p.Images.Embeds[0].MimeType)
	assert.Empty(t, p.Images.URL)
}

func TestImageSet_RoundTripPreservesShape(t *testing.T) {
	url := ImageSet{URL: "https://cdn.example.com/a.jpg"}
	raw, err := json.Marshal(url)
	require.NoError(t, err)
	assert.JSONEq(t, `"https://cdn.example.com/a.jpg"`, string(raw))

	embeds := ImageSet{Embeds: []Image{{Data: "x", MimeType: "image/jpeg"}}}
	raw, err = json.Marshal(embeds)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"data": "x", "mime_type": "image/jpeg"}]`, string(raw))
}

func TestImageSet_NullDecodesEmpty(t *testing.T) {
	var s ImageSet
	require.NoError(t, json.Unmarshal([]byte(`null`), &s))
	assert.True(t, s.Empty())
}

func TestNormalize_FlatBecomesSingleTier(t *testing.T) {
	price, weight := 5.25, 750.0
	date := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	p := Product{
		Name: "Arroz", Brand: "Mary", Store: "Central",
		LegacyPrice:  &price,
		LegacyWeight: &weight,
		LegacyLink:   "https://store.example.com/arroz",
		LegacyDate:   &date,
	}

	schema := p.Normalize()

	assert.Equal(t, SchemaFlat, schema)
	require.Len(t, p.WeightPrices, 1)
	assert.Equal(t, WeightPrice{Weight: 750, Price: 5.25}, p.WeightPrices[0])
	assert.Equal(t, "https://store.example.com/arroz", p.StoreLink)
	assert.Nil(t, p.LegacyPrice)
	assert.Nil(t, p.LegacyWeight)
	assert.Empty(t, p.LegacyLink)
	assert.Nil(t, p.LegacyDate)
}

func TestNormalize_FlatWithoutWeightGetsZeroWeightTier(t *testing.T) {
	price := 3.0
	p := Product{Name: "A", Brand: "B", Store: "C", LegacyPrice: &price}

	assert.Equal(t, SchemaFlat, p.Normalize())
	require.Len(t, p.WeightPrices, 1)
	assert.Zero(t, p.WeightPrices[0].Weight)
	assert.Equal(t, 3.0, p.WeightPrices[0].Price)
}

func TestNormalize_TieredDropsStrayLegacyFields(t *testing.T) {
	price := 9.99
	p := Product{
		Name: "A", Brand: "B", Store: "C",
		WeightPrices: []WeightPrice{{Weight: 500, Price: 10}},
		LegacyPrice:  &price,
		LegacyLink:   "https://old.example.com",
	}

	assert.Equal(t, SchemaTiered, p.Normalize())
	require.Len(t, p.WeightPrices, 1)
	assert.Equal(t, 10.0, p.WeightPrices[0].Price)
	assert.Nil(t, p.LegacyPrice)
	assert.Empty(t, p.LegacyLink)
}

func TestNormalize_TieredLinkDoesNotOverrideStoreLink(t *testing.T) {
	price := 1.0
	p := Product{
		Name: "A", Brand: "B", Store: "C",
		StoreLink:   "https://new.example.com",
		LegacyPrice: &price,
		LegacyLink:  "https://old.example.com",
	}

	p.Normalize()
	assert.Equal(t, "https://new.example.com", p.StoreLink)
}

func TestProductRef_SurrogateIDTakesPrecedence(t *testing.T) {
	ref := ProductRef{ID: "7", Name: "Old Name", Brand: "B", Store: "C"}

	// Renamed on the remote but same id: still the same element.
	assert.True(t, ref.Matches(Product{ID: "7", Name: "New Name", Brand: "B", Store: "C"}))
	assert.False(t, ref.Matches(Product{ID: "8", Name: "Old Name", Brand: "B", Store: "C"}))
}

func TestProductRef_CompositeKeyFallback(t *testing.T) {
	ref := ProductRef{Name: "Harina", Brand: "PAN", Store: "Central"}

	assert.True(t, ref.Matches(Product{ID: "3", Name: "Harina", Brand: "PAN", Store: "Central"}))
	assert.False(t, ref.Matches(Product{Name: "Harina", Brand: "PAN", Store: "Express"}))
}

func TestProductRef_String(t *testing.T) {
	assert.Equal(t, "7", ProductRef{ID: "7", Name: "A"}.String())
	assert.Equal(t, "A|B|C", ProductRef{Name: "A", Brand: "B", Store: "C"}.String())
}
