package dto

import (
	"encoding/json"
	"testing"

	"github.com/princinho/boutique/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberCoercion(t *testing.T) {
	var body struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a": 12.5, "b": "7", "c": "abc", "d": null, "e": true}`), &body)
	require.NoError(t, err)

	assert.Equal(t, 12.5, body.A.Float())
	assert.Equal(t, 7, body.B.Int())
	assert.Zero(t, body.C.Float())
	assert.Zero(t, body.D.Float())
	assert.Zero(t, body.E.Float())
}

func TestNumberRejectsNonFinite(t *testing.T) {
	var body struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a": "NaN", "b": "Inf", "c": "-Infinity", "d": 1e999}`), &body)
	require.NoError(t, err)

	assert.Zero(t, body.A.Float())
	assert.Zero(t, body.B.Float())
	assert.Zero(t, body.C.Float())
	assert.Zero(t, body.D.Float())
}

func TestCartKeysUseTokenForm(t *testing.T) {
	rm := RemoveCartItemDTO{ProductID: "p1", Size: " m", Color: "navy "}
	assert.Equal(t, models.CartKey{ProductID: "p1", Size: "M", Color: "NAVY"}, rm.Key())

	up := UpdateCartItemDTO{ProductID: "p1", Size: "xl", Delta: -1}
	assert.Equal(t, models.CartKey{ProductID: "p1", Size: "XL"}, up.Key())
}

func TestCreateProductDTO(t *testing.T) {
	var d CreateProductDTO
	require.NoError(t, json.Unmarshal([]byte(`{"name":" Robe ","price":"99.5","quantity":"3","category":"Women","sizes":"s,m"}`), &d))

	p := d.Product("robe", []string{"u1"})
	assert.Equal(t, "Robe", p.Name)
	assert.Equal(t, 99.5, p.Price)
	assert.Equal(t, 3, p.Quantity)
	assert.Equal(t, models.CategoryWomen, p.Category)
	assert.Equal(t, "s,m", p.Sizes)
	assert.Equal(t, []string{"u1"}, p.ImageUrls)
}

func TestUpdateProductDTOPatch(t *testing.T) {
	var d UpdateProductDTO
	require.NoError(t, json.Unmarshal([]byte(`{"quantity":"0","category":"Kids"}`), &d))

	p := d.Patch()
	require.NotNil(t, p.Quantity)
	assert.Equal(t, 0, *p.Quantity)
	require.NotNil(t, p.Category)
	assert.Equal(t, models.CategoryKids, *p.Category)
	assert.Nil(t, p.Name)
	assert.Nil(t, p.Price)

	assert.True(t, UpdateProductDTO{}.Patch().Empty())
}

func TestStoreConfigDTO(t *testing.T) {
	var d StoreConfigDTO
	require.NoError(t, json.Unmarshal([]byte(`{"phone":"+212","mapLat":"33.1","mapLng":-7}`), &d))
	cfg := d.StoreConfig()
	assert.Equal(t, 33.1, cfg.MapLat)
	assert.Equal(t, -7.0, cfg.MapLng)
}
