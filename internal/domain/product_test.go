package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func denimShirt() *Product {
	return &Product{
		ID:       "1",
		Slug:     "classic-denim-shirt",
		Name:     "Classic Denim Shirt",
		Category: "Shirts",
		Price:    1299,
		ImageURL: "https://example.com/denim.jpg",
		Sizes:    []string{"S", "M", "L"},
		Stock:    map[string]int{"S": 15, "M": 20, "L": 0},
		Active:   true,
	}
}

func TestSnapshot_CapturesVariantStock(t *testing.T) {
	snap, err := denimShirt().Snapshot("M")
	require.NoError(t, err)
	assert.Equal(t, "1", snap.ProductID)
	assert.Equal(t, "M", snap.VariantKey)
	assert.Equal(t, 20, snap.MaxStock)
	assert.Equal(t, 1299.0, snap.UnitPrice)
}

func TestSnapshot_UnknownVariant(t *testing.T) {
	_, err := denimShirt().Snapshot("XXL")
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestSnapshot_InactiveProduct(t *testing.T) {
	p := denimShirt()
	p.Active = false
	_, err := p.Snapshot("M")
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestSnapshot_NoVariantProduct(t *testing.T) {
	p := &Product{ID: "9", Name: "Gift Card", Price: 500, Stock: map[string]int{"": 100}, Active: true}
	snap, err := p.Snapshot("")
	require.NoError(t, err)
	assert.Equal(t, 100, snap.MaxStock)

	_, err = p.Snapshot("M")
	assert.ErrorIs(t, err, ErrVariantNotFound)
}
