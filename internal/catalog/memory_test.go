package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
)

func TestMemoryCatalog_List(t *testing.T) {
	sut := NewSeededCatalog()

	products, err := sut.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 5)
	assert.Equal(t, "1", products[0].ID)
}

func TestMemoryCatalog_ListSkipsInactive(t *testing.T) {
	active := SampleProducts()[0]
	inactive := SampleProducts()[1]
	inactive.Active = false
	sut := NewMemoryCatalog(active, inactive)

	products, err := sut.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, active.ID, products[0].ID)
}

func TestMemoryCatalog_GetByID(t *testing.T) {
	sut := NewSeededCatalog()
	ctx := context.Background()

	p, err := sut.GetByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "slim-fit-dark-jeans", p.Slug)

	_, err = sut.GetByID(ctx, "999")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMemoryCatalog_GetBySlug(t *testing.T) {
	sut := NewSeededCatalog()
	ctx := context.Background()

	p, err := sut.GetBySlug(ctx, "bomber-jacket")
	require.NoError(t, err)
	assert.Equal(t, "4", p.ID)

	_, err = sut.GetBySlug(ctx, "missing-slug")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMemoryCatalog_Featured(t *testing.T) {
	sut := NewSeededCatalog()

	products, err := sut.Featured(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	for _, p := range products {
		assert.True(t, p.Featured)
	}
}

func TestMemoryCatalog_Categories(t *testing.T) {
	sut := NewSeededCatalog()

	categories, err := sut.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Shirts", "T-Shirts", "Jeans", "Jackets", "Dresses"}, categories)
}

func TestMemoryCatalog_ReturnsCopies(t *testing.T) {
	sut := NewSeededCatalog()
	ctx := context.Background()

	p, err := sut.GetByID(ctx, "1")
	require.NoError(t, err)
	p.Name = "mutated"

	again, err := sut.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Classic Denim Shirt", again.Name)
}
