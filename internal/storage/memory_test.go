package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
)

func sampleItems() []domain.LineItem {
	return []domain.LineItem{
		{ID: "7:M", ProductID: "7", VariantKey: "M", Name: "Shirt", UnitPrice: 999, Quantity: 2, MaxStock: 5},
		{ID: "8:L", ProductID: "8", VariantKey: "L", Name: "Jeans", UnitPrice: 1499, Quantity: 1, MaxStock: 3},
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", NewCartRecord(sampleItems())))

	rec, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, rec.Version)
	assert.Equal(t, sampleItems(), rec.Items)
}

func TestMemoryStore_MissingSlot(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestMemoryStore_CorruptSlotCleared(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.slots["s1"] = []byte("{not json")

	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrSlotNotFound)
	_, exists := store.slots["s1"]
	assert.False(t, exists)
}

func TestMemoryStore_UnsupportedVersionCleared(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec := NewCartRecord(sampleItems())
	rec.Version = 99
	require.NoError(t, store.Save(ctx, "s1", rec))

	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", NewCartRecord(sampleItems())))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	// Deleting a missing slot is not an error.
	assert.NoError(t, store.Delete(ctx, "nope"))
}
