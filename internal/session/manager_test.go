package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
	"github.com/Siddharthnigam/jugglers-shop/internal/storage"
)

func TestCart_SameSessionSameStore(t *testing.T) {
	sut := NewManager(storage.NewMemoryStore(), nil, zap.NewNop())
	ctx := context.Background()

	first := sut.Cart(ctx, "s1")
	second := sut.Cart(ctx, "s1")
	assert.Same(t, first, second)

	other := sut.Cart(ctx, "s2")
	assert.NotSame(t, first, other)
}

func TestCart_HydratesFromSlot(t *testing.T) {
	slots := storage.NewMemoryStore()
	ctx := context.Background()

	rec := storage.NewCartRecord([]domain.LineItem{
		{ID: "7:M", ProductID: "7", VariantKey: "M", Quantity: 2, MaxStock: 5},
	})
	require.NoError(t, slots.Save(ctx, "s1", rec))

	sut := NewManager(slots, nil, zap.NewNop())
	store := sut.Cart(ctx, "s1")
	assert.Equal(t, 2, store.GetQuantity("7", "M"))
}

func TestCart_ConcurrentFirstAccess(t *testing.T) {
	sut := NewManager(storage.NewMemoryStore(), nil, zap.NewNop())
	ctx := context.Background()

	const goroutines = 16
	stores := make([]interface{}, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			stores[i] = sut.Cart(ctx, "s1")
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, stores[0], stores[i])
	}
}

func TestDrop_NextAccessRehydrates(t *testing.T) {
	slots := storage.NewMemoryStore()
	sut := NewManager(slots, nil, zap.NewNop())
	ctx := context.Background()

	store := sut.Cart(ctx, "s1")
	require.NoError(t, store.AddItem(ctx, domain.ItemSnapshot{
		ProductID: "7", VariantKey: "M", Name: "Shirt", UnitPrice: 999, MaxStock: 5,
	}))

	sut.Drop("s1")

	again := sut.Cart(ctx, "s1")
	assert.NotSame(t, store, again)
	assert.Equal(t, 1, again.GetQuantity("7", "M"))
}
