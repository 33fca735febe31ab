package wishlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Siddharthnigam/jugglers-shop/internal/cart"
	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
	"github.com/Siddharthnigam/jugglers-shop/internal/storage"
)

func TestAddRemoveList(t *testing.T) {
	sut := NewStore()

	sut.Add("u1", "1")
	sut.Add("u1", "2")
	sut.Add("u1", "1") // duplicate is a no-op

	items := sut.List("u1")
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ProductID)
	assert.True(t, sut.Contains("u1", "2"))

	sut.Remove("u1", "1")
	assert.False(t, sut.Contains("u1", "1"))
	assert.Len(t, sut.List("u1"), 1)

	// Other users are unaffected.
	assert.Empty(t, sut.List("u2"))
}

func TestMoveToCart(t *testing.T) {
	sut := NewStore()
	cartStore := cart.NewStore("s1", storage.NewMemoryStore(), nil, zap.NewNop())
	ctx := context.Background()

	sut.Add("u1", "1")
	snap := domain.ItemSnapshot{ProductID: "1", VariantKey: "M", Name: "Shirt", UnitPrice: 1299, MaxStock: 5}

	require.NoError(t, sut.MoveToCart(ctx, "u1", cartStore, snap))
	assert.True(t, cartStore.IsInCart("1", "M"))
	assert.False(t, sut.Contains("u1", "1"))
}

func TestMoveToCart_RejectedAddKeepsWishlistEntry(t *testing.T) {
	sut := NewStore()
	cartStore := cart.NewStore("s1", storage.NewMemoryStore(), nil, zap.NewNop())
	ctx := context.Background()

	sut.Add("u1", "1")
	snap := domain.ItemSnapshot{ProductID: "1", VariantKey: "M", Name: "Shirt", UnitPrice: 1299, MaxStock: 0}

	err := sut.MoveToCart(ctx, "u1", cartStore, snap)
	require.ErrorIs(t, err, cart.ErrOutOfStock)
	assert.True(t, sut.Contains("u1", "1"))
}
