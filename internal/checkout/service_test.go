package checkout

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Siddharthnigam/jugglers-shop/internal/cart"
	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
	"github.com/Siddharthnigam/jugglers-shop/internal/orders"
	"github.com/Siddharthnigam/jugglers-shop/internal/storage"
)

type mockPublisher struct {
	mu        sync.Mutex
	published []*orders.Order
	err       error
}

func (m *mockPublisher) PublishOrderCreated(_ context.Context, order *orders.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, order)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func filledCart(t *testing.T) *cart.Store {
	t.Helper()
	store := cart.NewStore("s1", storage.NewMemoryStore(), nil, zap.NewNop())
	ctx := context.Background()

	snap := domain.ItemSnapshot{
		ProductID: "7", VariantKey: "M", Name: "Shirt", UnitPrice: 999, MaxStock: 5,
	}
	require.NoError(t, store.AddItem(ctx, snap))
	require.NoError(t, store.AddItem(ctx, snap))
	return store
}

func validRequest() *Request {
	return &Request{
		SessionID:      "s1",
		IdempotencyKey: "key-1",
		FullName:       "Asha Rao",
		Email:          "asha@example.com",
		Phone:          "9876543210",
		Address:        "12 MG Road",
		City:           "Bengaluru",
		PostalCode:     "560001",
	}
}

func TestSubmit_CreatesOrderAndClearsCart(t *testing.T) {
	repo := orders.NewMemoryRepository()
	pub := &mockPublisher{}
	sut := NewService(repo, pub, zap.NewNop())
	cartStore := filledCart(t)

	order, err := sut.Submit(context.Background(), validRequest(), cartStore)
	require.NoError(t, err)

	assert.Equal(t, orders.OrderStatusConfirmed, order.Status)
	assert.Equal(t, 1998.0, order.TotalAmount)
	assert.Equal(t, "INR", order.Currency)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 1998.0, order.Items[0].Subtotal)

	assert.Equal(t, 0, cartStore.TotalItems())
	require.Len(t, pub.published, 1)
	assert.Equal(t, order.ID, pub.published[0].ID)
}

func TestSubmit_EmptyCart(t *testing.T) {
	sut := NewService(orders.NewMemoryRepository(), &mockPublisher{}, zap.NewNop())
	emptyCart := cart.NewStore("s1", storage.NewMemoryStore(), nil, zap.NewNop())

	_, err := sut.Submit(context.Background(), validRequest(), emptyCart)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmit_ValidationFailures(t *testing.T) {
	sut := NewService(orders.NewMemoryRepository(), &mockPublisher{}, zap.NewNop())
	cartStore := filledCart(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing name", func(r *Request) { r.FullName = "  " }},
		{"bad email", func(r *Request) { r.Email = "not-an-email" }},
		{"missing address", func(r *Request) { r.Address = "" }},
		{"missing city", func(r *Request) { r.City = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := sut.Submit(context.Background(), req, cartStore)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Equal(t, 2, cartStore.TotalItems(), "cart untouched on rejection")
		})
	}
}

func TestSubmit_IdempotentRetry(t *testing.T) {
	repo := orders.NewMemoryRepository()
	pub := &mockPublisher{}
	sut := NewService(repo, pub, zap.NewNop())
	cartStore := filledCart(t)
	ctx := context.Background()

	first, err := sut.Submit(ctx, validRequest(), cartStore)
	require.NoError(t, err)

	// Retry with the same key: same order back, no new order or event.
	second, err := sut.Submit(ctx, validRequest(), cartStore)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, pub.published, 1)
}

func TestSubmit_PublishFailureStillCompletes(t *testing.T) {
	repo := orders.NewMemoryRepository()
	pub := &mockPublisher{err: fmt.Errorf("brokers unreachable")}
	sut := NewService(repo, pub, zap.NewNop())
	cartStore := filledCart(t)

	order, err := sut.Submit(context.Background(), validRequest(), cartStore)
	require.NoError(t, err)

	stored, err := repo.GetOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)
	assert.Equal(t, 0, cartStore.TotalItems())
}
