package orders

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps orders in process memory, for development and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*Order
	byKey  map[string]uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[uuid.UUID]*Order),
		byKey:  make(map[string]uuid.UUID),
	}
}

func (m *MemoryRepository) CreateOrder(_ context.Context, order *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if order.IdempotencyKey != "" {
		if _, exists := m.byKey[order.IdempotencyKey]; exists {
			return ErrDuplicateCheckout
		}
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	copied := *order
	m.orders[order.ID] = &copied
	if order.IdempotencyKey != "" {
		m.byKey[order.IdempotencyKey] = order.ID
	}
	return nil
}

func (m *MemoryRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, exists := m.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *MemoryRepository) GetOrderByIdempotencyKey(_ context.Context, key string) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, exists := m.byKey[key]
	if !exists {
		return nil, ErrOrderNotFound
	}
	copied := *m.orders[id]
	return &copied, nil
}

func (m *MemoryRepository) ListOrdersBySession(_ context.Context, sessionID string) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*Order
	for _, order := range m.orders {
		if order.SessionID == sessionID {
			copied := *order
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *MemoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, status OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, exists := m.orders[id]
	if !exists {
		return ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return nil
}
