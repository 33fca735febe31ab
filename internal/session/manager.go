package session

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Siddharthnigam/jugglers-shop/internal/cart"
	"github.com/Siddharthnigam/jugglers-shop/internal/storage"
)

// Manager hands out one cart store per browsing session. A session's cart
// is hydrated from its persisted slot exactly once; singleflight collapses
// concurrent first requests for the same session.
type Manager struct {
	mu     sync.RWMutex
	carts  map[string]*cart.Store
	sfg    singleflight.Group
	slots  storage.SlotStore
	sink   cart.Sink
	logger *zap.Logger
}

func NewManager(slots storage.SlotStore, sink cart.Sink, logger *zap.Logger) *Manager {
	return &Manager{
		carts:  make(map[string]*cart.Store),
		slots:  slots,
		sink:   sink,
		logger: logger,
	}
}

// Cart returns the live cart store for the session, creating and hydrating
// it on first use.
func (m *Manager) Cart(ctx context.Context, sessionID string) *cart.Store {
	m.mu.RLock()
	store, exists := m.carts[sessionID]
	m.mu.RUnlock()
	if exists {
		return store
	}

	v, _, _ := m.sfg.Do(sessionID, func() (interface{}, error) {
		m.mu.RLock()
		existing, ok := m.carts[sessionID]
		m.mu.RUnlock()
		if ok {
			return existing, nil
		}

		created := cart.NewStore(sessionID, m.slots, m.sink, m.logger)
		created.Hydrate(ctx)

		m.mu.Lock()
		m.carts[sessionID] = created
		m.mu.Unlock()
		return created, nil
	})

	return v.(*cart.Store)
}

// Drop evicts a session's cart store from memory. The persisted slot is
// untouched; the next Cart call hydrates from it again.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
}
