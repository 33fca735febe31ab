package wishlist

import (
	"context"
	"sync"
	"time"

	"github.com/Siddharthnigam/jugglers-shop/internal/cart"
	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
)

// Item is one saved product on a user's wishlist.
type Item struct {
	ProductID string    `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}

// Store keeps per-user wishlists in memory. Saving a product twice is a
// no-op; order of insertion is preserved.
type Store struct {
	mu    sync.RWMutex
	lists map[string][]Item
}

func NewStore() *Store {
	return &Store{lists: make(map[string][]Item)}
}

func (s *Store) Add(userID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.lists[userID] {
		if item.ProductID == productID {
			return
		}
	}
	s.lists[userID] = append(s.lists[userID], Item{ProductID: productID, AddedAt: time.Now()})
}

func (s *Store) Remove(userID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.lists[userID]
	for i, item := range items {
		if item.ProductID == productID {
			s.lists[userID] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

func (s *Store) List(userID string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Item, len(s.lists[userID]))
	copy(items, s.lists[userID])
	return items
}

func (s *Store) Contains(userID, productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.lists[userID] {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// MoveToCart adds the product snapshot to the cart and, when the add is
// accepted, removes the product from the wishlist.
func (s *Store) MoveToCart(ctx context.Context, userID string, cartStore *cart.Store, snap domain.ItemSnapshot) error {
	if err := cartStore.AddItem(ctx, snap); err != nil {
		return err
	}
	s.Remove(userID, snap.ProductID)
	return nil
}
