package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
	"github.com/Siddharthnigam/jugglers-shop/internal/storage"
)

var (
	// ErrStockLimit means a quantity change would exceed the item's stock
	// ceiling. Recoverable, user-facing, cart state unchanged.
	ErrStockLimit = errors.New("maximum stock limit reached")

	// ErrOutOfStock means the product variant had no stock at add time.
	ErrOutOfStock = errors.New("item is out of stock")
)

// User-facing notification reasons, one per mutation outcome.
const (
	ReasonItemAdded       = "item added to cart"
	ReasonQuantityUpdated = "item quantity updated in cart"
	ReasonVariantUpdated  = "item variant updated in cart"
	ReasonItemRemoved     = "item removed from cart"
	ReasonCartCleared     = "cart cleared"
	ReasonStockLimit      = "maximum stock limit reached"
	ReasonOutOfStock      = "item is out of stock"
	ReasonItemMissing     = "item not in cart"
)

// Store owns one cart: an ordered line item sequence with unique composite
// ids and quantities bounded by each item's stock ceiling. All operations
// are serialized behind a single lock, persist the full sequence after
// every mutation, and emit exactly one notification per mutating call.
type Store struct {
	mu     sync.RWMutex
	slot   string
	items  []domain.LineItem
	slots  storage.SlotStore
	sink   Sink
	logger *zap.Logger
}

func NewStore(slot string, slots storage.SlotStore, sink Sink, logger *zap.Logger) *Store {
	return &Store{
		slot:   slot,
		slots:  slots,
		sink:   sink,
		logger: logger,
	}
}

// Hydrate restores the cart from its persisted slot. Missing or corrupt
// state leaves the cart empty; persisted items violating the quantity
// bounds or id uniqueness are dropped.
func (s *Store) Hydrate(ctx context.Context) {
	rec, err := s.slots.Load(ctx, s.slot)
	if err != nil {
		if !errors.Is(err, storage.ErrSlotNotFound) {
			s.logger.Warn("cart load failed, starting empty", zap.String("slot", s.slot), zap.Error(err))
		}
		return
	}

	seen := make(map[string]bool, len(rec.Items))
	items := make([]domain.LineItem, 0, len(rec.Items))
	for _, item := range rec.Items {
		if item.Quantity < 1 || item.Quantity > item.MaxStock || seen[item.ID] {
			s.logger.Warn("dropping invalid persisted line item", zap.String("slot", s.slot), zap.String("id", item.ID))
			continue
		}
		seen[item.ID] = true
		items = append(items, item)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// AddItem inserts the snapshot as a new line item with quantity 1, or
// increments the quantity of the existing item with the same identity.
// Returns ErrStockLimit when the existing quantity already sits at the
// ceiling, ErrOutOfStock when a new item has no stock to begin with.
func (s *Store) AddItem(ctx context.Context, snap domain.ItemSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := domain.LineItemID(snap.ProductID, snap.VariantKey)
	if existing := s.findLocked(id); existing != nil {
		if existing.Quantity >= existing.MaxStock {
			s.notify(NotifyError, ReasonStockLimit)
			return ErrStockLimit
		}
		existing.Quantity++
		s.persistLocked(ctx)
		s.notify(NotifySuccess, ReasonQuantityUpdated)
		return nil
	}

	if snap.MaxStock < 1 {
		s.notify(NotifyError, ReasonOutOfStock)
		return ErrOutOfStock
	}

	s.items = append(s.items, domain.LineItem{
		ID:         id,
		ProductID:  snap.ProductID,
		VariantKey: snap.VariantKey,
		Name:       snap.Name,
		UnitPrice:  snap.UnitPrice,
		ImageURL:   snap.ImageURL,
		Quantity:   1,
		MaxStock:   snap.MaxStock,
	})
	s.persistLocked(ctx)
	s.notify(NotifySuccess, ReasonItemAdded)
	return nil
}

// RemoveItem deletes the line item with the given id. Removing an absent
// id is a benign no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(id)
	s.persistLocked(ctx)
	s.notify(NotifySuccess, ReasonItemRemoved)
}

// UpdateQuantity sets the quantity of the line item with the given id.
// A quantity of zero or less removes the item. Quantities above the stock
// ceiling are rejected with ErrStockLimit and leave the item untouched.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(id)
		s.persistLocked(ctx)
		s.notify(NotifySuccess, ReasonItemRemoved)
		return nil
	}

	item := s.findLocked(id)
	if item == nil {
		s.notify(NotifySuccess, ReasonItemMissing)
		return nil
	}

	if quantity > item.MaxStock {
		s.notify(NotifyError, ReasonStockLimit)
		return ErrStockLimit
	}

	item.Quantity = quantity
	s.persistLocked(ctx)
	s.notify(NotifySuccess, ReasonQuantityUpdated)
	return nil
}

// UpdateVariant re-keys a line item to a different variant in one state
// transition: the old entry is deleted and the new identity is upserted
// under the add-item rule (merge by incrementing an existing entry, or
// create fresh at quantity 1). When the merge target already sits at its
// ceiling the whole operation is rejected and the cart is left unchanged.
func (s *Store) UpdateVariant(ctx context.Context, id, newVariantKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findLocked(id)
	if item == nil {
		s.notify(NotifySuccess, ReasonItemMissing)
		return nil
	}

	newID := domain.LineItemID(item.ProductID, newVariantKey)
	if newID == id {
		s.notify(NotifySuccess, ReasonVariantUpdated)
		return nil
	}

	if target := s.findLocked(newID); target != nil {
		if target.Quantity >= target.MaxStock {
			s.notify(NotifyError, ReasonStockLimit)
			return ErrStockLimit
		}
		s.removeLocked(id)
		// Re-resolve: removal shifted the slice.
		s.findLocked(newID).Quantity++
	} else {
		moved := *item
		moved.ID = newID
		moved.VariantKey = newVariantKey
		moved.Quantity = 1
		s.removeLocked(id)
		s.items = append(s.items, moved)
	}

	s.persistLocked(ctx)
	s.notify(NotifySuccess, ReasonVariantUpdated)
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persistLocked(ctx)
	s.notify(NotifySuccess, ReasonCartCleared)
}

// IsInCart reports whether a line item exists for the product+variant pair.
func (s *Store) IsInCart(productID, variantKey string) bool {
	return s.GetQuantity(productID, variantKey) > 0
}

// GetQuantity returns the line item's quantity, or zero when absent.
func (s *Store) GetQuantity(productID, variantKey string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id := domain.LineItemID(productID, variantKey)
	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i].Quantity
		}
	}
	return 0
}

// Items returns a copy of the line item sequence in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// TotalItems is the sum of all quantities, recomputed from the sequence.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.TotalItems(s.items)
}

// TotalPrice is the sum of unit price times quantity over the sequence.
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.TotalPrice(s.items)
}

func (s *Store) findLocked(id string) *domain.LineItem {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i]
		}
	}
	return nil
}

func (s *Store) removeLocked(id string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// persistLocked writes the full sequence to the durable slot. Failures are
// logged and never surfaced: in-memory state stays authoritative for the
// rest of the session.
func (s *Store) persistLocked(ctx context.Context) {
	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)

	if err := s.slots.Save(ctx, s.slot, storage.NewCartRecord(items)); err != nil {
		s.logger.Error("cart save failed", zap.String("slot", s.slot), zap.Error(err))
	}
}

func (s *Store) notify(kind NotificationKind, reason string) {
	if s.sink == nil {
		return
	}
	s.sink.Notify(Notification{Kind: kind, Reason: reason})
}
