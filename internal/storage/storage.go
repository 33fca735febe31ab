package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
)

// SchemaVersion tags persisted cart records so the layout can evolve safely.
const SchemaVersion = 1

var (
	ErrSlotNotFound = errors.New("cart slot not found")
	ErrBadRecord    = errors.New("malformed cart record")
)

// CartRecord is the persisted envelope for one cart slot.
type CartRecord struct {
	Version   int               `json:"version" bson:"version"`
	Items     []domain.LineItem `json:"items" bson:"items"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}

// NewCartRecord wraps a line item sequence in the current schema version.
func NewCartRecord(items []domain.LineItem) CartRecord {
	return CartRecord{
		Version:   SchemaVersion,
		Items:     items,
		UpdatedAt: time.Now(),
	}
}

// SlotStore defines the interface for durable cart slots.
// Consumers define this interface, not the backing implementations.
type SlotStore interface {
	// Save writes the record to the named slot, replacing any prior state.
	Save(ctx context.Context, slot string, rec CartRecord) error

	// Load reads the named slot. A missing slot returns ErrSlotNotFound.
	// Implementations clear a slot holding undecodable data and report it
	// as ErrSlotNotFound so callers always start from a clean cart.
	Load(ctx context.Context, slot string) (CartRecord, error)

	// Delete removes the named slot. Deleting a missing slot is not an error.
	Delete(ctx context.Context, slot string) error
}

func encodeRecord(rec CartRecord) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal cart record: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (CartRecord, error) {
	var rec CartRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return CartRecord{}, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	if rec.Version != SchemaVersion {
		return CartRecord{}, fmt.Errorf("%w: unsupported version %d", ErrBadRecord, rec.Version)
	}
	return rec, nil
}
