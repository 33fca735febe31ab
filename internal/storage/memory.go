package storage

import (
	"context"
	"sync"
)

// MemoryStore implements SlotStore with in-process storage. It keeps the
// encoded form so the round-trip matches the durable backends.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (m *MemoryStore) Save(_ context.Context, slot string, rec CartRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = data
	return nil
}

func (m *MemoryStore) Load(_ context.Context, slot string) (CartRecord, error) {
	m.mu.RLock()
	data, exists := m.slots[slot]
	m.mu.RUnlock()

	if !exists {
		return CartRecord{}, ErrSlotNotFound
	}

	rec, err := decodeRecord(data)
	if err != nil {
		// Corrupt slot: clear it and report absence.
		m.mu.Lock()
		delete(m.slots, slot)
		m.mu.Unlock()
		return CartRecord{}, ErrSlotNotFound
	}
	return rec, nil
}

func (m *MemoryStore) Delete(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
	return nil
}
