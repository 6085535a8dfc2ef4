package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

type memoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStore returns an in-process store used by tests and throwaway
// environments. Values are kept in serialized form so reads hand out copies,
// never aliases.
func NewMemoryStore() Store {
	return &memoryStore{slots: make(map[string][]byte)}
}

func (m *memoryStore) Read(ctx context.Context, slot string, dest any) (bool, error) {
	m.mu.RLock()
	data, ok := m.slots[slot]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		slog.Warn("Discarding malformed slot data", slog.String("slot", slot), slog.String("error", err.Error()))
		return false, nil
	}

	return true, nil
}

func (m *memoryStore) Write(ctx context.Context, slot string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.slots[slot] = data
	m.mu.Unlock()

	return nil
}

func (m *memoryStore) Delete(ctx context.Context, slot string) error {
	m.mu.Lock()
	delete(m.slots, slot)
	m.mu.Unlock()

	return nil
}

func (m *memoryStore) Close() error {
	return nil
}
