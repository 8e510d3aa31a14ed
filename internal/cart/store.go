package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Store persists one cart per tenant under a tenant-scoped key so carts of
// different tenants never collide. Load never fails on corrupt data: a
// payload that does not parse is treated as an empty cart.
type Store interface {
	Load(ctx context.Context, tenantID int64) (Cart, error)
	Save(ctx context.Context, tenantID int64, c Cart) error
	Clear(ctx context.Context, tenantID int64) error
}

// StorageKey derives the persisted-entry key for one tenant's cart.
func StorageKey(tenantID int64) string {
	return fmt.Sprintf("fa_cart_%d", tenantID)
}

// Decode parses a persisted cart payload. Corrupt data and non-positive
// quantities are swallowed, never propagated.
func Decode(data []byte) Cart {
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil || c == nil {
		return Cart{}
	}
	for id, qty := range c {
		if qty <= 0 {
			delete(c, id)
		}
	}
	return c
}

// MemoryStore keeps serialized carts in a mutex-guarded map. It backs
// single-process deployments and the tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, tenantID int64) (Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.entries[StorageKey(tenantID)]
	if !ok {
		return Cart{}, nil
	}
	return Decode(data), nil
}

func (s *MemoryStore) Save(_ context.Context, tenantID int64, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[StorageKey(tenantID)] = data
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, tenantID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, StorageKey(tenantID))
	return nil
}
