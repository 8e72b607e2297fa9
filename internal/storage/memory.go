package storage

import (
	"context"
	"sync"

	"contas/internal/core"
)

// MemoryStore holds the record set in process memory. It backs tests
// and the default backend when nothing else is configured.
type MemoryStore struct {
	mu    sync.Mutex
	bills []core.Bill
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Bill(nil), s.bills...), nil
}

func (s *MemoryStore) Save(_ context.Context, bills []core.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = append([]core.Bill(nil), bills...)
	return nil
}

func (s *MemoryStore) Purge(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = nil
	return nil
}
