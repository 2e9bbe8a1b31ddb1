package usage

import (
	"context"
	"sync"
)

// implements Store using in-memory storage
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

// creates a new in-memory usage store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

// retrieves the record for a client
func (s *MemoryStore) Load(_ context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[key]
	if !exists {
		return nil, nil
	}

	return &record, nil
}

// overwrites the record for a client
func (s *MemoryStore) Save(_ context.Context, key string, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = record
	return nil
}

// increments the record under the store lock
func (s *MemoryStore) Increment(_ context.Context, key, today string, limit int) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current *Record
	if record, exists := s.records[key]; exists {
		current = &record
	}

	next, allowed := applyIncrement(current, today, limit)
	s.records[key] = next

	return next, allowed, nil
}
