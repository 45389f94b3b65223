package cache

import (
	"context"
	"sync"

	"github.com/shiftsat/shiftsat/pkg/model"
)

// MemStore is an in-process cache backed by sync.Map, suitable for a
// single scheduler instance or tests. Entries never expire; callers that
// need eviction should wrap MemStore or use PostgresStore with its own
// retention policy instead.
type MemStore struct {
	entries sync.Map
}

// NewMemStore constructs an empty in-process cache.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Get implements Store.
func (s *MemStore) Get(_ context.Context, key string) (*model.Schedule, bool, error) {
	v, ok := s.entries.Load(key)
	if !ok {
		return nil, false, nil
	}
	return v.(*model.Schedule), true, nil
}

// Put implements Store.
func (s *MemStore) Put(_ context.Context, key string, schedule *model.Schedule) error {
	s.entries.Store(key, schedule)
	return nil
}
