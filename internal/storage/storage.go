package storage

import (
	"slices"
	"sync"
)

// Store is an in-memory collection that keeps insertion order, which is the
// order list endpoints return records in.
type Store[T any] struct {
	items map[string]T
	order []string
	mu    sync.RWMutex
}

func New[T any]() *Store[T] {
	return &Store[T]{
		items: make(map[string]T),
	}
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, exists := s.items[id]
	return item, exists
}

// Set inserts or replaces the record. Replacing keeps its position.
func (s *Store[T]) Set(id string, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = item
}

// Replace updates an existing record and reports whether it existed.
func (s *Store[T]) Replace(id string, item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		return false
	}
	s.items[id] = item
	return true
}

// GetAll returns a copy of every record in insertion order.
func (s *Store[T]) GetAll() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.items[id])
	}
	return result
}

// Delete removes the record and reports whether it existed.
func (s *Store[T]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		return false
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(k string) bool { return k == id })
	return true
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
