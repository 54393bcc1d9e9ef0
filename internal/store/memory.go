package store

import "sync"

// Memory is a map guarded by a read/write lock. Readers never observe a map
// that is being mutated, and the bulk accessors hand out copies so callers can
// iterate while other goroutines keep writing.
type Memory[K comparable, V any] struct {
	items map[K]V
	mu    sync.RWMutex
}

// NewMemory creates an empty store
func NewMemory[K comparable, V any]() *Memory[K, V] {
	return &Memory[K, V]{
		items: make(map[K]V),
	}
}

// Get retrieves a value by key
func (s *Memory[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, exists := s.items[key]
	return v, exists
}

// Set stores a value
func (s *Memory[K, V]) Set(key K, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = v
}

// GetOrSet returns the stored value for key, storing the result of create
// first if the key is absent. create runs under the write lock.
func (s *Memory[K, V]) GetOrSet(key K, create func() V) V {
	s.mu.RLock()
	v, exists := s.items[key]
	s.mu.RUnlock()
	if exists {
		return v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, exists = s.items[key]; exists {
		return v
	}
	v = create()
	s.items[key] = v
	return v
}

// Delete removes a value and returns what was stored
func (s *Memory[K, V]) Delete(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, exists := s.items[key]
	delete(s.items, key)
	return v, exists
}

// DeleteIf removes the value for key only when match approves it. match runs
// under the write lock.
func (s *Memory[K, V]) DeleteIf(key K, match func(V) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, exists := s.items[key]
	if !exists || !match(v) {
		return false
	}
	delete(s.items, key)
	return true
}

// Exists checks if a key is present
func (s *Memory[K, V]) Exists(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.items[key]
	return exists
}

// Len returns the number of stored values
func (s *Memory[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Keys returns a snapshot of the stored keys
func (s *Memory[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]K, 0, len(s.items))
	for k := range s.items {
		out = append(out, k)
	}
	return out
}

// Values returns a snapshot of the stored values
func (s *Memory[K, V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]V, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	return out
}

// Clear removes every value
func (s *Memory[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.items)
}
