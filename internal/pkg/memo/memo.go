// Package memo caches the results of pure computations keyed by id.
package memo

import "sync"

// Map memoizes successful computations. The compute function runs outside
// the lock, so two racing first calls may both compute; the first stored
// value wins and later calls return it. Errors are not cached.
type Map[K comparable, V any] struct {
	mu     sync.RWMutex
	values map[K]V
}

// Get returns the cached value for key or computes and stores it
func (m *Map[K, V]) Get(key K, compute func() (V, error)) (V, error) {
	m.mu.RLock()
	v, ok := m.values[key]
	m.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.values[key]; ok {
		return existing, nil
	}
	if m.values == nil {
		m.values = make(map[K]V)
	}
	m.values[key] = v
	return v, nil
}

// Len is the number of cached values
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
