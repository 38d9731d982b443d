package utils

import (
	"sync"
	"time"
)

type ttlEntry[V any] struct {
	value   V
	expires time.Time
}

// TTLMap is a concurrency-safe map whose entries expire a fixed time after
// they were last set. Expired entries are swept in the background until Close.
type TTLMap[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]ttlEntry[V]
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

// NewTTLMap creates a TTLMap and starts its sweeper.
func NewTTLMap[K comparable, V any](ttl time.Duration) *TTLMap[K, V] {
	m := &TTLMap[K, V]{
		entries: make(map[K]ttlEntry[V]),
		ttl:     ttl,
		done:    make(chan struct{}),
	}

	go m.sweep()

	return m
}

// Get returns the value stored under key if it has not expired.
func (m *TTLMap[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok || time.Now().After(entry.expires) {
		var zero V
		return zero, false
	}

	return entry.value, true
}

// Set stores value under key and restarts its expiry.
func (m *TTLMap[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = ttlEntry[V]{value: value, expires: time.Now().Add(m.ttl)}
}

// Delete removes key.
func (m *TTLMap[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
}

// Len returns the number of stored entries, expired ones not yet swept included.
func (m *TTLMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// Close stops the sweeper. The map stays usable.
func (m *TTLMap[K, V]) Close() {
	m.once.Do(func() { close(m.done) })
}

func (m *TTLMap[K, V]) sweep() {
	ticker := time.NewTicker(m.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for key, entry := range m.entries {
				if now.After(entry.expires) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		}
	}
}
