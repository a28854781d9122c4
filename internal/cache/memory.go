package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is a thread-safe in-memory TTL cache.
// Expired entries are dropped on read and swept on write.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	hits    uint64
	misses  uint64
	now     func() time.Time
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get retrieves a cached value
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if ok && !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		ok = false
	}
	if !ok {
		m.misses++
		return nil, false, nil
	}
	m.hits++
	return clone(e.data), true, nil
}

// Set stores a value with a TTL; a non-positive TTL uses DefaultTTL
func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evict(now)
	m.entries[key] = entry{data: clone(value), expiresAt: now.Add(ttl)}
	return nil
}

// Delete removes a key
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Stats returns cache statistics
func (m *Memory) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := 0
	now := m.now()
	for _, e := range m.entries {
		if now.Before(e.expiresAt) {
			active++
		}
	}
	return Stats{Backend: "memory", Keys: active, Hits: m.hits, Misses: m.misses}
}

// evict must be called with mu held
func (m *Memory) evict(now time.Time) {
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, key)
		}
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
