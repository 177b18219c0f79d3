// Package cache provides the bounded scalar caches that keep repeated
// measurements of an unchanged ring cheap during interactive editing.
package cache

import "sync"

// ScalarCache memoizes a float64 per ring signature. Capacity is bounded;
// on overflow the oldest half of the entries is evicted in insertion order
// before the new entry is stored. Access is mutex-guarded so the cache
// stays safe if callers ever move off a single goroutine.
type ScalarCache struct {
	mu       sync.Mutex
	entries  map[string]float64
	order    []string
	capacity int

	hits      uint64
	misses    uint64
	evictions uint64
}

// Stats reports cache usage counters; tests use Misses to verify that a
// value was computed only once.
type Stats struct {
	Entries   int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// DefaultCapacity bounds a cache when the caller passes a non-positive value
const DefaultCapacity = 100

// NewScalarCache creates a bounded scalar cache
func NewScalarCache(capacity int) *ScalarCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ScalarCache{
		entries:  make(map[string]float64),
		capacity: capacity,
	}
}

// GetOrCompute returns the cached value for key, running compute and
// storing its result on a miss.
func (c *ScalarCache) GetOrCompute(key string, compute func() float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if value, ok := c.entries[key]; ok {
		c.hits++
		return value
	}
	c.misses++

	value := compute()
	c.store(key, value)
	return value
}

// Get returns the cached value for key if present
func (c *ScalarCache) Get(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return value, ok
}

// Put stores a value, evicting the oldest half of the cache if full
func (c *ScalarCache) Put(key string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value)
}

// store inserts under an already-held lock
func (c *ScalarCache) store(key string, value float64) {
	if _, exists := c.entries[key]; exists {
		c.entries[key] = value
		return
	}

	if len(c.order) >= c.capacity {
		drop := len(c.order) / 2
		for _, old := range c.order[:drop] {
			delete(c.entries, old)
		}
		c.order = append([]string(nil), c.order[drop:]...)
		c.evictions += uint64(drop)
	}

	c.entries[key] = value
	c.order = append(c.order, key)
}

// Len returns the number of cached entries
func (c *ScalarCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries and resets counters
func (c *ScalarCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]float64)
	c.order = nil
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// Stats returns current usage counters
func (c *ScalarCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Entries:   len(c.entries),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}
