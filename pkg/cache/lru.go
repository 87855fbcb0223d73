// Package cache provides a small bounded LRU used to memoize upstream
// lookups. Entries are evicted by capacity; expiry is optional and off
// by default, so a cached result can be served until it is pushed out.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// DefaultCapacity matches the memoization bound of the upstream lookups.
const DefaultCapacity = 100

type entry[V any] struct {
	key      string
	value    V
	storedAt time.Time
}

// LRU is a capacity-bounded least-recently-used cache, safe for
// concurrent use. A ttl of zero disables time-based expiry.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	ll       *list.List
	items    map[string]*list.Element
}

// NewLRU creates an LRU holding at most capacity entries. Non-positive
// capacities fall back to DefaultCapacity.
func NewLRU[V any](capacity int, ttl time.Duration) *LRU[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached value for key and promotes it to most recently
// used. Expired entries are dropped and reported as misses.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		return zero, false
	}

	ent := el.Value.(*entry[V])
	if c.ttl > 0 && time.Since(ent.storedAt) > c.ttl {
		c.ll.Remove(el)
		delete(c.items, key)
		return zero, false
	}

	c.ll.MoveToFront(el)
	return ent.value, true
}

// Add stores value under key, replacing any existing entry and evicting
// the least recently used entry on capacity overflow.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		ent := el.Value.(*entry[V])
		ent.value = value
		ent.storedAt = time.Now()
		c.ll.MoveToFront(el)
		return
	}

	el := c.ll.PushFront(&entry[V]{key: key, value: value, storedAt: time.Now()})
	c.items[key] = el

	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.items, oldest.Value.(*entry[V]).key)
		}
	}
}

// Len reports the number of live entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
