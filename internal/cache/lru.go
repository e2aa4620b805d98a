// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package cache provides a thread-safe LRU cache with TTL support, used by
// the recommendation engine to memoize query results. The engine is
// immutable once built, so cached entries never go stale within one
// engine's lifetime; the TTL is a capacity safety net, not an invalidation
// mechanism.
package cache

import (
	"sync"
	"time"
)

// entry is a node in the doubly-linked recency list.
type entry[V any] struct {
	key       string
	value     V
	prev      *entry[V]
	next      *entry[V]
	expiresAt time.Time
}

// LRU is a thread-safe least-recently-used cache with per-entry TTL.
// Get, Add and Remove are O(1): a hashmap provides lookup and a
// doubly-linked list with sentinel head/tail provides recency ordering.
type LRU[V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	items    map[string]*entry[V]

	// head.next is most recently used, tail.prev least recently used.
	head *entry[V]
	tail *entry[V]

	hits   int64
	misses int64
}

// NewLRU creates an LRU cache. Non-positive capacity defaults to 1024,
// non-positive ttl to one hour.
func NewLRU[V any](capacity int, ttl time.Duration) *LRU[V] {
	if capacity <= 0 {
		capacity = 1024
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V], capacity),
		head:     &entry[V]{},
		tail:     &entry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the cached value for key. Expired entries are removed
// lazily; found entries become most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeEntry(e)
		c.misses++
		return zero, false
	}

	c.moveToFront(e)
	c.hits++
	return e.value, true
}

// Add inserts or updates an entry, evicting the least recently used entry
// when over capacity.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(e)
	c.items[key] = e

	for len(c.items) > c.capacity {
		c.removeEntry(c.tail.prev)
	}
}

// Remove deletes an entry, reporting whether it was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeEntry(e)
	return true
}

// Len returns the number of entries, including any not yet lazily expired.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cumulative hit and miss counts.
func (c *LRU[V]) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// moveToFront marks an existing entry as most recently used.
func (c *LRU[V]) moveToFront(e *entry[V]) {
	c.unlink(e)
	c.addToFront(e)
}

func (c *LRU[V]) addToFront(e *entry[V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU[V]) unlink(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
}

func (c *LRU[V]) removeEntry(e *entry[V]) {
	c.unlink(e)
	delete(c.items, e.key)
}
