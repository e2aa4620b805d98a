// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRUGetAdd(t *testing.T) {
	c := NewLRU[string](4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() on empty cache reported a hit")
	}

	c.Add("a", "alpha")
	got, ok := c.Get("a")
	if !ok || got != "alpha" {
		t.Errorf("Get(a) = %q, %v, want alpha, true", got, ok)
	}

	c.Add("a", "updated")
	if got, _ := c.Get("a"); got != "updated" {
		t.Errorf("Get(a) after update = %q, want updated", got)
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRU[int](3, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Add("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry b survived eviction")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("entry %s was evicted unexpectedly", key)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRU[int](4, 10*time.Millisecond)
	c.Add("a", 1)

	time.Sleep(25 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("expired entry was returned")
	}
}

func TestLRURemove(t *testing.T) {
	c := NewLRU[int](4, time.Minute)
	c.Add("a", 1)

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("removed entry still present")
	}
}

func TestLRUStats(t *testing.T) {
	c := NewLRU[int](4, time.Minute)
	c.Add("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	hits, misses := c.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses, want 2, 1", hits, misses)
	}
}

func TestLRUDefaults(t *testing.T) {
	c := NewLRU[int](0, 0)
	if c.capacity != 1024 {
		t.Errorf("capacity = %d, want default 1024", c.capacity)
	}
	if c.ttl != time.Hour {
		t.Errorf("ttl = %v, want default 1h", c.ttl)
	}
}

func TestLRUConcurrentAccess(t *testing.T) {
	c := NewLRU[int](64, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("%d", (g*7+i)%100)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if got := c.Len(); got > 64 {
		t.Errorf("Len() = %d exceeds capacity 64", got)
	}
}
