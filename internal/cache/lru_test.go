// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package cache

import (
	"testing"
	"time"
)

func TestLRUCacheBasicOperations(t *testing.T) {
	c := NewLRUCache(4, 0)

	c.Add("a", 1)
	c.Add("b", 2)

	v, ok := c.Get("a")
	if !ok || v.(int) != 1 {
		t.Errorf("Get(a) = (%v, %v), want (1, true)", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}
	if !c.Contains("b") {
		t.Error("Contains(b) = false, want true")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("Remove(a) twice = true, want false")
	}
}

func TestLRUCacheEvictionOrder(t *testing.T) {
	c := NewLRUCache(2, 0)

	c.Add("a", 1)
	c.Add("b", 2)
	// Touch "a" so "b" becomes least recently used.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) missed")
	}
	c.Add("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry b survived eviction")
	}
	if !c.Contains("a") || !c.Contains("c") {
		t.Error("expected entries a and c to survive")
	}
}

func TestLRUCacheUpdateExisting(t *testing.T) {
	c := NewLRUCache(2, 0)

	c.Add("a", 1)
	c.Add("a", 2)
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after update", c.Len())
	}
	v, _ := c.Get("a")
	if v.(int) != 2 {
		t.Errorf("Get(a) = %v, want 2", v)
	}
}

func TestLRUCacheTTLExpiry(t *testing.T) {
	c := NewLRUCache(4, 10*time.Millisecond)

	c.Add("a", 1)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("entry expired immediately")
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived past its TTL")
	}
}

func TestLRUCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewLRUCache(4, 0)

	c.Add("a", 1)
	time.Sleep(15 * time.Millisecond)
	if _, ok := c.Get("a"); !ok {
		t.Error("entry with zero TTL expired")
	}
}

func TestLRUCacheStats(t *testing.T) {
	c := NewLRUCache(4, 0)

	c.Add("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	hits, misses, size := c.Stats()
	if hits != 2 || misses != 1 || size != 1 {
		t.Errorf("Stats() = (%d, %d, %d), want (2, 1, 1)", hits, misses, size)
	}
}

func TestLRUCacheClear(t *testing.T) {
	c := NewLRUCache(4, 0)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	// The list must still be usable after Clear.
	c.Add("c", 3)
	if !c.Contains("c") {
		t.Error("Add after Clear failed")
	}
}
