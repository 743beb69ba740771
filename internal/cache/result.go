// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package cache

import (
	"crypto/sha256"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

// Stats reports hit/miss counters and the current entry count.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// ResultCache memoizes expensive computations with at-most-once
// semantics per key: concurrent callers for the same key await the
// first computation's result instead of duplicating work. Completed
// results are retained in a bounded LRU.
//
// Errors are never cached; a failed computation leaves no entry
// behind, so a later call retries.
type ResultCache struct {
	lru   *LRUCache
	group singleflight.Group
}

// NewResultCache creates a ResultCache bounded to capacity entries.
// A non-positive TTL keeps entries until capacity eviction or Clear,
// which is the normal mode: keys embed a catalog fingerprint, so a
// reload invalidates entries by never requesting their keys again.
func NewResultCache(capacity int, ttl time.Duration) *ResultCache {
	return &ResultCache{lru: NewLRUCache(capacity, ttl)}
}

// GetOrCompute returns the cached value for key, computing it with
// compute on a miss. At most one compute runs concurrently per key.
func (rc *ResultCache) GetOrCompute(key string, compute func() (any, error)) (any, error) {
	if v, ok := rc.lru.Get(key); ok {
		return v, nil
	}

	v, err, _ := rc.group.Do(key, func() (any, error) {
		// A concurrent flight may have stored the value between our
		// miss and joining the group.
		if v, ok := rc.lru.Get(key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		rc.lru.Add(key, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Get returns the cached value for key without computing.
func (rc *ResultCache) Get(key string) (any, bool) {
	return rc.lru.Get(key)
}

// Clear drops all retained entries. In-flight computations are not
// interrupted; their results are stored under their original keys.
func (rc *ResultCache) Clear() {
	rc.lru.Clear()
}

// Len returns the number of retained entries.
func (rc *ResultCache) Len() int { return rc.lru.Len() }

// Stats returns hit/miss counters and the current size.
func (rc *ResultCache) Stats() Stats {
	hits, misses, size := rc.lru.Stats()
	return Stats{Hits: hits, Misses: misses, Size: size}
}

// Fingerprint creates a deterministic cache key from the given parts.
// Parts are serialized to JSON and hashed; avoid maps in parts since
// their serialization order is not guaranteed.
func Fingerprint(scope string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// Fallback to simple string key
		return fmt.Sprintf("%s:%v", scope, parts)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", scope, hash[:16])
}
