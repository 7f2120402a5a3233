// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

// Package cache provides the in-memory result cache for finished discovery
// batches. Entries are keyed by normalized filter criteria, expire after a
// TTL, and the cache holds a bounded number of entries with oldest-first
// eviction once the cap is reached.
package cache

import (
	"sync"
	"time"

	"github.com/reelmatch/reelmatch/internal/metrics"
	"github.com/reelmatch/reelmatch/internal/models"
)

// entry is one cached batch with its expiry deadline.
type entry struct {
	batch     *models.Batch
	expiresAt time.Time
}

// Cache is a thread-safe TTL cache for discovery batches.
//
// Expired entries are dropped lazily on Get and in bulk by Sweep; the
// background sweeper service calls Sweep on an interval. When a Set would
// exceed the configured capacity, the entry that was inserted earliest is
// evicted first, regardless of how recently it was read.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry

	// order holds keys in insertion order; order[0] is evicted first.
	// Overwriting a key moves it to the back.
	order []string

	ttl        time.Duration
	maxEntries int

	stats Stats

	// now is the clock; replaced in tests.
	now func() time.Time
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
}

// New creates a cache with the given TTL and capacity.
func New(ttl time.Duration, maxEntries int) *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached batch for key, or (nil, false) when the key is
// absent or its entry has expired. Expired entries are removed on access.
// Returned candidate slices are copies; callers may mutate them freely.
func (c *Cache) Get(key string) (*models.Batch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, exists := c.entries[key]
	if !exists {
		c.stats.Misses++
		metrics.CacheMisses.Inc()
		return nil, false
	}

	if c.now().After(e.expiresAt) {
		c.remove(key)
		c.stats.Misses++
		c.stats.Evictions++
		metrics.CacheMisses.Inc()
		metrics.CacheEvictions.WithLabelValues("expired").Inc()
		return nil, false
	}

	c.stats.Hits++
	metrics.CacheHits.Inc()

	batch := *e.batch
	batch.Candidates = models.CloneCandidates(e.batch.Candidates)
	return &batch, true
}

// Set stores a batch under key with the cache's TTL. The stored copy is
// detached from the caller's slice. If the cache is at capacity the oldest
// inserted entry is evicted first.
func (c *Cache) Set(key string, batch *models.Batch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *batch
	stored.Candidates = models.CloneCandidates(batch.Candidates)

	if _, exists := c.entries[key]; exists {
		c.removeFromOrder(key)
	} else if len(c.entries) >= c.maxEntries {
		oldest := c.order[0]
		c.remove(oldest)
		c.stats.Evictions++
		metrics.CacheEvictions.WithLabelValues("capacity").Inc()
	}

	c.entries[key] = entry{batch: &stored, expiresAt: c.now().Add(c.ttl)}
	c.order = append(c.order, key)
	metrics.CacheSize.Set(float64(len(c.entries)))
}

// Delete removes the entry for key, if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		return
	}
	c.remove(key)
	c.stats.Evictions++
	metrics.CacheEvictions.WithLabelValues("capacity").Inc()
	metrics.CacheSize.Set(float64(len(c.entries)))
}

// Sweep removes all expired entries and returns how many were dropped.
// Called periodically by the sweeper service.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			c.remove(key)
			removed++
		}
	}

	if removed > 0 {
		c.stats.Evictions += int64(removed)
		metrics.CacheEvictions.WithLabelValues("expired").Add(float64(removed))
		metrics.CacheSize.Set(float64(len(c.entries)))
	}
	return removed
}

// Len returns the current number of entries, including any not yet swept.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetStats returns a snapshot of cache counters.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Entries = len(c.entries)
	return s
}

// remove deletes key from both the map and the order slice.
// Caller must hold mu.
func (c *Cache) remove(key string) {
	delete(c.entries, key)
	c.removeFromOrder(key)
}

// removeFromOrder drops key from the insertion-order slice.
// Caller must hold mu.
func (c *Cache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
