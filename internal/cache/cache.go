// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/filmoteca/internal/metrics"
)

const cleanupInterval = 5 * time.Minute

type entry struct {
	value     interface{}
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Stats is a point-in-time view of a cache's counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxEntries bounds the number of stored keys. When a new key arrives
// at capacity, expired entries are swept first and then the entry closest
// to expiry is dropped. Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(c *Cache) { c.maxEntries = n }
}

// Cache is a concurrency-safe TTL map. Named caches report hits and
// misses to cache_hits_total and cache_misses_total.
type Cache struct {
	name       string
	ttl        time.Duration
	maxEntries int

	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group

	hits, misses, evictions atomic.Int64
	lastCleanup             atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates an unnamed cache whose entries live for ttl.
func New(ttl time.Duration, opts ...Option) *Cache {
	return NewNamed("", ttl, opts...)
}

// NewNamed creates a cache that reports to Prometheus under name; an empty
// name reports nothing. The sweeper goroutine runs until Close.
//
//	c := cache.NewNamed("queries", 5*time.Minute)
//	defer c.Close()
func NewNamed(name string, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		name:    name,
		ttl:     ttl,
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastCleanup.Store(time.Now().UnixNano())

	go c.sweepLoop()
	return c
}

func (c *Cache) Name() string       { return c.name }
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the live value for key. An expired entry is removed and
// reported as a miss.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && !e.expired(time.Now()) {
		c.hit()
		return e.value, true
	}

	if ok {
		c.mu.Lock()
		// A concurrent Set may have refreshed the entry.
		if cur, still := c.entries[key]; still && cur.expired(time.Now()) {
			delete(c.entries, key)
			c.evictions.Add(1)
		}
		c.mu.Unlock()
	}
	c.miss()
	return nil, false
}

// Set stores value under key with the cache's TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.makeRoomLocked(now)
	}
	c.entries[key] = entry{value: value, expiresAt: now.Add(ttl)}
}

// makeRoomLocked frees at least one slot. c.mu must be held.
func (c *Cache) makeRoomLocked(now time.Time) {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			c.evictions.Add(1)
			continue
		}
		if oldestKey == "" || e.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt = k, e.expiresAt
		}
	}
	if len(c.entries) >= c.maxEntries && oldestKey != "" {
		delete(c.entries, oldestKey)
		c.evictions.Add(1)
	}
}

// GetOrLoad returns the cached value for key or stores the result of load.
// Concurrent misses on one key share a single load, and errors are handed
// to every waiter without being cached.
func (c *Cache) GetOrLoad(key string, load func() (interface{}, error)) (interface{}, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		e, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && !e.expired(time.Now()) {
			return e.value, nil
		}

		value, err := load()
		if err != nil {
			return nil, err
		}
		c.Set(key, value)
		return value, nil
	})
	return v, err
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.evictions.Add(1)
	}
	c.mu.Unlock()
}

// Clear drops every entry. Used when the underlying data changes.
func (c *Cache) Clear() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	c.evictions.Add(int64(n))
}

// Len counts stored entries, expired ones included until swept.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) GetStats() Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		TotalKeys:   int64(c.Len()),
		LastCleanup: time.Unix(0, c.lastCleanup.Load()),
	}
}

// HitRate returns hits as a percentage of lookups, or 0 before any lookup.
func (c *Cache) HitRate() float64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) * 100 / float64(hits+misses)
}

// Close stops the sweeper. Calling it again is a no-op.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *Cache) cleanup() {
	now := time.Now()

	c.mu.Lock()
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			c.evictions.Add(1)
		}
	}
	c.mu.Unlock()

	c.lastCleanup.Store(now.UnixNano())
}

func (c *Cache) hit() {
	c.hits.Add(1)
	if c.name != "" {
		metrics.RecordCacheAccess(c.name, true)
	}
}

func (c *Cache) miss() {
	c.misses.Add(1)
	if c.name != "" {
		metrics.RecordCacheAccess(c.name, false)
	}
}

// GenerateKey derives a stable key from an operation name and its
// parameters. Parameters that cannot be marshaled fall back to %v.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}
	sum := sha256.Sum256(data)
	return method + ":" + hex.EncodeToString(sum[:16])
}
