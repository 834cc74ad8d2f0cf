// Package cache provides the in-process identity cache used by gateway
// deployments to avoid a backend round trip on every guarded request.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tutorlink/authgate/core"
)

// Config configures cache behavior.
type Config struct {
	TTL     time.Duration
	MaxSize int
}

// Stats are simple counters for cache behavior, intended for diagnostics
// and monitoring.
type Stats struct {
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	Sets      int64         `json:"sets"`
	Deletes   int64         `json:"deletes"`
	Evictions int64         `json:"evictions"`
	Size      int           `json:"size"`
	TTL       time.Duration `json:"ttl"`
}

// InMemory caches identities by token hash with a TTL and a hard size
// cap. Entries past their TTL count as misses and are dropped lazily.
type InMemory struct {
	mu      sync.Mutex
	entries map[string]*cachedRecord
	ttl     time.Duration
	maxSize int

	// counters
	hits      int64
	misses    int64
	sets      int64
	deletes   int64
	evictions int64
}

type cachedRecord struct {
	identity *core.Identity
	cachedAt time.Time
}

var _ core.IdentityCache = (*InMemory)(nil)

// NewInMemory creates a new in-memory identity cache.
func NewInMemory(c Config) *InMemory {
	if c.TTL == 0 {
		c.TTL = 5 * time.Minute
	}
	if c.MaxSize == 0 {
		c.MaxSize = 500
	}

	return &InMemory{
		entries: make(map[string]*cachedRecord),
		ttl:     c.TTL,
		maxSize: c.MaxSize,
	}
}

// Get retrieves a cached identity by token hash.
func (c *InMemory) Get(_ context.Context, tokenHash string) (*core.Identity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, exists := c.entries[tokenHash]
	if !exists {
		atomic.AddInt64(&c.misses, 1)
		return nil, core.ErrCacheMiss
	}

	if time.Since(record.cachedAt) > c.ttl {
		delete(c.entries, tokenHash)
		atomic.AddInt64(&c.misses, 1)
		return nil, core.ErrCacheMiss
	}

	atomic.AddInt64(&c.hits, 1)
	return record.identity, nil
}

// Set stores an identity under its token hash.
func (c *InMemory) Set(_ context.Context, tokenHash string, identity *core.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Simple eviction if full
	if len(c.entries) >= c.maxSize {
		for k := range c.entries {
			delete(c.entries, k)
			atomic.AddInt64(&c.evictions, 1)
			break
		}
	}

	c.entries[tokenHash] = &cachedRecord{
		identity: identity,
		cachedAt: time.Now(),
	}

	atomic.AddInt64(&c.sets, 1)
	return nil
}

// Delete removes the entry for a token hash, if present.
func (c *InMemory) Delete(_ context.Context, tokenHash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, existed := c.entries[tokenHash]; existed {
		delete(c.entries, tokenHash)
		atomic.AddInt64(&c.deletes, 1)
	}
	return nil
}

// Len returns the number of live entries.
func (c *InMemory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *InMemory) Stats() Stats {
	return Stats{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Sets:      atomic.LoadInt64(&c.sets),
		Deletes:   atomic.LoadInt64(&c.deletes),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      c.Len(),
		TTL:       c.ttl,
	}
}
