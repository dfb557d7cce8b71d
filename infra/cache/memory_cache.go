package cache

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/quotly/quotly/pkg/cache"
	"github.com/quotly/quotly/pkg/domain"
	"github.com/quotly/quotly/pkg/registry"
)

// DefaultTTL is how long a cached rate is served as fresh.
const DefaultTTL = 30 * time.Minute

// MemoryCache implements cache.RateCache with process-lifetime, in-memory
// storage. Entries are never deleted; they age out by TTL comparison at read
// time, and stale entries stay retrievable for degraded-mode fallback.
type MemoryCache struct {
	entries map[string]*cache.Entry
	ttl     time.Duration
	mu      sync.RWMutex
	now     func() time.Time
}

// NewMemoryCache creates a memory cache with the given TTL. A zero ttl falls
// back to DefaultTTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		entries: make(map[string]*cache.Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the entry for the pair, nil if absent, and nil for an expired
// entry unless allowExpired is set.
func (c *MemoryCache) Get(source, target string, allowExpired bool) *cache.Entry {
	key := pairKey(source, target)

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil
	}
	if c.now().After(entry.ExpiresAt) && !allowExpired {
		return nil
	}

	cp := *entry
	return &cp
}

// Put writes the direct entry and its inverse under a single lock
// acquisition, so readers never observe one without the other. Rates that
// have no reciprocal (zero, non-finite) are rejected.
func (c *MemoryCache) Put(source, target string, rate float64, quote domain.RateQuote) error {
	if rate == 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("refusing to cache rate %v for %s/%s: %w", rate, source, target, domain.ErrInvalidRate)
	}

	now := c.now()
	expires := now.Add(c.ttl)

	inverse := quote
	inverse.Source, inverse.Target = quote.Target, quote.Source
	inverse.Rate = 1 / rate
	inverse.IsInverse = true

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[pairKey(source, target)] = &cache.Entry{
		Rate:      rate,
		Quote:     quote,
		CreatedAt: now,
		ExpiresAt: expires,
	}
	c.entries[pairKey(target, source)] = &cache.Entry{
		Rate:      1 / rate,
		Quote:     inverse,
		CreatedAt: now,
		ExpiresAt: expires,
	}
	return nil
}

func pairKey(source, target string) string {
	return registry.Normalize(source) + "_" + registry.Normalize(target)
}
