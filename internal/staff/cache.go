package staff

import (
	"context"
	"sync"
)

// Cache memoizes resolutions keyed by identifier alias. Owned by the
// composition root and injected into the Resolver so tests can clear and
// inspect it; entries have no TTL and are never invalidated on profile
// mutation elsewhere.
type Cache interface {
	Get(ctx context.Context, key string) (Resolution, bool)
	Set(ctx context.Context, key string, res Resolution)
	Clear(ctx context.Context)
}

// MemoryCache is the default process-wide in-memory cache. Last writer wins
// on concurrent population; all writers for the same identifier converge on
// the same values.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Resolution
}

var _ Cache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Resolution)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (Resolution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[key]
	return res, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, res Resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = res
}

func (c *MemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Resolution)
}

// Len reports the number of cached aliases.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
