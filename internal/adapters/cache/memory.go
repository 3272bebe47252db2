package cache

import (
	"context"
	"sync"

	"conferencecentral/internal/domain"
)

// memoryCache is a process-local domain.Cache. Entries survive until
// deleted or the process exits; that matches the contract, which allows
// eviction at any time.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[domain.CacheKey][]byte
}

func NewMemoryCache() domain.Cache {
	return &memoryCache{
		entries: make(map[domain.CacheKey][]byte),
	}
}

func (c *memoryCache) Get(ctx context.Context, key domain.CacheKey) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate the stored entry.
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (c *memoryCache) Set(ctx context.Context, key domain.CacheKey, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = stored
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key domain.CacheKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
