package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache memoizes annotations for the lifetime of one process. It
// fronts the disk layer so a sentence that repeats across input files
// is deserialized at most once per run.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a memory cache. A non-positive cleanup
// interval falls back to the default TTL, which keeps expired
// annotations from lingering when callers only configure one knob.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultTTL
	}
	return &MemoryCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves an annotation by key
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	if !ok {
		c.store.Delete(key)
		return nil, false
	}
	return data, true
}

// Set stores an annotation with the given TTL
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.store.Set(key, value, ttl)
	return nil
}

// Delete removes an annotation by key
func (c *MemoryCache) Delete(key string) error {
	c.store.Delete(key)
	return nil
}

// Clear drops every annotation held in memory
func (c *MemoryCache) Clear() error {
	c.store.Flush()
	return nil
}
