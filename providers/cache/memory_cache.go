package cache

import (
	"context"
	"sync"
	"time"
)

// GenericCacheInterface defines generic cache operations
type GenericCacheInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
	RemoveExpired(ctx context.Context) int
}

type cacheEntry struct {
	Data      []byte
	ExpiresAt time.Time
}

// MemoryCache is an in-process TTL cache. It enforces no upper bound on the
// number of entries; growth is kept in check only by TTL expiry and the
// periodic RemoveExpired sweep.
//
// Fetch on a cold key does not coalesce concurrent callers: two goroutines
// racing on the same missing key will both run their producer. Producers
// here are idempotent reads (directory listings, image encodes), so the
// duplicated work is wasted, not wrong.
type MemoryCache struct {
	data  map[string]cacheEntry
	mutex sync.RWMutex
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]cacheEntry),
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mutex.RLock()
	entry, exists := c.data[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		// Lazy removal; the entry is logically absent already.
		c.mutex.Lock()
		if current, ok := c.data[key]; ok && current.ExpiresAt.Equal(entry.ExpiresAt) {
			delete(c.data, key)
		}
		c.mutex.Unlock()
		return nil, false
	}

	return entry.Data, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if value == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func (c *MemoryCache) Delete(ctx context.Context, key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

func (c *MemoryCache) Clear(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]cacheEntry)
}

// RemoveExpired scans all entries and drops the expired ones. Intended to be
// driven by the scheduler on a recurring interval, not by request handlers.
func (c *MemoryCache) RemoveExpired(ctx context.Context) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.data {
		if now.After(entry.ExpiresAt) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of physically stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.data)
}
