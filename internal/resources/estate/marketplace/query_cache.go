package marketplace

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

const (
	KeyProperties = "properties"
	KeyCounter    = "counter"
	KeyOwner      = "owner"
)

func PropertyKey(id *big.Int) string {
	return "property/" + id.String()
}

func BidsKey(id *big.Int) string {
	return "bids/" + id.String()
}

func InspectorKey(addr common.Address) string {
	return "inspector/" + addr.Hex()
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// QueryCache keeps results of contract reads. Concurrent misses on the same key
// share one fetch. Any invalidation bumps the epoch so that fetches started
// before it do not store stale results
type QueryCache struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
	epoch   uint64

	group  singleflight.Group
	hits   atomic.Uint64
	misses atomic.Uint64

	now func() time.Time
}

func NewQueryCache(ttl time.Duration) *QueryCache {
	return &QueryCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached value or calls fetch. Returned values are shared and must be treated as read-only
func (c *QueryCache) Get(ctx context.Context, key string, fetch func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	epoch := c.epoch
	c.mu.RUnlock()

	if ok && c.now().Before(entry.expiresAt) {
		c.hits.Inc()
		return entry.value, nil
	}
	c.misses.Inc()

	value, err, _ := c.group.Do(fmt.Sprintf("%s@%d", key, epoch), func() (interface{}, error) {
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.epoch == epoch {
			c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(c.ttl)}
		}
		c.mu.Unlock()

		return value, nil
	})
	return value, err
}

func (c *QueryCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
	}
	c.epoch++
}

// InvalidateAll drops every entry, used when events may have been missed
func (c *QueryCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
	c.epoch++
}

func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *QueryCache) Stats() (hits uint64, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Fetch is a typed wrapper around QueryCache.Get
func Fetch[T any](ctx context.Context, c *QueryCache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	value, err := c.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}
