package resolver

import (
	"context"
	"time"

	"github.com/bluele/gcache"
)

// DefaultCacheSize bounds the number of cached partitions.
const DefaultCacheSize = 4096

// Cached memoizes another resolver's answers for a TTL. Lookup failures are
// not cached.
type Cached struct {
	next  Resolver
	cache gcache.Cache
}

// NewCached wraps next with an LRU cache. A ttl <= 0 keeps entries until
// evicted or invalidated.
func NewCached(next Resolver, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = DefaultCacheSize
	}
	b := gcache.New(size).LRU()
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &Cached{next: next, cache: b.Build()}
}

// Resolve returns the cached address or asks the wrapped resolver.
func (c *Cached) Resolve(ctx context.Context, tid, pid uint32) (string, error) {
	key := cacheKey(tid, pid)
	if v, err := c.cache.GetIFPresent(key); err == nil {
		return v.(string), nil
	}

	addr, err := c.next.Resolve(ctx, tid, pid)
	if err != nil {
		return "", err
	}
	_ = c.cache.Set(key, addr)
	return addr, nil
}

// Invalidate drops the cached address of one partition, e.g. after the
// tablet at that address became unreachable.
func (c *Cached) Invalidate(tid, pid uint32) {
	c.cache.Remove(cacheKey(tid, pid))
}

// Len returns the number of cached entries.
func (c *Cached) Len() int {
	return c.cache.Len(false)
}
