package filter

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// CacheKey identifies a cached result by expression and image size only.
// Two images with the same expression and dimensions share one entry
// regardless of their pixels.
type CacheKey struct {
	Expression string
	Width      int
	Height     int
}

// String renders the key as "expression_WxH".
func (k CacheKey) String() string {
	return fmt.Sprintf("%s_%dx%d", k.Expression, k.Width, k.Height)
}

// CacheStats is a snapshot of cache activity.
type CacheStats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// Cache memoizes filtered rasters per CacheKey.
//
// Cache is safe for concurrent use. Concurrent GetOrCompute calls for the
// same key are collapsed into a single computation whose result every caller
// receives; calls for different keys do not wait on each other.
//
// # Memory Management
//
// Entries are never evicted. The cache grows with the number of distinct
// (expression, width, height) combinations seen during the process lifetime.
type Cache struct {
	mu      sync.RWMutex
	entries map[CacheKey]*Raster
	flight  singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[CacheKey]*Raster),
	}
}

// GetOrCompute returns the raster stored for key, calling compute to produce
// it on a miss.
//
// compute runs at most once per key: concurrent callers wait for the running
// computation and share its result. Only successful results are stored; when
// compute fails, every waiting caller gets the error and the next call
// retries.
func (c *Cache) GetOrCompute(key CacheKey, compute func() (*Raster, error)) (*Raster, error) {
	if img, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return img, nil
	}

	v, err, _ := c.flight.Do(key.String(), func() (interface{}, error) {
		// A flight for this key may have finished between lookup and Do.
		if img, ok := c.lookup(key); ok {
			c.hits.Add(1)
			return img, nil
		}
		c.misses.Add(1)

		img, err := compute()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = img
		c.mu.Unlock()
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Raster), nil
}

// Get returns the cached raster for key without computing anything.
func (c *Cache) Get(key CacheKey) (*Raster, bool) {
	return c.lookup(key)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the current entry count and hit/miss counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

func (c *Cache) lookup(key CacheKey) (*Raster, bool) {
	c.mu.RLock()
	img, ok := c.entries[key]
	c.mu.RUnlock()
	return img, ok
}
