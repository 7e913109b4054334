package path

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of paths a Cache keeps by default.
const DefaultCacheSize = 1024

type cacheEntry struct {
	gen  uint64
	geom *GeometryPath
}

// Cache holds flattened geometry per path identity. An entry is valid only
// for the generation it was built from; editing a path makes the next
// lookup rebuild it.
//
// Cache is safe for concurrent use.
type Cache struct {
	lru       *lru.Cache[uint64, cacheEntry]
	tolerance float32

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache creates a cache of up to size paths flattened with tolerance.
// A non-positive size selects DefaultCacheSize.
func NewCache(size int, tolerance float32) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	l, err := lru.New[uint64, cacheEntry](size)
	if err != nil {
		// lru.New only fails for non-positive sizes
		panic(err)
	}
	return &Cache{lru: l, tolerance: tolerance}
}

// Geometry returns the flattened geometry of p, building and storing it when
// the cached entry is missing or stale. The result must not be modified.
func (c *Cache) Geometry(p *Path2D) *GeometryPath {
	if e, ok := c.lru.Get(p.ID()); ok && e.gen == p.Generation() {
		c.hits.Add(1)
		return e.geom
	}
	c.misses.Add(1)
	g := p.Flatten(c.tolerance)
	c.lru.Add(p.ID(), cacheEntry{gen: p.Generation(), geom: g})
	return g
}

// Get returns the cached geometry of p if it matches p's generation.
func (c *Cache) Get(p *Path2D) (*GeometryPath, bool) {
	e, ok := c.lru.Peek(p.ID())
	if !ok || e.gen != p.Generation() {
		return nil, false
	}
	return e.geom, true
}

// Invalidate drops the entry for the path with the given identity.
func (c *Cache) Invalidate(id uint64) {
	c.lru.Remove(id)
}

// Purge drops all entries.
func (c *Cache) Purge() {
	c.lru.Purge()
}

// CacheStats reports cache counters.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Stats returns the current counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.lru.Len(),
	}
}
