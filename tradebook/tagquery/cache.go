package tagquery

import (
	arc "github.com/hashicorp/golang-lru/arc/v2"
)

// DefaultCacheSize is the entry capacity used when NewCache is given a
// non-positive size.
const DefaultCacheSize = 256

type cacheKey struct {
	query   string
	version uint64
}

// Cache memoizes search results keyed on (query, collection version). The
// engine itself is stateless; the caller owns the cache, bumps the version
// on every record-collection mutation, and may clear it explicitly. A
// stale version can never be served because it is part of the key.
//
// A nil *Cache is valid and caches nothing.
type Cache struct {
	arc *arc.ARCCache[cacheKey, SearchResult]
}

// NewCache creates a cache holding up to size results.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	a, err := arc.NewARC[cacheKey, SearchResult](size)
	if err != nil {
		return nil, err
	}
	return &Cache{arc: a}, nil
}

// Get returns the cached result for the query at the given collection
// version.
func (c *Cache) Get(query string, version uint64) (SearchResult, bool) {
	if c == nil {
		return SearchResult{}, false
	}
	return c.arc.Get(cacheKey{query: query, version: version})
}

// Put stores a result for the query at the given collection version.
func (c *Cache) Put(query string, version uint64, res SearchResult) {
	if c == nil {
		return
	}
	c.arc.Add(cacheKey{query: query, version: version}, res)
}

// Purge drops every cached result.
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.arc.Purge()
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.arc.Len()
}
