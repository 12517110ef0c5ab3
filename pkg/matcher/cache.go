package matcher

import (
	"fmt"
	"io"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedEngine memoises compiled patterns of another Engine in an LRU cache.
// Compile errors are not cached. Evicted patterns that hold native resources
// (io.Closer) are closed.
//
// CachedEngine is safe for concurrent use.
type CachedEngine struct {
	inner    Engine
	patterns *lru.Cache[string, Pattern]
	hits     atomic.Int64
	misses   atomic.Int64
}

// NewCache wraps inner with an LRU cache holding up to size patterns.
func NewCache(inner Engine, size int) (*CachedEngine, error) {
	patterns, err := lru.NewWithEvict[string, Pattern](size, func(_ string, p Pattern) {
		if c, ok := p.(io.Closer); ok {
			_ = c.Close()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("creating pattern cache: %w", err)
	}
	return &CachedEngine{inner: inner, patterns: patterns}, nil
}

// Name implements Engine.
func (c *CachedEngine) Name() string {
	return c.inner.Name()
}

// Unwrap returns the engine doing the compiling.
func (c *CachedEngine) Unwrap() Engine {
	return c.inner
}

// Compile implements Engine.
func (c *CachedEngine) Compile(pattern string) (Pattern, error) {
	if p, ok := c.patterns.Get(pattern); ok {
		c.hits.Add(1)
		return p, nil
	}
	c.misses.Add(1)

	p, err := c.inner.Compile(pattern)
	if err != nil {
		return nil, err
	}
	c.patterns.Add(pattern, p)
	return p, nil
}

// CacheStats summarises cache effectiveness.
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int
}

// Stats returns current hit/miss counters and the number of cached patterns.
func (c *CachedEngine) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.patterns.Len(),
	}
}

// Purge drops every cached pattern, closing those that hold resources.
func (c *CachedEngine) Purge() {
	c.patterns.Purge()
}
