// ABOUTME: Exact-text caching decorator for the embedding gateway
// ABOUTME: Avoids re-embedding identical catalog text across sync runs
package embedding

import (
	"context"
	"sync"
)

// CachedGateway wraps a Gateway with an in-process cache keyed by exact
// text match. The cache is an optimization, not a correctness dependency:
// a cold cache only costs extra embed calls.
type CachedGateway struct {
	inner Gateway

	mu    sync.RWMutex
	cache map[string][]float64

	hits   int
	misses int
}

// NewCachedGateway wraps inner with an empty cache
func NewCachedGateway(inner Gateway) *CachedGateway {
	return &CachedGateway{
		inner: inner,
		cache: make(map[string][]float64),
	}
}

// Dimension returns the inner gateway's dimension
func (c *CachedGateway) Dimension() int {
	return c.inner.Dimension()
}

// Embed serves cached vectors where possible and forwards only the missing
// texts to the inner gateway, preserving input order in the result.
func (c *CachedGateway) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	result := make([][]float64, len(texts))
	var missing []string
	var missingIdx []int

	c.mu.RLock()
	for i, text := range texts {
		if vec, ok := c.cache[text]; ok {
			// Callers get their own copy so mutating a result cannot
			// poison later cache hits
			result[i] = append([]float64(nil), vec...)
		} else {
			missing = append(missing, text)
			missingIdx = append(missingIdx, i)
		}
	}
	c.mu.RUnlock()

	c.mu.Lock()
	c.hits += len(texts) - len(missing)
	c.misses += len(missing)
	c.mu.Unlock()

	if len(missing) == 0 {
		return result, nil
	}

	vectors, err := c.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for i, vec := range vectors {
		c.cache[missing[i]] = append([]float64(nil), vec...)
		result[missingIdx[i]] = vec
	}
	c.mu.Unlock()

	return result, nil
}

// Stats returns cumulative cache hits and misses
func (c *CachedGateway) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
