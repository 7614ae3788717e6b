// ABOUTME: In-memory vector index with brute-force cosine similarity
// ABOUTME: Used for local development and as the reference implementation
package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/barback/cocktail-rag/internal/models"
)

// MemoryIndex is a process-local Gateway implementation. The dimension is
// fixed at construction and every vector is validated against it.
type MemoryIndex struct {
	dimension int

	mu      sync.RWMutex
	entries map[string]models.IndexEntry
}

// NewMemoryIndex creates an empty index with the given fixed dimension
func NewMemoryIndex(dimension int) (*MemoryIndex, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("index dimension must be positive, got %d", dimension)
	}
	return &MemoryIndex{
		dimension: dimension,
		entries:   make(map[string]models.IndexEntry),
	}, nil
}

// Upsert inserts or replaces entries. All vectors are validated before any
// mutation so a dimension mismatch leaves the index unchanged.
func (m *MemoryIndex) Upsert(ctx context.Context, entries []models.IndexEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, e := range entries {
		if len(e.Vector) != m.dimension {
			return fmt.Errorf("%w: expected %d, got %d for id %s", ErrDimensionMismatch, m.dimension, len(e.Vector), e.CocktailID)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		m.entries[e.CocktailID] = e
	}
	return nil
}

// Query returns the topK nearest entries by cosine similarity
func (m *MemoryIndex) Query(ctx context.Context, vector []float64, topK int, filter Filter) (models.RetrievalResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(vector) != m.dimension {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, m.dimension, len(vector))
	}
	if topK <= 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make(models.RetrievalResult, 0, len(m.entries))
	for _, e := range m.entries {
		if filter != nil && !filter(e.Metadata) {
			continue
		}
		matches = append(matches, models.Match{
			CocktailID: e.CocktailID,
			Score:      cosineSimilarity(vector, e.Vector),
			Metadata:   e.Metadata,
		})
	}

	// Descending score, ties broken by ascending id for determinism
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].CocktailID < matches[j].CocktailID
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Delete removes entries by id; absent ids are a no-op
func (m *MemoryIndex) Delete(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.entries, id)
	}
	return nil
}

// List returns content hashes keyed by cocktail id
func (m *MemoryIndex) List(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.entries))
	for id, e := range m.entries {
		out[id] = e.Metadata.ContentHash
	}
	return out, nil
}

// Count returns the number of stored entries
func (m *MemoryIndex) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
