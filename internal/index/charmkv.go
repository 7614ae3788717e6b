// ABOUTME: Charm-KV-backed vector index with cosine similarity scan
// ABOUTME: Stores IndexEntry JSON under a key prefix for cloud-synced storage
package index

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/barback/cocktail-rag/internal/charm"
	"github.com/barback/cocktail-rag/internal/models"
)

// CharmIndex is a Gateway backed by Charm KV. Each cocktail id maps to
// exactly one key, so upsert-by-key gives the one-entry-per-id invariant
// for free.
type CharmIndex struct {
	client    *charm.Client
	dimension int
}

// NewCharmIndex creates an index over the given charm client with a fixed
// dimension
func NewCharmIndex(client *charm.Client, dimension int) (*CharmIndex, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("index dimension must be positive, got %d", dimension)
	}
	return &CharmIndex{client: client, dimension: dimension}, nil
}

// Upsert inserts or replaces entries. Vectors are validated up front so a
// mismatch performs no writes at all.
func (c *CharmIndex) Upsert(ctx context.Context, entries []models.IndexEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, e := range entries {
		if len(e.Vector) != c.dimension {
			return fmt.Errorf("%w: expected %d, got %d for id %s", ErrDimensionMismatch, c.dimension, len(e.Vector), e.CocktailID)
		}
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.client.SetJSON(charm.EntryKey(e.CocktailID), e); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return nil
}

// Query scans all stored entries and returns the topK nearest by cosine
// similarity, descending, ties broken by ascending cocktail id.
func (c *CharmIndex) Query(ctx context.Context, vector []float64, topK int, filter Filter) (models.RetrievalResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(vector) != c.dimension {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, c.dimension, len(vector))
	}
	if topK <= 0 {
		return nil, nil
	}

	keys, err := c.client.ListKeys(charm.EntryPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	matches := make(models.RetrievalResult, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var e models.IndexEntry
		if err := c.client.GetJSON(key, &e); err != nil {
			// A single unreadable entry does not fail the query
			log.Printf("Warning: skipping unreadable index entry %s: %v", key, err)
			continue
		}
		if filter != nil && !filter(e.Metadata) {
			continue
		}
		matches = append(matches, models.Match{
			CocktailID: e.CocktailID,
			Score:      cosineSimilarity(vector, e.Vector),
			Metadata:   e.Metadata,
		})
	}

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
func (c *CharmIndex) Delete(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.client.Delete(charm.EntryKey(id)); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return nil
}

// List returns content hashes keyed by cocktail id
func (c *CharmIndex) List(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keys, err := c.client.ListKeys(charm.EntryPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	out := make(map[string]string, len(keys))
	for _, key := range keys {
		var e models.IndexEntry
		if err := c.client.GetJSON(key, &e); err != nil {
			// Treat unreadable entries as stale so the next sync rewrites them
			out[strings.TrimPrefix(key, charm.EntryPrefix)] = ""
			continue
		}
		out[e.CocktailID] = e.Metadata.ContentHash
	}
	return out, nil
}

// Count returns the number of stored entries
func (c *CharmIndex) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	keys, err := c.client.ListKeys(charm.EntryPrefix)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return len(keys), nil
}
