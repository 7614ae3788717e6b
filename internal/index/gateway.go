// ABOUTME: Vector index gateway contract for upsert, query and delete
// ABOUTME: Defines the interface, metadata filter and error taxonomy
package index

import (
	"context"
	"errors"

	"github.com/barback/cocktail-rag/internal/models"
)

// ErrUnavailable indicates a transport failure talking to the index.
// Retryable.
var ErrUnavailable = errors.New("vector index unavailable")

// ErrDimensionMismatch indicates a submitted vector's length differs from
// the index's configured dimension. The dimension is fixed at creation and
// never changes; this is a misconfiguration, never retried.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Filter is an optional predicate over entry metadata applied during query
type Filter func(models.Metadata) bool

// Gateway owns vector storage keyed by cocktail id. Upsert semantics: at
// most one entry per id, re-upserting replaces vector and metadata
// entirely.
type Gateway interface {
	// Upsert inserts or replaces the given entries.
	Upsert(ctx context.Context, entries []models.IndexEntry) error
	// Query returns the topK nearest entries by cosine similarity,
	// descending, ties broken by ascending cocktail id. A nil filter
	// matches everything.
	Query(ctx context.Context, vector []float64, topK int, filter Filter) (models.RetrievalResult, error)
	// Delete removes entries by id. Absent ids are a no-op.
	Delete(ctx context.Context, ids []string) error
	// List returns the content hash of every stored entry keyed by
	// cocktail id, so the synchronizer can skip unchanged entries and
	// find orphans.
	List(ctx context.Context) (map[string]string, error)
	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)
}
