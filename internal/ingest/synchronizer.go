// ABOUTME: Index synchronizer reconciling the catalog with the vector index
// ABOUTME: Embeds changed entries, upserts them and deletes orphans
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/barback/cocktail-rag/internal/catalog"
	"github.com/barback/cocktail-rag/internal/embedding"
	"github.com/barback/cocktail-rag/internal/index"
	"github.com/barback/cocktail-rag/internal/models"
	"github.com/google/uuid"
)

// ErrSyncInProgress is returned when a synchronization is already running.
// The synchronizer never runs concurrently with itself.
var ErrSyncInProgress = errors.New("synchronization already in progress")

// Report summarizes one synchronization run
type Report struct {
	RunID    string        `json:"run_id"`
	Upserted int           `json:"upserted"`
	Skipped  int           `json:"skipped"`
	Deleted  int           `json:"deleted"`
	Duration time.Duration `json:"duration"`
}

// Synchronizer brings the vector index into agreement with the catalog.
// Safe to run repeatedly; safe to interrupt mid-run (partial progress
// leaves the index valid, just incomplete).
type Synchronizer struct {
	store    *catalog.Store
	embedder embedding.Gateway
	idx      index.Gateway

	upsertBatchSize int

	mu sync.Mutex // at most one sync in flight
}

// NewSynchronizer wires a synchronizer over the given store and gateways
func NewSynchronizer(store *catalog.Store, embedder embedding.Gateway, idx index.Gateway, upsertBatchSize int) *Synchronizer {
	if upsertBatchSize <= 0 {
		upsertBatchSize = 100
	}
	return &Synchronizer{
		store:           store,
		embedder:        embedder,
		idx:             idx,
		upsertBatchSize: upsertBatchSize,
	}
}

// Sync reconciles the index with the current catalog version: entries
// whose content hash is unchanged are skipped, changed or missing entries
// are re-embedded and upserted, and entries whose cocktail id left the
// catalog are deleted. Returns ErrSyncInProgress if another run is active.
func (s *Synchronizer) Sync(ctx context.Context) (*Report, error) {
	if !s.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	start := time.Now()
	report := &Report{RunID: uuid.New().String()}

	existing, err := s.idx.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing index entries: %w", err)
	}

	cocktails := s.store.All()
	var stale []models.Cocktail
	catalogIDs := make(map[string]bool, len(cocktails))

	for _, c := range cocktails {
		catalogIDs[c.ID] = true
		if existing[c.ID] == c.ContentHash() {
			report.Skipped++
			continue
		}
		stale = append(stale, c)
	}

	// Upsert before delete: an interrupted run may leave extra entries,
	// never missing ones a reader already relied on.
	for batchStart := 0; batchStart < len(stale); batchStart += s.upsertBatchSize {
		end := batchStart + s.upsertBatchSize
		if end > len(stale) {
			end = len(stale)
		}
		batch := stale[batchStart:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.EmbeddingText()
		}

		vectors, err := s.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding %d catalog entries: %w", len(batch), err)
		}

		entries := make([]models.IndexEntry, len(batch))
		now := time.Now()
		for i, c := range batch {
			entries[i] = models.IndexEntry{
				CocktailID: c.ID,
				Vector:     vectors[i],
				Metadata: models.Metadata{
					Name:            c.Name,
					Tags:            c.Tags,
					Instructions:    c.Instructions,
					ImageURL:        c.ImageURL,
					IngredientNames: c.IngredientNames(),
					ContentHash:     c.ContentHash(),
				},
				UpdatedAt: now,
			}
		}

		if err := s.idx.Upsert(ctx, entries); err != nil {
			return nil, fmt.Errorf("upserting %d entries: %w", len(entries), err)
		}
		report.Upserted += len(entries)
	}

	// Remove orphans: index entries whose cocktail id is gone from the
	// catalog
	var orphans []string
	for id := range existing {
		if !catalogIDs[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)

	if len(orphans) > 0 {
		if err := s.idx.Delete(ctx, orphans); err != nil {
			return nil, fmt.Errorf("deleting %d orphan entries: %w", len(orphans), err)
		}
		report.Deleted = len(orphans)
	}

	report.Duration = time.Since(start)
	log.Printf("Sync %s complete: %d upserted, %d skipped, %d deleted in %s",
		report.RunID, report.Upserted, report.Skipped, report.Deleted, report.Duration)
	return report, nil
}
