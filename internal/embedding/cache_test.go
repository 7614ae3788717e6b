// ABOUTME: Tests for the embedding cache decorator
// ABOUTME: Verifies hit/miss accounting, order preservation and error passthrough
package embedding

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// stubGateway returns a deterministic vector per text and records calls
type stubGateway struct {
	dimension int
	calls     [][]string
	failWith  error
}

func (s *stubGateway) Dimension() int { return s.dimension }

func (s *stubGateway) Embed(_ context.Context, texts []string) ([][]float64, error) {
	s.calls = append(s.calls, append([]string(nil), texts...))
	if s.failWith != nil {
		return nil, s.failWith
	}
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = []float64{float64(len(text)), 0}
	}
	return vectors, nil
}

func TestCachedGateway_SecondCallHitsCache(t *testing.T) {
	inner := &stubGateway{dimension: 2}
	cached := NewCachedGateway(inner)
	ctx := context.Background()

	first, err := cached.Embed(ctx, []string{"margarita", "mojito"})
	if err != nil {
		t.Fatalf("first Embed failed: %v", err)
	}
	second, err := cached.Embed(ctx, []string{"margarita", "mojito"})
	if err != nil {
		t.Fatalf("second Embed failed: %v", err)
	}

	if len(inner.calls) != 1 {
		t.Errorf("inner gateway called %d times, want 1", len(inner.calls))
	}
	for i := range first {
		if fmt.Sprint(first[i]) != fmt.Sprint(second[i]) {
			t.Errorf("cached vector %d differs from original", i)
		}
	}

	hits, misses := cached.Stats()
	if hits != 2 || misses != 2 {
		t.Errorf("Stats() = (%d, %d), want (2, 2)", hits, misses)
	}
}

func TestCachedGateway_PartialHitPreservesOrder(t *testing.T) {
	inner := &stubGateway{dimension: 2}
	cached := NewCachedGateway(inner)
	ctx := context.Background()

	if _, err := cached.Embed(ctx, []string{"daiquiri"}); err != nil {
		t.Fatalf("warm-up Embed failed: %v", err)
	}

	// daiquiri is cached, the other two are not; result order must match input
	vectors, err := cached.Embed(ctx, []string{"negroni", "daiquiri", "sidecar"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vectors))
	}
	if vectors[0][0] != float64(len("negroni")) {
		t.Errorf("vectors[0] = %v, want vector for negroni", vectors[0])
	}
	if vectors[1][0] != float64(len("daiquiri")) {
		t.Errorf("vectors[1] = %v, want cached vector for daiquiri", vectors[1])
	}
	if vectors[2][0] != float64(len("sidecar")) {
		t.Errorf("vectors[2] = %v, want vector for sidecar", vectors[2])
	}

	lastCall := inner.calls[len(inner.calls)-1]
	if len(lastCall) != 2 {
		t.Errorf("inner gateway received %d texts, want only the 2 misses", len(lastCall))
	}
}

func TestCachedGateway_ReturnedVectorsAreIsolated(t *testing.T) {
	inner := &stubGateway{dimension: 2}
	cached := NewCachedGateway(inner)
	ctx := context.Background()

	first, err := cached.Embed(ctx, []string{"margarita"})
	if err != nil {
		t.Fatalf("first Embed failed: %v", err)
	}
	want := first[0][0]

	// Mutating a returned vector must not poison later cache hits
	first[0][0] = -999

	second, err := cached.Embed(ctx, []string{"margarita"})
	if err != nil {
		t.Fatalf("second Embed failed: %v", err)
	}
	if second[0][0] != want {
		t.Errorf("cached vector = %v after caller mutation, want %v", second[0][0], want)
	}

	second[0][1] = -999
	third, _ := cached.Embed(ctx, []string{"margarita"})
	if third[0][1] == -999 {
		t.Error("mutating a cache-hit result leaked into the cache")
	}
}

func TestCachedGateway_InnerErrorPassesThrough(t *testing.T) {
	inner := &stubGateway{dimension: 2, failWith: ErrUnavailable}
	cached := NewCachedGateway(inner)

	_, err := cached.Embed(context.Background(), []string{"margarita"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Embed error = %v, want ErrUnavailable", err)
	}
	// Failed lookups must not poison the cache
	if hits, _ := cached.Stats(); hits != 0 {
		t.Errorf("hits = %d after failure, want 0", hits)
	}
}

func TestCachedGateway_EmptyInput(t *testing.T) {
	inner := &stubGateway{dimension: 2}
	cached := NewCachedGateway(inner)

	vectors, err := cached.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed(nil) failed: %v", err)
	}
	if len(vectors) != 0 {
		t.Errorf("got %d vectors for empty input, want 0", len(vectors))
	}
	if len(inner.calls) != 0 {
		t.Error("inner gateway called for empty input")
	}
}

func TestCachedGateway_Dimension(t *testing.T) {
	inner := &stubGateway{dimension: 1536}
	cached := NewCachedGateway(inner)
	if cached.Dimension() != 1536 {
		t.Errorf("Dimension() = %d, want 1536", cached.Dimension())
	}
}
