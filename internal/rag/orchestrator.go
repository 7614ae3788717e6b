// ABOUTME: RAG orchestrator driving embedding, retrieval, ranking and generation
// ABOUTME: Implements the per-request state machine with graceful degradation
package rag

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/barback/cocktail-rag/internal/catalog"
	"github.com/barback/cocktail-rag/internal/embedding"
	"github.com/barback/cocktail-rag/internal/index"
	"github.com/barback/cocktail-rag/internal/models"
	"github.com/google/uuid"
)

// Stage identifies where in the request pipeline an error occurred
type Stage string

const (
	StageReceived   Stage = "received"
	StageEmbedding  Stage = "embedding"
	StageRetrieving Stage = "retrieving"
	StageRanking    Stage = "ranking"
	StageAugmenting Stage = "augmenting"
	StageGenerating Stage = "generating"
	StageCompleted  Stage = "completed"
)

// NoMatchAnswer is returned on the degraded path when retrieval finds
// nothing above the similarity threshold. Generation is skipped entirely
// so the model cannot hallucinate an ungrounded answer.
const NoMatchAnswer = "No close match found in the cocktail catalog for this request."

// Error is the single structured error surfaced to the tool boundary
type Error struct {
	Stage     Stage
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rag %s stage: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Generator is the generation gateway contract consumed by the orchestrator
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options configures retrieval behavior
type Options struct {
	TopK                int
	SimilarityThreshold float64
}

// Orchestrator accepts a query and drives it through embedding, retrieval,
// ranking, prompt assembly and generation. It holds no per-request state,
// so concurrent queries are safe.
type Orchestrator struct {
	store     *catalog.Store
	embedder  embedding.Gateway
	idx       index.Gateway
	generator Generator
	opts      Options
}

// NewOrchestrator wires an orchestrator over the given store and gateways.
// generator may be nil, in which case every request takes the raw-result
// path.
func NewOrchestrator(store *catalog.Store, embedder embedding.Gateway, idx index.Gateway, generator Generator, opts Options) *Orchestrator {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	return &Orchestrator{
		store:     store,
		embedder:  embedder,
		idx:       idx,
		generator: generator,
		opts:      opts,
	}
}

// Recommend answers a natural-language cocktail query. The caller always
// receives either a complete Recommendation (possibly degraded) or a
// single *Error, never a partial result.
func (o *Orchestrator) Recommend(ctx context.Context, query string) (*models.Recommendation, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &Error{Stage: StageReceived, Err: errors.New("query must be a non-empty string")}
	}

	rec := &models.Recommendation{
		RequestID: uuid.New().String(),
		Query:     query,
	}

	// embedding
	vectors, err := o.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, stageError(ctx, StageEmbedding, err)
	}

	// retrieving
	filter := o.ingredientFilter(query)
	matches, err := o.idx.Query(ctx, vectors[0], o.opts.TopK, filter)
	if err != nil {
		return nil, stageError(ctx, StageRetrieving, err)
	}

	// ranking: drop everything below the similarity threshold
	ranked := make(models.RetrievalResult, 0, len(matches))
	for _, m := range matches {
		if m.Score >= o.opts.SimilarityThreshold {
			ranked = append(ranked, m)
		}
	}

	if len(ranked) == 0 {
		// Degraded path: no grounding, no generation call
		rec.Grounding = models.RetrievalResult{}
		rec.Answer = NoMatchAnswer
		rec.Generated = false
		return rec, nil
	}
	rec.Grounding = ranked

	// augmenting + generating
	if o.generator != nil {
		prompt := BuildPrompt(query, ranked)
		answer, err := o.generator.Generate(ctx, prompt)
		if err == nil {
			rec.Answer = answer
			rec.Generated = true
			return rec, nil
		}
		if ctx.Err() != nil {
			return nil, stageError(ctx, StageGenerating, err)
		}
		// Generation failure is recoverable: fall back to the raw
		// retrieval result rather than failing the whole request
		log.Printf("Warning: generation failed, returning raw retrieval result: %v", err)
	}

	rec.Answer = FormatRawResult(ranked)
	rec.Generated = false
	return rec, nil
}

// SearchByIngredients is the direct catalog lookup bypassing retrieval and
// generation
func (o *Orchestrator) SearchByIngredients(names []string) ([]models.Cocktail, error) {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if s := strings.TrimSpace(n); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return nil, &Error{Stage: StageReceived, Err: errors.New("at least one ingredient name is required")}
	}
	return o.store.FindByIngredients(cleaned), nil
}

// ingredientFilter builds a metadata predicate from ingredient names
// mentioned in the query, or nil if none are mentioned. Matching is on
// word boundaries so short names like "gin" do not fire inside unrelated
// words.
func (o *Orchestrator) ingredientFilter(query string) index.Filter {
	lowered := " " + strings.ToLower(query) + " "
	var mentioned []string
	for _, ing := range o.store.Ingredients() {
		name := ing.NormalizedName()
		if name == "" {
			continue
		}
		if containsWord(lowered, name) {
			mentioned = append(mentioned, name)
		}
	}
	if len(mentioned) == 0 {
		return nil
	}

	return func(md models.Metadata) bool {
		for _, want := range mentioned {
			found := false
			for _, have := range md.IngredientNames {
				if strings.ToLower(strings.TrimSpace(have)) == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
}

// containsWord reports whether name occurs in text delimited by
// non-letter characters. text must be lowercased and padded with spaces.
func containsWord(text, name string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], name)
		if pos < 0 {
			return false
		}
		pos += idx
		before := text[pos-1]
		after := text[pos+len(name)]
		if !isLetter(before) && !isLetter(after) {
			return true
		}
		idx = pos + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// stageError classifies a gateway failure into the single structured
// error surfaced to the boundary. Dimension mismatches are permanent;
// cancellation is its own terminal condition; everything else is a
// retryable transport failure.
func stageError(ctx context.Context, stage Stage, err error) *Error {
	if ctx.Err() != nil {
		return &Error{Stage: stage, Retryable: false, Err: ctx.Err()}
	}
	retryable := !errors.Is(err, embedding.ErrDimensionMismatch) && !errors.Is(err, index.ErrDimensionMismatch)
	return &Error{Stage: stage, Retryable: retryable, Err: err}
}
