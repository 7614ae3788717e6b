// ABOUTME: Shared wiring and helpers for CLI commands
// ABOUTME: Builds the catalog, gateways, synchronizer and orchestrator once
package commands

import (
	"fmt"
	"log"

	"github.com/barback/cocktail-rag/internal/catalog"
	"github.com/barback/cocktail-rag/internal/charm"
	"github.com/barback/cocktail-rag/internal/config"
	"github.com/barback/cocktail-rag/internal/embedding"
	"github.com/barback/cocktail-rag/internal/index"
	"github.com/barback/cocktail-rag/internal/ingest"
	"github.com/barback/cocktail-rag/internal/llm"
	"github.com/barback/cocktail-rag/internal/rag"
	openai "github.com/sashabaranov/go-openai"
)

// app bundles the wired components behind the CLI commands. Gateways are
// constructed once here and passed by handle, never reached through
// globals.
type app struct {
	cfg          *config.Config
	store        *catalog.Store
	index        index.Gateway
	embedder     embedding.Gateway
	generator    rag.Generator
	orchestrator *rag.Orchestrator
	synchronizer *ingest.Synchronizer
	charmClient  *charm.Client
}

// buildApp loads configuration, the catalog and all gateways
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	store := catalog.NewStore()
	summary, err := store.Load(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	for _, loadErr := range summary.Errors {
		log.Printf("Warning: %v", loadErr)
	}
	if verbose {
		log.Printf("Catalog loaded: %d cocktails, %d records skipped", summary.Loaded, summary.Skipped)
	}

	a := &app{cfg: cfg, store: store}

	// Vector index backend
	switch cfg.IndexBackend {
	case "memory":
		a.index, err = index.NewMemoryIndex(cfg.EmbeddingDimension)
	default:
		a.charmClient, err = charm.NewClient(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.IndexName,
			AutoSync: cfg.AutoSync,
		})
		if err == nil {
			a.index, err = index.NewCharmIndex(a.charmClient, cfg.EmbeddingDimension)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("initializing vector index: %w", err)
	}

	// Embedding gateway with exact-text cache. Without an API key the
	// gateway is disabled: catalog lookups still work, embedding-dependent
	// requests fail at call time instead of at startup.
	var embedGateway embedding.Gateway
	if cfg.OpenAIKey != "" {
		embedGateway, err = embedding.NewOpenAIGateway(&embedding.ClientConfig{
			APIKey:     cfg.OpenAIKey,
			Model:      openai.EmbeddingModel(cfg.EmbeddingModel),
			Dimension:  cfg.EmbeddingDimension,
			BatchSize:  cfg.EmbedBatchSize,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing embedding gateway: %w", err)
		}
	} else {
		embedGateway = embedding.Disabled(cfg.EmbeddingDimension)
	}
	embedder := embedding.NewCachedGateway(embedGateway)

	// Generation gateway (optional: without it, queries fall back to raw
	// retrieval results)
	var generator rag.Generator
	if cfg.OpenAIKey != "" {
		client, err := llm.NewOpenAIClient(&llm.ClientConfig{
			APIKey:     cfg.OpenAIKey,
			ChatModel:  cfg.ChatModel,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
		if err != nil {
			log.Printf("Warning: failed to initialize generation client: %v", err)
		} else {
			generator = client
		}
	}

	a.embedder = embedder
	a.generator = generator
	a.synchronizer = ingest.NewSynchronizer(store, embedder, a.index, cfg.UpsertBatchSize)
	a.orchestrator = rag.NewOrchestrator(store, embedder, a.index, generator, rag.Options{
		TopK:                cfg.TopK,
		SimilarityThreshold: cfg.SimilarityThreshold,
	})

	return a, nil
}

// orchestratorWithTopK builds an orchestrator with a one-off top-k
// override, sharing the app's gateways
func (a *app) orchestratorWithTopK(topK int) *rag.Orchestrator {
	return rag.NewOrchestrator(a.store, a.embedder, a.index, a.generator, rag.Options{
		TopK:                topK,
		SimilarityThreshold: a.cfg.SimilarityThreshold,
	})
}

// close releases backend handles
func (a *app) close() {
	if a.charmClient != nil {
		if err := a.charmClient.Close(); err != nil {
			log.Printf("Warning: error closing index backend: %v", err)
		}
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
