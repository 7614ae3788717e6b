// ABOUTME: Main entry point for the cocktail MCP server with stdio transport
// ABOUTME: Wires catalog, gateways, orchestrator and MCP tools
package main

import (
	"log"
	"os"

	"github.com/barback/cocktail-rag/internal/catalog"
	"github.com/barback/cocktail-rag/internal/charm"
	"github.com/barback/cocktail-rag/internal/config"
	"github.com/barback/cocktail-rag/internal/embedding"
	"github.com/barback/cocktail-rag/internal/index"
	"github.com/barback/cocktail-rag/internal/ingest"
	"github.com/barback/cocktail-rag/internal/llm"
	"github.com/barback/cocktail-rag/internal/mcp"
	"github.com/barback/cocktail-rag/internal/rag"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	openai "github.com/sashabaranov/go-openai"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embedding and generation will not work")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store := catalog.NewStore()
	summary, err := store.Load(cfg.DataPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	for _, loadErr := range summary.Errors {
		log.Printf("Warning: %v", loadErr)
	}
	log.Printf("Catalog loaded: %d cocktails, %d records skipped", summary.Loaded, summary.Skipped)

	var idx index.Gateway
	switch cfg.IndexBackend {
	case "memory":
		idx, err = index.NewMemoryIndex(cfg.EmbeddingDimension)
		if err != nil {
			log.Fatalf("Failed to initialize vector index: %v", err)
		}
	default:
		charmClient, err := charm.NewClient(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.IndexName,
			AutoSync: cfg.AutoSync,
		})
		if err != nil {
			log.Fatalf("Failed to connect to index backend: %v", err)
		}
		defer charmClient.Close()
		idx, err = index.NewCharmIndex(charmClient, cfg.EmbeddingDimension)
		if err != nil {
			log.Fatalf("Failed to initialize vector index: %v", err)
		}
	}

	// Without an API key the server still runs: ingredient search works,
	// embedding-dependent tools degrade at call time.
	var embedGateway embedding.Gateway = embedding.Disabled(cfg.EmbeddingDimension)
	var generator rag.Generator
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
			log.Fatalf("Failed to initialize embedding gateway: %v", err)
		}

		client, err := llm.NewOpenAIClient(&llm.ClientConfig{
			APIKey:     cfg.OpenAIKey,
			ChatModel:  cfg.ChatModel,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
		if err != nil {
			log.Fatalf("Failed to initialize generation client: %v", err)
		}
		generator = client
	}
	embedder := embedding.NewCachedGateway(embedGateway)

	synchronizer := ingest.NewSynchronizer(store, embedder, idx, cfg.UpsertBatchSize)
	orchestrator := rag.NewOrchestrator(store, embedder, idx, generator, rag.Options{
		TopK:                cfg.TopK,
		SimilarityThreshold: cfg.SimilarityThreshold,
	})

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Cocktail Recommender",
		"0.1.0",
	)

	mcp.RegisterTools(server, store, orchestrator, synchronizer)

	// Start server with stdio transport
	log.Println("Cocktail MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
