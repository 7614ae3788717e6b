// ABOUTME: MCP tool definitions and registration for the cocktail server
// ABOUTME: Defines JSON schemas for the recommend, search and sync tools
package mcp

import (
	"github.com/barback/cocktail-rag/internal/catalog"
	"github.com/barback/cocktail-rag/internal/ingest"
	"github.com/barback/cocktail-rag/internal/rag"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *catalog.Store, orchestrator *rag.Orchestrator, synchronizer *ingest.Synchronizer) *Handlers {
	handlers := &Handlers{
		store:        store,
		orchestrator: orchestrator,
		synchronizer: synchronizer,
	}

	// 1. recommend_cocktail - RAG query over the cocktail catalog
	server.AddTool(mcp.Tool{
		Name:        "recommend_cocktail",
		Description: "Recommend cocktails for a natural-language request. Retrieves the closest catalog matches by semantic similarity and answers grounded in them.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What the user is in the mood for, e.g. 'something refreshing with tequila'",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.RecommendCocktail)

	// 2. search_by_ingredients - direct catalog lookup, no generation
	server.AddTool(mcp.Tool{
		Name:        "search_by_ingredients",
		Description: "List catalog cocktails containing all of the given ingredients. Direct lookup, no language model involved.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ingredients": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Ingredient names, e.g. [\"tequila\", \"lime\"]",
				},
			},
			Required: []string{"ingredients"},
		},
	}, handlers.SearchByIngredients)

	// 3. sync_index - reconcile the vector index with the catalog
	server.AddTool(mcp.Tool{
		Name:        "sync_index",
		Description: "Reconcile the vector index with the cocktail catalog: embed new or changed entries and remove entries for deleted cocktails.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.SyncIndex)

	return handlers
}
