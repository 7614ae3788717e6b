// ABOUTME: MCP tool handler implementations for the cocktail server
// ABOUTME: Translates tool calls into orchestrator and synchronizer operations
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/barback/cocktail-rag/internal/catalog"
	"github.com/barback/cocktail-rag/internal/ingest"
	"github.com/barback/cocktail-rag/internal/rag"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	store        *catalog.Store
	orchestrator *rag.Orchestrator
	synchronizer *ingest.Synchronizer
}

// RecommendCocktail handles the recommend_cocktail tool
func (h *Handlers) RecommendCocktail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	rec, err := h.orchestrator.Recommend(ctx, query)
	if err != nil {
		var ragErr *rag.Error
		if errors.As(err, &ragErr) {
			return mcp.NewToolResultError(fmt.Sprintf("recommendation failed at %s stage (retryable=%v): %v", ragErr.Stage, ragErr.Retryable, ragErr.Err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(rec)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchByIngredients handles the search_by_ingredients tool
func (h *Handlers) SearchByIngredients(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("ingredients argument is required and must be an array of strings"), nil
	}
	raw, exists := args["ingredients"]
	if !exists {
		return mcp.NewToolResultError("ingredients argument is required and must be an array of strings"), nil
	}
	rawArr, ok := raw.([]interface{})
	if !ok {
		return mcp.NewToolResultError("ingredients argument must be an array of strings"), nil
	}

	names := make([]string, 0, len(rawArr))
	for _, item := range rawArr {
		if s, ok := item.(string); ok {
			names = append(names, s)
		}
	}

	cocktails, err := h.orchestrator.SearchByIngredients(names)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"count":     len(cocktails),
		"cocktails": cocktails,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SyncIndex handles the sync_index tool
func (h *Handlers) SyncIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.synchronizer.Sync(ctx)
	if err != nil {
		if errors.Is(err, ingest.ErrSyncInProgress) {
			return mcp.NewToolResultError("a synchronization is already running"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("sync failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"run_id":   report.RunID,
		"upserted": report.Upserted,
		"skipped":  report.Skipped,
		"deleted":  report.Deleted,
		"duration": report.Duration.String(),
		"catalog":  h.store.Len(),
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
