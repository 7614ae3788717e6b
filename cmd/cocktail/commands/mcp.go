// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to get cocktail recommendations via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/barback/cocktail-rag/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

var mcpSyncOnStart bool

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the cocktail recommender as an MCP (Model Context Protocol) server,
enabling LLM agents like Claude to query the catalog via stdio.

Configure in Claude Desktop's config file to enable the cocktail tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  cocktail mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "cocktail": {
  #       "command": "cocktail",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	cmd.Flags().BoolVar(&mcpSyncOnStart, "sync", false, "Synchronize the vector index before serving")

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embedding and generation will not work")
	}

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	if mcpSyncOnStart {
		report, err := a.synchronizer.Sync(cmd.Context())
		if err != nil {
			return fmt.Errorf("initial sync failed: %w", err)
		}
		if !quiet {
			log.Printf("Initial sync: %d upserted, %d skipped, %d deleted", report.Upserted, report.Skipped, report.Deleted)
		}
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Cocktail Recommender",
		"0.1.0",
	)

	mcp.RegisterTools(server, a.store, a.orchestrator, a.synchronizer)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Cocktail MCP server starting on stdio...")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
