// ABOUTME: Root command and global flags for the cocktail CLI
// ABOUTME: Wires subcommands and persistent verbose/quiet/format flags
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cocktail",
		Short: "Cocktail recommendation RAG server",
		Long: `Cocktail is a retrieval-augmented cocktail recommendation system.

It indexes a cocktail catalog into a vector store, answers natural-language
queries grounded in the closest matches, and exposes the whole thing as
MCP tools for LLM agents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: table or json")

	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewRecommendCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
