// ABOUTME: CLI command for direct ingredient search over the catalog
// ABOUTME: Lists cocktails containing all given ingredients, no LLM involved
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <ingredient> [ingredient...]",
		Short: "Search cocktails by ingredients",
		Long: `Search the catalog for cocktails containing all given ingredients.

This is a direct catalog lookup: no embedding, retrieval or generation
is involved.

Examples:
  cocktail search tequila lime
  cocktail search --format json gin`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	results, err := a.orchestrator.SearchByIngredients(args)
	if err != nil {
		return fmt.Errorf("searching catalog: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No cocktails found with: %s\n", strings.Join(args, ", "))
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tNAME\tINGREDIENTS\n")
		fmt.Fprintf(w, "--\t----\t-----------\n")
		for _, c := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				c.ID,
				truncate(c.Name, 30),
				truncate(strings.Join(c.IngredientNames(), ", "), 60))
		}
		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d cocktail(s)\n", len(results))
		}
	}

	return nil
}
