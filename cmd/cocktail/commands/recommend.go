// ABOUTME: CLI command running one RAG query end to end
// ABOUTME: Embeds the query, retrieves matches and prints the recommendation
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/barback/cocktail-rag/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var recommendTopK int

// NewRecommendCmd creates the recommend command
func NewRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <query>",
		Short: "Recommend cocktails for a natural-language request",
		Long: `Recommend cocktails for a natural-language request.

Runs the full retrieval-augmented pipeline: the query is embedded, the
closest catalog entries are retrieved, and the language model answers
grounded in them.

Examples:
  cocktail recommend "something refreshing with tequila"
  cocktail recommend --format json "a smoky after-dinner drink"`,
		Args: cobra.ExactArgs(1),
		RunE: runRecommend,
	}

	cmd.Flags().IntVar(&recommendTopK, "top-k", 0, "Override the configured number of retrieved matches")

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if recommendTopK != 0 {
		if err := validatePositiveInt(recommendTopK, "top-k"); err != nil {
			return err
		}
		if recommendTopK > config.MaxTopK {
			return fmt.Errorf("top-k must be at most %d, got %d", config.MaxTopK, recommendTopK)
		}
	}

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	orchestrator := a.orchestrator
	if recommendTopK != 0 {
		orchestrator = a.orchestratorWithTopK(recommendTopK)
	}

	rec, err := orchestrator.Recommend(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), rec.Answer)

	if len(rec.Grounding) > 0 && !quiet {
		fmt.Fprintln(cmd.OutOrStdout())
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "SCORE\tID\tNAME\n")
		for _, m := range rec.Grounding {
			fmt.Fprintf(w, "%.3f\t%s\t%s\n", m.Score, m.CocktailID, truncate(m.Metadata.Name, 40))
		}
		w.Flush()
	}

	return nil
}
