// ABOUTME: Sync command reconciling the vector index with the catalog
// ABOUTME: Provides run and status subcommands
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage vector index synchronization",
		Long: `Manage synchronization between the cocktail catalog and the vector index.

Synchronization embeds every new or changed catalog entry, upserts the
resulting vectors, and deletes index entries whose cocktail no longer
exists. It is idempotent: re-running on an unchanged catalog performs no
upserts.`,
	}

	cmd.AddCommand(newSyncRunCmd())
	cmd.AddCommand(newSyncStatusCmd())

	return cmd
}

func newSyncRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Synchronize the vector index with the catalog now",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.close()

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Synchronizing %d catalog entries...\n", a.store.Len())
			}

			report, err := a.synchronizer.Sync(cmd.Context())
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			if outputFormat == "json" {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Upserted: %d\n", report.Upserted)
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped:  %d\n", report.Skipped)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted:  %d\n", report.Deleted)
			fmt.Fprintf(cmd.OutOrStdout(), "Took:     %s\n", report.Duration)
			return nil
		},
	}
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog and index entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.close()

			count, err := a.index.Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("counting index entries: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Catalog entries: %d\n", a.store.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "Index entries:   %d\n", count)
			if a.store.Len() != count {
				fmt.Fprintln(cmd.OutOrStdout(), "Index is out of date; run 'cocktail sync run'")
			}
			return nil
		},
	}
}
