package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jimgammell/pong-datagen/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List cataloged trajectory runs",
	Long: `Display recently generated runs from the catalog, newest first.

Examples:
  pongen runs
  pongen runs --limit 50`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) error {
	catalog, err := storage.OpenCatalog(flagDBPath)
	if err != nil {
		return err
	}
	defer catalog.Close()

	runs, err := catalog.ListRuns(flagRunsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'pongen generate' to create the first trajectory.")
		return nil
	}

	fmt.Printf("  %-4s  %-24s  %-20s  %-6s  %-16s  %s\n", "ID", "Path", "Seed", "Steps", "Checksum", "Date")
	fmt.Printf("  %-4s  %-24s  %-20s  %-6s  %-16s  %s\n", "--", "----", "----", "-----", "--------", "----")
	for _, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-24s  %-20d  %-6d  %016x  %s\n", r.ID, r.Path, r.Seed, r.Steps, r.Checksum, dateStr)
	}

	return nil
}
