// pongen generates synthetic Pong trajectories for use as training data
// in causal/representation-learning research.
//
// Usage:
//
//	pongen generate           - Generate trajectories (frames + factors)
//	pongen runs               - List cataloged runs
//	pongen view <file.npy>    - Play back a stored trajectory
//
// Global flags:
//
//	--config <path>  - Custom simulation config YAML
//	--db <path>      - Run catalog path (default: ~/.pongen/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pongen",
	Short: "Synthetic Pong trajectory generator",
	Long: `pongen simulates a simplified Pong environment and rasterizes it
into 32x32 RGB frame sequences, saved as NPY arrays alongside the
ground-truth state factors that produced them.

Available commands:
  generate - Run the simulation and store trajectories
  runs     - List previously generated runs
  view     - Play back a stored trajectory in the terminal

Examples:
  pongen generate --trajectories 8 --seed 42 --out ./resources/pong
  pongen generate --steps 500 --gif
  pongen runs
  pongen view ./resources/pong/t0.npy`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pongen/runs.db", "Path to run catalog database")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(viewCmd)
}
