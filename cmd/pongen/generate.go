package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jimgammell/pong-datagen/internal/anim"
	"github.com/jimgammell/pong-datagen/internal/config"
	"github.com/jimgammell/pong-datagen/internal/storage"
	"github.com/jimgammell/pong-datagen/internal/trajectory"
)

var (
	flagTrajectories int
	flagSteps        int
	flagSeed         int64
	flagOut          string
	flagGIF          bool
	flagFPS          int
	flagWorkers      int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Pong trajectories",
	Long: `Simulate one or more Pong trajectories and store each as an NPY
frame array (t<i>.npy) plus the ground-truth state factors that produced
it (t<i>_states.npy). Every run is recorded in the catalog so stored
arrays can be traced back to their seed.

Trajectory i uses seed <seed>+i, so a batch is reproducible regardless
of worker count.

Examples:
  pongen generate
  pongen generate --trajectories 8 --seed 42
  pongen generate --steps 500 --gif --out ./resources/pong`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagTrajectories, "trajectories", 1, "Number of independent trajectories")
	generateCmd.Flags().IntVar(&flagSteps, "steps", 0, "Timesteps per trajectory (0 = config value)")
	generateCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Base RNG seed (0 = random based on time)")
	generateCmd.Flags().StringVar(&flagOut, "out", filepath.Join("resources", "pong"), "Output directory")
	generateCmd.Flags().BoolVar(&flagGIF, "gif", false, "Also export each trajectory as an animated GIF")
	generateCmd.Flags().IntVar(&flagFPS, "fps", 0, "GIF frame rate (0 = config value)")
	generateCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "Parallel trajectory workers")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pongen",
	})

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	steps := cfg.Output.Steps
	if flagSteps > 0 {
		steps = flagSteps
	}
	fps := cfg.Output.FPS
	if flagFPS > 0 {
		fps = flagFPS
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if err := os.MkdirAll(flagOut, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", flagOut, err)
	}

	catalog, err := storage.OpenCatalog(flagDBPath)
	if err != nil {
		// The catalog is bookkeeping; generation still works without it.
		logger.Warn("could not open run catalog", "err", err)
		catalog = nil
	}
	if catalog != nil {
		defer catalog.Close()
	}

	gen := &trajectory.Generator{Params: cfg.SimParams(), Steps: steps}

	logger.Info("generating trajectories",
		"count", flagTrajectories, "steps", steps, "seed", seed, "workers", flagWorkers)
	start := time.Now()
	trajs, err := gen.GenerateBatch(flagTrajectories, seed, flagWorkers)
	if err != nil {
		return err
	}
	logger.Info("simulation complete", "elapsed", time.Since(start))

	for i, t := range trajs {
		framesPath := filepath.Join(flagOut, fmt.Sprintf("t%d.npy", i))
		statesPath := filepath.Join(flagOut, fmt.Sprintf("t%d_states.npy", i))

		if err := storage.SaveFrames(framesPath, t.Frames); err != nil {
			return err
		}
		if err := storage.SaveStates(statesPath, t.States); err != nil {
			return err
		}
		logger.Info("saved trajectory", "frames", framesPath, "states", statesPath, "seed", t.Seed)

		if catalog != nil {
			if _, err := catalog.SaveRun(storage.Run{
				Path:     framesPath,
				Seed:     t.Seed,
				Steps:    steps,
				Checksum: t.Checksum(),
			}); err != nil {
				logger.Warn("could not catalog run", "path", framesPath, "err", err)
			}
		}

		if flagGIF {
			gifPath := filepath.Join(flagOut, fmt.Sprintf("t%d.gif", i))
			if err := anim.SaveGIF(gifPath, t.Frames, fps); err != nil {
				// GIF export is a convenience; a failure here does not
				// invalidate the stored arrays.
				logger.Warn("gif export failed", "path", gifPath, "err", err)
			} else {
				logger.Info("saved animation", "path", gifPath, "fps", fps)
			}
		}
	}

	return nil
}
