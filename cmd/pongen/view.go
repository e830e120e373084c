package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jimgammell/pong-datagen/internal/config"
	"github.com/jimgammell/pong-datagen/internal/frame"
	"github.com/jimgammell/pong-datagen/internal/storage"
	"github.com/jimgammell/pong-datagen/internal/viewer"
)

var flagViewFPS int

var viewCmd = &cobra.Command{
	Use:   "view <file.npy>",
	Short: "Play back a stored trajectory",
	Long: `Play a stored trajectory frame array in the terminal.

Controls:
  Space/P   - Pause/resume
  Left/Right - Step one frame (pauses playback)
  R         - Restart
  Q/Ctrl+C  - Quit

Examples:
  pongen view ./resources/pong/t0.npy
  pongen view ./resources/pong/t0.npy --fps 30`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().IntVar(&flagViewFPS, "fps", 0, "Playback frame rate (0 = config value)")
}

func runView(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "pongen"})

	frames, err := storage.LoadFrames(args[0])
	if err != nil {
		return err
	}

	fps := flagViewFPS
	if fps <= 0 {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		fps = cfg.Output.FPS
	}

	// Each frame row renders as one terminal row of double-width cells.
	if _, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && h < frame.Size+4 {
		logger.Warn("terminal is shorter than a frame; playback will scroll",
			"rows", h, "needed", frame.Size+4)
	}

	return viewer.Run(filepath.Base(args[0]), frames, fps)
}
