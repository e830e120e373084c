// Package config provides YAML-based configuration loading and
// validation for the trajectory generator.
package config

import (
	"fmt"
	"math"

	"github.com/jimgammell/pong-datagen/internal/sim"
)

// PongConfig contains all configuration for a simulation run.
type PongConfig struct {
	Ball    BallConfig   `yaml:"ball"`
	Paddles PaddleConfig `yaml:"paddles"`
	Colors  ColorConfig  `yaml:"colors"`
	Output  OutputConfig `yaml:"output"`
}

// BallConfig defines the ball's initial state and dynamics.
type BallConfig struct {
	X     float64 `yaml:"x"`     // Initial x in [-1, 1]
	Y     float64 `yaml:"y"`     // Initial y in [-1, 1]
	Angle float64 `yaml:"angle"` // Initial velocity angle in radians
	Speed float64 `yaml:"speed"` // Distance per timestep in [-1, 1]
	Noise float64 `yaml:"noise"` // Position/angle noise std dev
}

// PaddleConfig defines the paddles' initial positions and noise.
type PaddleConfig struct {
	ProY  float64 `yaml:"pro_y"` // Protagonist initial y in [-1, 1]
	AntY  float64 `yaml:"ant_y"` // Antagonist initial y in [-1, 1]
	Noise float64 `yaml:"noise"` // Paddle noise std dev
}

// ColorConfig defines the RGB palette for rendered frames.
type ColorConfig struct {
	Ball       [3]uint8 `yaml:"ball"`
	Background [3]uint8 `yaml:"background"`
	Pro        [3]uint8 `yaml:"pro"`
	Ant        [3]uint8 `yaml:"ant"`
}

// OutputConfig defines trajectory length and playback rate.
type OutputConfig struct {
	Steps int `yaml:"steps"` // Timesteps per trajectory
	FPS   int `yaml:"fps"`   // Frame rate for GIF export and playback
}

// Validate checks the configuration for out-of-range values so bad
// settings are reported before a simulation is constructed.
func (c PongConfig) Validate() error {
	if c.Output.Steps < 1 {
		return fmt.Errorf("config: output.steps must be >= 1, got %d", c.Output.Steps)
	}
	if c.Output.FPS < 1 {
		return fmt.Errorf("config: output.fps must be >= 1, got %d", c.Output.FPS)
	}
	// Range checks on the simulation parameters themselves live in
	// sim.New; constructing a throwaway state surfaces them here.
	if _, err := sim.New(c.SimParams()); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SimParams converts the configuration into simulation parameters.
func (c PongConfig) SimParams() sim.Params {
	rgb := func(v [3]uint8) sim.RGB {
		return sim.RGB{R: v[0], G: v[1], B: v[2]}
	}
	return sim.Params{
		BallX:       c.Ball.X,
		BallY:       c.Ball.Y,
		BallAngle:   c.Ball.Angle,
		BallSpeed:   c.Ball.Speed,
		ProPaddleY:  c.Paddles.ProY,
		AntPaddleY:  c.Paddles.AntY,
		BallNoise:   c.Ball.Noise,
		PaddleNoise: c.Paddles.Noise,
		Style: sim.Style{
			Ball:       rgb(c.Colors.Ball),
			Background: rgb(c.Colors.Background),
			Pro:        rgb(c.Colors.Pro),
			Ant:        rgb(c.Colors.Ant),
		},
	}
}

// Default returns the documented default configuration: centered ball
// at angle pi/7, speed 0.2, noise 0.05/0.1, blue ball on white, green
// protagonist, red antagonist, 1000 steps at 60fps.
func Default() PongConfig {
	return PongConfig{
		Ball: BallConfig{
			Angle: math.Pi / 7,
			Speed: 0.2,
			Noise: 0.05,
		},
		Paddles: PaddleConfig{
			Noise: 0.1,
		},
		Colors: ColorConfig{
			Ball:       [3]uint8{0, 0, 255},
			Background: [3]uint8{255, 255, 255},
			Pro:        [3]uint8{0, 255, 0},
			Ant:        [3]uint8{255, 0, 0},
		},
		Output: OutputConfig{
			Steps: 1000,
			FPS:   60,
		},
	}
}
