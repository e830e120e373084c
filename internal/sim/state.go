// Package sim implements the continuous-state Pong simulation used to
// generate synthetic trajectories. It is UI-agnostic and deterministic
// given a noise source, so trajectories are reproducible from a seed.
package sim

import (
	"fmt"
	"hash/fnv"
	"math"
)

// RGB is an 8-bit-per-channel color used when rasterizing states.
type RGB struct {
	R, G, B uint8
}

// Style holds the color constants for a run. Fixed once the state is
// constructed.
type Style struct {
	Ball       RGB
	Background RGB
	Pro        RGB
	Ant        RGB
}

// DefaultStyle returns the standard palette: blue ball on a white field,
// green protagonist paddle, red antagonist paddle.
func DefaultStyle() Style {
	return Style{
		Ball:       RGB{0, 0, 255},
		Background: RGB{255, 255, 255},
		Pro:        RGB{0, 255, 0},
		Ant:        RGB{255, 0, 0},
	}
}

// Params configures the initial simulation state.
// Positions live in relative coordinates ([-1, 1]); the angle is in
// radians and is normalized into [0, 2*pi) at construction.
type Params struct {
	BallX       float64 // Initial ball x (in [-1, 1])
	BallY       float64 // Initial ball y (in [-1, 1])
	BallAngle   float64 // Initial velocity angle (radians)
	BallSpeed   float64 // Distance per timestep (in [-1, 1])
	ProPaddleY  float64 // Initial protagonist paddle y (in [-1, 1])
	AntPaddleY  float64 // Initial antagonist paddle y (in [-1, 1])
	ProScore    int
	AntScore    int
	BallNoise   float64 // Std dev of ball position/angle noise (>= 0)
	PaddleNoise float64 // Std dev of paddle position noise (>= 0)
	Style       Style
}

// DefaultParams returns the documented defaults: centered ball and
// paddles, angle pi/7, speed 0.2, noise 0.05/0.1.
func DefaultParams() Params {
	return Params{
		BallAngle:   math.Pi / 7,
		BallSpeed:   0.2,
		BallNoise:   0.05,
		PaddleNoise: 0.1,
		Style:       DefaultStyle(),
	}
}

// State is the complete continuous simulation state at one timestep.
// The driver loop owns it exclusively: Advance mutates it in place and
// rendering only reads it. States are never shared across trajectories.
type State struct {
	BallX     float64 // Ball x in [-1, 1]
	BallY     float64 // Ball y in [-1, 1]
	BallAngle float64 // Velocity angle in [0, 2*pi)
	BallSpeed float64

	ProPaddleY float64 // Protagonist paddle y in [-1, 1]
	AntPaddleY float64 // Antagonist paddle y in [-1, 1]

	// Scores are carried in the state but never updated by Advance.
	// The rules for scoring a missed return are an unimplemented
	// extension point.
	ProScore int
	AntScore int

	BallNoise   float64
	PaddleNoise float64

	Timestep int

	Style Style
}

// New validates the parameters and constructs the initial state.
// Out-of-range parameters are reported here rather than surfacing as
// broken invariants on the first step.
func New(p Params) (*State, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	return &State{
		BallX:       p.BallX,
		BallY:       p.BallY,
		BallAngle:   WrapAngle(p.BallAngle),
		BallSpeed:   p.BallSpeed,
		ProPaddleY:  p.ProPaddleY,
		AntPaddleY:  p.AntPaddleY,
		ProScore:    p.ProScore,
		AntScore:    p.AntScore,
		BallNoise:   p.BallNoise,
		PaddleNoise: p.PaddleNoise,
		Style:       p.Style,
	}, nil
}

func validate(p Params) error {
	inUnit := func(name string, v float64) error {
		if v < -1 || v > 1 {
			return fmt.Errorf("sim: %s %v outside [-1, 1]", name, v)
		}
		return nil
	}
	if err := inUnit("ball x", p.BallX); err != nil {
		return err
	}
	if err := inUnit("ball y", p.BallY); err != nil {
		return err
	}
	if err := inUnit("ball speed", p.BallSpeed); err != nil {
		return err
	}
	if err := inUnit("protagonist paddle y", p.ProPaddleY); err != nil {
		return err
	}
	if err := inUnit("antagonist paddle y", p.AntPaddleY); err != nil {
		return err
	}
	if p.ProScore < 0 || p.AntScore < 0 {
		return fmt.Errorf("sim: negative score (%d, %d)", p.ProScore, p.AntScore)
	}
	if p.BallNoise < 0 {
		return fmt.Errorf("sim: negative ball noise std %v", p.BallNoise)
	}
	if p.PaddleNoise < 0 {
		return fmt.Errorf("sim: negative paddle noise std %v", p.PaddleNoise)
	}
	if math.IsNaN(p.BallAngle) || math.IsInf(p.BallAngle, 0) {
		return fmt.Errorf("sim: ball angle %v is not finite", p.BallAngle)
	}
	return nil
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// Snapshot returns a hash of the dynamic state, useful for comparing
// trajectories and catalog checksums.
func (s *State) Snapshot() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "B:%v:%v:%v:%v;", s.BallX, s.BallY, s.BallAngle, s.BallSpeed)
	fmt.Fprintf(h, "P:%v:%v;", s.ProPaddleY, s.AntPaddleY)
	fmt.Fprintf(h, "S:%d:%d;", s.ProScore, s.AntScore)
	fmt.Fprintf(h, "T:%d", s.Timestep)
	return h.Sum64()
}

// Factors returns the ground-truth generative factors of the state in a
// fixed order: ball x, ball y, angle, speed, protagonist paddle y,
// antagonist paddle y, timestep. Persisted alongside frames so that
// downstream models can be evaluated against the true latents.
func (s *State) Factors() [7]float64 {
	return [7]float64{
		s.BallX,
		s.BallY,
		s.BallAngle,
		s.BallSpeed,
		s.ProPaddleY,
		s.AntPaddleY,
		float64(s.Timestep),
	}
}
