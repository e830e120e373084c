// Package trajectory drives advance/render loops to produce ordered
// frame sequences from the Pong simulation.
package trajectory

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/jimgammell/pong-datagen/internal/frame"
	"github.com/jimgammell/pong-datagen/internal/sim"
)

// Trajectory is one generated sequence: a frame per timestep plus the
// ground-truth state that produced each frame. Frames[0] is the initial
// state rendered before any step.
type Trajectory struct {
	Seed   int64
	Frames []frame.Frame
	States []sim.State
}

// Checksum returns a hash over the trajectory's final state, recorded
// in the run catalog so stored arrays can be spot-checked against the
// simulation that produced them.
func (t *Trajectory) Checksum() uint64 {
	if len(t.States) == 0 {
		return 0
	}
	last := t.States[len(t.States)-1]
	return last.Snapshot()
}

// Generator produces trajectories from a fixed parameter set. Safe for
// concurrent use: each Generate call owns its own state and RNG.
type Generator struct {
	Params sim.Params
	Steps  int

	// Progress, if non-nil, is called after each rendered frame with
	// (done, total). Reporting is the caller's concern; the generator
	// just exposes the hook.
	Progress func(done, total int)
}

// Generate runs one complete trajectory from the given seed.
func (g *Generator) Generate(seed int64) (*Trajectory, error) {
	if g.Steps < 1 {
		return nil, fmt.Errorf("trajectory: steps must be >= 1, got %d", g.Steps)
	}
	state, err := sim.New(g.Params)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))

	t := &Trajectory{
		Seed:   seed,
		Frames: make([]frame.Frame, 0, g.Steps),
		States: make([]sim.State, 0, g.Steps),
	}

	f, err := frame.Render(state)
	if err != nil {
		return nil, err
	}
	t.Frames = append(t.Frames, f)
	t.States = append(t.States, *state)
	g.report(1)

	for i := 1; i < g.Steps; i++ {
		sim.Advance(state, rng)
		f, err := frame.Render(state)
		if err != nil {
			return nil, fmt.Errorf("trajectory: timestep %d: %w", state.Timestep, err)
		}
		t.Frames = append(t.Frames, f)
		t.States = append(t.States, *state)
		g.report(i + 1)
	}

	return t, nil
}

func (g *Generator) report(done int) {
	if g.Progress != nil {
		g.Progress(done, g.Steps)
	}
}

// GenerateBatch runs n independent trajectories across the given number
// of workers. Trajectory i uses seed baseSeed+i, so a batch is fully
// reproducible and independent of worker count or scheduling. No state
// is shared between trajectories.
func (g *Generator) GenerateBatch(n int, baseSeed int64, workers int) ([]*Trajectory, error) {
	if n < 1 {
		return nil, fmt.Errorf("trajectory: batch size must be >= 1, got %d", n)
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	out := make([]*Trajectory, n)
	errs := make([]error, n)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i], errs[i] = g.Generate(baseSeed + int64(i))
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("trajectory %d: %w", i, err)
		}
	}
	return out, nil
}
