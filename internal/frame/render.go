package frame

import (
	"fmt"

	"github.com/jimgammell/pong-datagen/internal/sim"
)

// ErrOutOfRange reports a relative coordinate outside [-1, 1] passed to
// pixel mapping. It signals a broken stepper invariant, not bad user
// input, so callers surface it instead of clamping it away.
var ErrOutOfRange = fmt.Errorf("frame: relative coordinate outside [-1, 1]")

// PixelIndex maps a relative coordinate in [-1, 1] to a pixel index,
// keeping a margin of halfWidth pixels from each edge so a stamp of
// that half-width centered on the result stays inside the frame.
// The affine image is truncated to an integer and clamped to
// [halfWidth, Size-halfWidth].
func PixelIndex(rel float64, halfWidth int) (int, error) {
	if rel < -1 || rel > 1 {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, rel)
	}
	abs := int(float64(halfWidth) + float64(Size-2*halfWidth)*(0.5*rel+0.5))
	if abs < halfWidth {
		abs = halfWidth
	}
	if abs > Size-halfWidth {
		abs = Size - halfWidth
	}
	return abs, nil
}

// Render rasterizes a state: background fill, a plus-shaped ball stamp,
// and a 5-wide 2-deep paddle band on each edge. The protagonist paddle
// sits at rows 0..1, the antagonist at rows Size-2..Size-1.
func Render(s *sim.State) (Frame, error) {
	var f Frame
	f.Fill(s.Style.Background)

	bx, err := PixelIndex(s.BallX, 1)
	if err != nil {
		return Frame{}, fmt.Errorf("ball x: %w", err)
	}
	by, err := PixelIndex(s.BallY, 1)
	if err != nil {
		return Frame{}, fmt.Errorf("ball y: %w", err)
	}
	// Plus shape: vertical run through the anchor, then horizontal.
	// The center pixel is written by both runs.
	for x := bx - 1; x <= bx+1; x++ {
		f.set(x, by, s.Style.Ball)
	}
	for y := by - 1; y <= by+1; y++ {
		f.set(bx, y, s.Style.Ball)
	}

	proY, err := PixelIndex(s.ProPaddleY, 2)
	if err != nil {
		return Frame{}, fmt.Errorf("protagonist paddle: %w", err)
	}
	for x := 0; x < 2; x++ {
		for y := proY - 2; y <= proY+2; y++ {
			f.set(x, y, s.Style.Pro)
		}
	}

	antY, err := PixelIndex(s.AntPaddleY, 2)
	if err != nil {
		return Frame{}, fmt.Errorf("antagonist paddle: %w", err)
	}
	for x := Size - 2; x < Size; x++ {
		for y := antY - 2; y <= antY+2; y++ {
			f.set(x, y, s.Style.Ant)
		}
	}

	return f, nil
}
