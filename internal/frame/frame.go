// Package frame rasterizes simulation states into fixed-size RGB pixel
// grids. Rendering is a pure function of the state: the same state
// always produces the same frame, and the state is never mutated.
package frame

import "github.com/jimgammell/pong-datagen/internal/sim"

// Size is the width and height of a frame in pixels.
const Size = 32

// Frame is a Size x Size grid of RGB bytes, stored flat in row-major
// order with 3 bytes per pixel: index = (x*Size + y) * 3. The first
// axis is the ball's x coordinate; paddles occupy the two edges of that
// axis. A Frame is a value type and has no identity beyond its position
// in a trajectory.
type Frame struct {
	Pix [Size * Size * 3]uint8
}

// At returns the color of the pixel at (x, y).
func (f *Frame) At(x, y int) sim.RGB {
	i := (x*Size + y) * 3
	return sim.RGB{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2]}
}

// set writes a pixel, silently skipping coordinates that fall outside
// the grid. Stamps anchored at the clamped extremes can hang one pixel
// past the edge; those writes are clipped.
func (f *Frame) set(x, y int, c sim.RGB) {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return
	}
	i := (x*Size + y) * 3
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
}

// Fill sets every pixel to the given color.
func (f *Frame) Fill(c sim.RGB) {
	for i := 0; i < len(f.Pix); i += 3 {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
	}
}

// Equal reports whether two frames are pixel-identical.
func (f *Frame) Equal(other *Frame) bool {
	return f.Pix == other.Pix
}
