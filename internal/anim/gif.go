// Package anim renders frame sequences into shareable animated GIFs.
package anim

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"github.com/jimgammell/pong-datagen/internal/frame"
	"github.com/jimgammell/pong-datagen/internal/sim"
)

// EncodeGIF writes the frame sequence as an animated GIF at the given
// frame rate. The palette is built from the colors actually present in
// the sequence; trajectory frames use only the four configured colors.
func EncodeGIF(w io.Writer, frames []frame.Frame, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("anim: no frames to encode")
	}
	if fps < 1 {
		fps = 60
	}

	palette, index, err := buildPalette(frames)
	if err != nil {
		return err
	}

	// GIF delays are in hundredths of a second; anything above 100fps
	// collapses to the minimum representable delay.
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}

	out := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Delay: make([]int, 0, len(frames)),
	}
	rect := image.Rect(0, 0, frame.Size, frame.Size)
	for i := range frames {
		img := image.NewPaletted(rect, palette)
		for x := 0; x < frame.Size; x++ {
			for y := 0; y < frame.Size; y++ {
				// Frame axis 0 runs along ball x; draw it as the
				// image's vertical axis so paddles land on the top and
				// bottom edges.
				img.SetColorIndex(y, x, index[frames[i].At(x, y)])
			}
		}
		out.Image = append(out.Image, img)
		out.Delay = append(out.Delay, delay)
	}

	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("anim: cannot encode gif: %w", err)
	}
	return nil
}

// SaveGIF writes an animated GIF to a file.
func SaveGIF(path string, frames []frame.Frame, fps int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("anim: cannot create %s: %w", path, err)
	}
	if err := EncodeGIF(f, frames, fps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func buildPalette(frames []frame.Frame) (color.Palette, map[sim.RGB]uint8, error) {
	index := make(map[sim.RGB]uint8)
	palette := make(color.Palette, 0, 8)
	for i := range frames {
		for x := 0; x < frame.Size; x++ {
			for y := 0; y < frame.Size; y++ {
				c := frames[i].At(x, y)
				if _, ok := index[c]; ok {
					continue
				}
				if len(palette) >= 256 {
					return nil, nil, fmt.Errorf("anim: more than 256 distinct colors")
				}
				index[c] = uint8(len(palette))
				palette = append(palette, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
			}
		}
	}
	return palette, index, nil
}
