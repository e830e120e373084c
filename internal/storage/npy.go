// Package storage persists generated trajectories: frame and factor
// arrays as NPY files readable by the Python training pipeline, and a
// SQLite catalog of run metadata. Uses the pure-Go modernc.org/sqlite
// driver to avoid CGO dependencies.
package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jimgammell/pong-datagen/internal/frame"
	"github.com/jimgammell/pong-datagen/internal/sim"
)

// NPY version 1.0 layout: 6-byte magic, 2-byte version, 2-byte
// little-endian header length, then a Python dict literal padded with
// spaces so the data section starts on a 64-byte boundary.
var npyMagic = []byte("\x93NUMPY\x01\x00")

var npyHeaderRe = regexp.MustCompile(
	`'descr':\s*'([^']+)',\s*'fortran_order':\s*(True|False),\s*'shape':\s*\(([^)]*)\)`)

func writeNPYHeader(w io.Writer, descr string, shape []int) error {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	// Trailing comma keeps single-element shapes valid Python tuples.
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%s,), }",
		descr, strings.Join(dims, ", "))

	// Pad so magic + length field + header (including final newline)
	// is a multiple of 64 bytes.
	total := len(npyMagic) + 2 + len(header) + 1
	if pad := total % 64; pad != 0 {
		header += strings.Repeat(" ", 64-pad)
	}
	header += "\n"

	if _, err := w.Write(npyMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	_, err := io.WriteString(w, header)
	return err
}

func readNPYHeader(r io.Reader) (descr string, shape []int, err error) {
	magic := make([]byte, len(npyMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return "", nil, fmt.Errorf("storage: cannot read npy magic: %w", err)
	}
	if string(magic) != string(npyMagic) {
		return "", nil, fmt.Errorf("storage: not an npy v1.0 file")
	}
	var hlen uint16
	if err := binary.Read(r, binary.LittleEndian, &hlen); err != nil {
		return "", nil, fmt.Errorf("storage: cannot read npy header length: %w", err)
	}
	header := make([]byte, hlen)
	if _, err := io.ReadFull(r, header); err != nil {
		return "", nil, fmt.Errorf("storage: cannot read npy header: %w", err)
	}

	m := npyHeaderRe.FindStringSubmatch(string(header))
	if m == nil {
		return "", nil, fmt.Errorf("storage: cannot parse npy header %q", header)
	}
	if m[2] != "False" {
		return "", nil, fmt.Errorf("storage: fortran-order npy arrays are not supported")
	}
	for _, dim := range strings.Split(m[3], ",") {
		dim = strings.TrimSpace(dim)
		if dim == "" {
			continue
		}
		d, err := strconv.Atoi(dim)
		if err != nil {
			return "", nil, fmt.Errorf("storage: bad npy shape dimension %q: %w", dim, err)
		}
		shape = append(shape, d)
	}
	return m[1], shape, nil
}

// WriteFrames writes a frame sequence as a uint8 array of shape
// (len(frames), Size, Size, 3).
func WriteFrames(w io.Writer, frames []frame.Frame) error {
	bw := bufio.NewWriter(w)
	shape := []int{len(frames), frame.Size, frame.Size, 3}
	if err := writeNPYHeader(bw, "|u1", shape); err != nil {
		return fmt.Errorf("storage: cannot write frame header: %w", err)
	}
	for i := range frames {
		if _, err := bw.Write(frames[i].Pix[:]); err != nil {
			return fmt.Errorf("storage: cannot write frame %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadFrames reads a frame sequence previously written by WriteFrames.
// The bytes round-trip exactly.
func ReadFrames(r io.Reader) ([]frame.Frame, error) {
	descr, shape, err := readNPYHeader(r)
	if err != nil {
		return nil, err
	}
	if descr != "|u1" {
		return nil, fmt.Errorf("storage: expected uint8 frames, got descr %q", descr)
	}
	if len(shape) != 4 || shape[1] != frame.Size || shape[2] != frame.Size || shape[3] != 3 {
		return nil, fmt.Errorf("storage: unexpected frame array shape %v", shape)
	}
	frames := make([]frame.Frame, shape[0])
	for i := range frames {
		if _, err := io.ReadFull(r, frames[i].Pix[:]); err != nil {
			return nil, fmt.Errorf("storage: cannot read frame %d: %w", i, err)
		}
	}
	return frames, nil
}

// WriteStates writes the ground-truth factors of a state sequence as a
// float64 array of shape (len(states), 7), in the order documented by
// State.Factors.
func WriteStates(w io.Writer, states []sim.State) error {
	bw := bufio.NewWriter(w)
	if err := writeNPYHeader(bw, "<f8", []int{len(states), 7}); err != nil {
		return fmt.Errorf("storage: cannot write state header: %w", err)
	}
	var buf [8]byte
	for i := range states {
		for _, v := range states[i].Factors() {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			if _, err := bw.Write(buf[:]); err != nil {
				return fmt.Errorf("storage: cannot write state row %d: %w", i, err)
			}
		}
	}
	return bw.Flush()
}

// ReadStateFactors reads a factor array written by WriteStates.
func ReadStateFactors(r io.Reader) ([][7]float64, error) {
	descr, shape, err := readNPYHeader(r)
	if err != nil {
		return nil, err
	}
	if descr != "<f8" {
		return nil, fmt.Errorf("storage: expected float64 factors, got descr %q", descr)
	}
	if len(shape) != 2 || shape[1] != 7 {
		return nil, fmt.Errorf("storage: unexpected factor array shape %v", shape)
	}
	rows := make([][7]float64, shape[0])
	var buf [8]byte
	for i := range rows {
		for j := 0; j < 7; j++ {
			if _, err := io.ReadFull(r, buf[:]); err != nil {
				return nil, fmt.Errorf("storage: cannot read factor row %d: %w", i, err)
			}
			rows[i][j] = math.Float64frombits(binary.LittleEndian.Uint64(buf[:]))
		}
	}
	return rows, nil
}

// SaveFrames writes a frame array to a file, creating it if needed.
func SaveFrames(path string, frames []frame.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage: cannot create %s: %w", path, err)
	}
	if err := WriteFrames(f, frames); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFrames reads a frame array from a file.
func LoadFrames(path string) ([]frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return ReadFrames(bufio.NewReader(f))
}

// SaveStates writes a factor array to a file.
func SaveStates(path string, states []sim.State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage: cannot create %s: %w", path, err)
	}
	if err := WriteStates(f, states); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
