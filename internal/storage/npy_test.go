package storage

import (
	"bytes"
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/jimgammell/pong-datagen/internal/frame"
	"github.com/jimgammell/pong-datagen/internal/sim"
	"github.com/jimgammell/pong-datagen/internal/trajectory"
)

func sampleTrajectory(t *testing.T, steps int) *trajectory.Trajectory {
	t.Helper()
	gen := &trajectory.Generator{Params: sim.DefaultParams(), Steps: steps}
	traj, err := gen.Generate(11)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	return traj
}

func TestFramesRoundTrip(t *testing.T) {
	traj := sampleTrajectory(t, 20)

	var buf bytes.Buffer
	if err := WriteFrames(&buf, traj.Frames); err != nil {
		t.Fatalf("WriteFrames() failed: %v", err)
	}

	got, err := ReadFrames(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadFrames() failed: %v", err)
	}
	if len(got) != len(traj.Frames) {
		t.Fatalf("got %d frames, expected %d", len(got), len(traj.Frames))
	}
	for i := range got {
		if !got[i].Equal(&traj.Frames[i]) {
			t.Fatalf("frame %d changed across the round trip", i)
		}
	}
}

func TestFramesRoundTripBytesIdentical(t *testing.T) {
	traj := sampleTrajectory(t, 5)

	var a, b bytes.Buffer
	if err := WriteFrames(&a, traj.Frames); err != nil {
		t.Fatalf("WriteFrames() failed: %v", err)
	}
	frames, err := ReadFrames(bytes.NewReader(a.Bytes()))
	if err != nil {
		t.Fatalf("ReadFrames() failed: %v", err)
	}
	if err := WriteFrames(&b, frames); err != nil {
		t.Fatalf("WriteFrames() failed: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("write-read-write is not byte-for-byte identical")
	}
}

func TestNPYHeaderLayout(t *testing.T) {
	traj := sampleTrajectory(t, 3)
	var buf bytes.Buffer
	if err := WriteFrames(&buf, traj.Frames); err != nil {
		t.Fatalf("WriteFrames() failed: %v", err)
	}

	data := buf.Bytes()
	if !bytes.HasPrefix(data, []byte("\x93NUMPY\x01\x00")) {
		t.Error("missing npy magic")
	}
	hlen := int(data[8]) | int(data[9])<<8
	// Data section starts on a 64-byte boundary per the npy spec.
	if offset := 10 + hlen; offset%64 != 0 {
		t.Errorf("data offset %d is not 64-byte aligned", offset)
	}
	want := 3 * frame.Size * frame.Size * 3
	if got := len(data) - 10 - hlen; got != want {
		t.Errorf("data section is %d bytes, expected %d", got, want)
	}
}

func TestReadFramesRejectsGarbage(t *testing.T) {
	if _, err := ReadFrames(bytes.NewReader([]byte("not an npy file at all"))); err == nil {
		t.Error("expected error for non-npy input")
	}
}

func TestStatesRoundTrip(t *testing.T) {
	traj := sampleTrajectory(t, 15)

	var buf bytes.Buffer
	if err := WriteStates(&buf, traj.States); err != nil {
		t.Fatalf("WriteStates() failed: %v", err)
	}
	rows, err := ReadStateFactors(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadStateFactors() failed: %v", err)
	}
	if len(rows) != len(traj.States) {
		t.Fatalf("got %d rows, expected %d", len(rows), len(traj.States))
	}
	for i := range rows {
		want := traj.States[i].Factors()
		for j := range want {
			if rows[i][j] != want[j] {
				t.Fatalf("row %d factor %d = %v, expected %v", i, j, rows[i][j], want[j])
			}
		}
	}
}

func TestStatesPreserveExactFloats(t *testing.T) {
	// Bit-exact persistence, including awkward values.
	s := sim.State{BallX: math.Nextafter(1, 0), BallY: -0.3, BallAngle: math.Pi, BallSpeed: 0.2}
	var buf bytes.Buffer
	if err := WriteStates(&buf, []sim.State{s}); err != nil {
		t.Fatalf("WriteStates() failed: %v", err)
	}
	rows, err := ReadStateFactors(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadStateFactors() failed: %v", err)
	}
	if rows[0][0] != s.BallX || rows[0][2] != math.Pi {
		t.Error("float bits changed across the round trip")
	}
}

func TestSaveLoadFrames(t *testing.T) {
	traj := sampleTrajectory(t, 10)
	path := filepath.Join(t.TempDir(), "t0.npy")

	if err := SaveFrames(path, traj.Frames); err != nil {
		t.Fatalf("SaveFrames() failed: %v", err)
	}
	got, err := LoadFrames(path)
	if err != nil {
		t.Fatalf("LoadFrames() failed: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("got %d frames, expected 10", len(got))
	}
	for i := range got {
		if !got[i].Equal(&traj.Frames[i]) {
			t.Fatalf("frame %d changed across file round trip", i)
		}
	}
}

func TestWriteFramesEmptySequence(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrames(&buf, nil); err != nil {
		t.Fatalf("WriteFrames(nil) failed: %v", err)
	}
	got, err := ReadFrames(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadFrames() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d frames, expected 0", len(got))
	}
}

func TestFramesLargeSequence(t *testing.T) {
	// A full default-length run stays intact.
	rng := rand.New(rand.NewSource(3))
	frames := make([]frame.Frame, 100)
	for i := range frames {
		for j := range frames[i].Pix {
			frames[i].Pix[j] = uint8(rng.Intn(256))
		}
	}

	var buf bytes.Buffer
	if err := WriteFrames(&buf, frames); err != nil {
		t.Fatalf("WriteFrames() failed: %v", err)
	}
	got, err := ReadFrames(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadFrames() failed: %v", err)
	}
	for i := range got {
		if !got[i].Equal(&frames[i]) {
			t.Fatalf("frame %d corrupted", i)
		}
	}
}
