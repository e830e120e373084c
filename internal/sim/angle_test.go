package sim

import (
	"math"
	"testing"
)

// angleDiff returns the circular distance between two angles.
func angleDiff(a, b float64) float64 {
	d := math.Abs(WrapAngle(a) - WrapAngle(b))
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

func TestWrapAngleRange(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
	}{
		{"zero", 0},
		{"in range", 1.5},
		{"just below 2pi", 2*math.Pi - 1e-9},
		{"exactly 2pi", 2 * math.Pi},
		{"negative", -0.5},
		{"large negative", -17.3},
		{"large positive", 123.456},
		{"multiple of 2pi", 6 * math.Pi},
		{"negative multiple of 2pi", -4 * math.Pi},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WrapAngle(tc.angle)
			if got < 0 || got >= 2*math.Pi {
				t.Errorf("WrapAngle(%v) = %v, outside [0, 2pi)", tc.angle, got)
			}
			// Wrapping must not change the angle modulo 2pi.
			if d := angleDiff(got, tc.angle); d > 1e-9 {
				t.Errorf("WrapAngle(%v) = %v, changed angle by %v mod 2pi", tc.angle, got, d)
			}
		})
	}
}

func TestWrapAngleIdentityInRange(t *testing.T) {
	for a := 0.0; a < 2*math.Pi; a += 0.1 {
		if got := WrapAngle(a); got != a {
			t.Errorf("WrapAngle(%v) = %v, expected unchanged", a, got)
		}
	}
}

func TestFlipAngleX(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		expected float64
	}{
		{"rightward becomes leftward", 0, math.Pi},
		{"leftward becomes rightward", math.Pi, 0},
		{"upward unchanged", math.Pi / 2, math.Pi / 2},
		{"downward unchanged", 3 * math.Pi / 2, 3 * math.Pi / 2},
		{"diagonal", math.Pi / 4, 3 * math.Pi / 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FlipAngleX(tc.angle)
			if d := angleDiff(got, tc.expected); d > 1e-12 {
				t.Errorf("FlipAngleX(%v) = %v, expected %v", tc.angle, got, tc.expected)
			}
		})
	}
}

func TestFlipAngleY(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		expected float64
	}{
		{"upward becomes downward", math.Pi / 2, 3 * math.Pi / 2},
		{"downward becomes upward", 3 * math.Pi / 2, math.Pi / 2},
		{"rightward unchanged", 0, 0},
		{"leftward unchanged", math.Pi, math.Pi},
		{"diagonal", math.Pi / 4, 7 * math.Pi / 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FlipAngleY(tc.angle)
			if d := angleDiff(got, tc.expected); d > 1e-12 {
				t.Errorf("FlipAngleY(%v) = %v, expected %v", tc.angle, got, tc.expected)
			}
		})
	}
}

func TestFlipAnglesAreInvolutions(t *testing.T) {
	// Flipping twice must restore the angle up to wrap-equivalence.
	for a := -10.0; a < 10.0; a += 0.0837 {
		if d := angleDiff(FlipAngleX(FlipAngleX(a)), a); d > 1e-9 {
			t.Errorf("FlipAngleX twice moved %v by %v", a, d)
		}
		if d := angleDiff(FlipAngleY(FlipAngleY(a)), a); d > 1e-9 {
			t.Errorf("FlipAngleY twice moved %v by %v", a, d)
		}
	}
}

func TestFlipAngleResultsWrapped(t *testing.T) {
	for a := -10.0; a < 10.0; a += 0.1 {
		if got := FlipAngleX(a); got < 0 || got >= 2*math.Pi {
			t.Errorf("FlipAngleX(%v) = %v, outside [0, 2pi)", a, got)
		}
		if got := FlipAngleY(a); got < 0 || got >= 2*math.Pi {
			t.Errorf("FlipAngleY(%v) = %v, outside [0, 2pi)", a, got)
		}
	}
}

func TestFoldPosition(t *testing.T) {
	tests := []struct {
		name     string
		pos      float64
		expected float64
	}{
		{"in range unchanged", 0.5, 0.5},
		{"at upper bound", 1.0, 1.0},
		{"at lower bound", -1.0, -1.0},
		{"above upper", 1.3, 0.7},
		{"below lower", -1.3, -0.7},
		{"far above reflects twice", 3.5, -0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FoldPosition(tc.pos)
			if math.Abs(got-tc.expected) > 1e-12 {
				t.Errorf("FoldPosition(%v) = %v, expected %v", tc.pos, got, tc.expected)
			}
		})
	}
}
