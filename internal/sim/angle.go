package sim

import "math"

// WrapAngle normalizes an angle into [0, 2*pi) by repeated shifts of
// 2*pi. Works for any finite input.
func WrapAngle(angle float64) float64 {
	for angle < 0 {
		angle += 2 * math.Pi
	}
	for angle >= 2*math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}

// FlipAngleX reflects a velocity angle for a bounce off a vertical wall
// (the ball's x component reverses).
func FlipAngleX(angle float64) float64 {
	return WrapAngle(math.Pi - angle)
}

// FlipAngleY reflects a velocity angle for a bounce off a horizontal
// wall. Expressed as: rotate the frame by +pi/2, apply the vertical-wall
// flip, rotate back by -pi/2, wrapping at every sub-step. The wrap at
// each sub-step matters; this is not equivalent to negating the angle.
func FlipAngleY(angle float64) float64 {
	angle = WrapAngle(angle + 0.5*math.Pi)
	angle = WrapAngle(math.Pi - angle)
	return WrapAngle(angle - 0.5*math.Pi)
}

// FoldPosition mirrors an out-of-range relative coordinate back into
// [-1, 1] around the boundary it crossed. In-range inputs pass through
// unchanged. The two branches chain, so a large positive overshoot can
// reflect off both walls.
func FoldPosition(pos float64) float64 {
	if pos > 1 {
		pos = 2 - pos
	}
	if pos < -1 {
		pos = -2 - pos
	}
	return pos
}

// clampUnit restricts a value to [-1, 1].
func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
