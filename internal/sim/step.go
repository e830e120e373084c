package sim

import "math"

// NoiseSource supplies standard-normal draws for the stochastic parts of
// a step. *math/rand.Rand satisfies it directly; tests substitute fixed
// sequences. Passing the source explicitly keeps trajectories
// reproducible from a seed, with no hidden process-wide generator.
type NoiseSource interface {
	NormFloat64() float64
}

// Advance mutates the state by exactly one timestep:
//
//  1. Move the ball along its velocity plus position noise, and jitter
//     the velocity angle.
//  2. Reflect off the walls, x axis before y axis. Reflection folds the
//     position back into [-1, 1] and flips the velocity angle; both axes
//     may reflect in the same step.
//  3. Track each paddle halfway toward the ball's y with independent
//     noise, clamped to [-1, 1].
//  4. Increment the timestep counter.
//
// There are no error conditions: construction and clamping keep every
// field in its valid range.
func Advance(s *State, src NoiseSource) {
	dx := math.Cos(s.BallAngle) * s.BallSpeed
	dy := math.Sin(s.BallAngle) * s.BallSpeed
	s.BallX += dx + s.BallNoise*src.NormFloat64()
	s.BallY += dy + s.BallNoise*src.NormFloat64()
	s.BallAngle = WrapAngle(s.BallAngle + s.BallNoise*src.NormFloat64())

	if s.BallX < -1 || s.BallX > 1 {
		s.BallX = FoldPosition(s.BallX)
		s.BallAngle = FlipAngleX(s.BallAngle)
	}
	if s.BallY < -1 || s.BallY > 1 {
		s.BallY = FoldPosition(s.BallY)
		s.BallAngle = FlipAngleY(s.BallAngle)
	}

	proDelta := 0.5 * (s.BallY - s.ProPaddleY)
	s.ProPaddleY = clampUnit(s.ProPaddleY + proDelta + s.PaddleNoise*src.NormFloat64())
	antDelta := 0.5 * (s.BallY - s.AntPaddleY)
	s.AntPaddleY = clampUnit(s.AntPaddleY + antDelta + s.PaddleNoise*src.NormFloat64())

	s.Timestep++
}
