package config

import "math"

// SpawnInterval returns the milliseconds between threat spawns at a given score.
// The interval shrinks by IntervalStepMs for every ScoreStep points and never
// drops below MinIntervalMs.
func (s SpawnConfig) SpawnInterval(score int) float64 {
	step := s.ScoreStep
	if step <= 0 {
		step = 1 // Prevent division by zero
	}
	steps := math.Floor(float64(score) / float64(step))
	return math.Max(s.MinIntervalMs, s.BaseIntervalMs-steps*s.IntervalStepMs)
}

// ThreatSpeed maps a uniform roll in [0,1) to a threat speed.
func (s SpawnConfig) ThreatSpeed(roll, speedMultiplier float64) float64 {
	return (s.BaseSpeed + roll*s.SpeedJitter) * speedMultiplier
}
