package config

import (
	_ "embed"
)

//go:embed defaults/defense.yaml
var defaultDefenseYAML []byte

// DefaultDefenseConfig returns the built-in configuration.
// It mirrors defaults/defense.yaml and is used when the embedded file fails to parse.
func DefaultDefenseConfig() DefenseConfig {
	return DefenseConfig{
		Playfield: PlayfieldConfig{
			Width:   800,
			Height:  600,
			FrameMs: 16.67,
		},
		Spawn: SpawnConfig{
			BaseIntervalMs: 2000,
			MinIntervalMs:  500,
			IntervalStepMs: 100,
			ScoreStep:      100,
			SpawnY:         -20,
			BaseSpeed:      0.8,
			SpeedJitter:    0.6,
		},
		Interceptor: InterceptorConfig{
			Speed: 7,
		},
		Explosions: ExplosionConfig{
			PlayerMaxRadius: 96,
			PlayerGrowth:    3.0,
			ThreatMaxRadius: 36,
			ThreatGrowth:    2.4,
			ShrinkFactor:    0.5,
			HitMargin:       10,
		},
		Impact: ImpactConfig{
			StructureRange: 25,
			BatteryRange:   35,
		},
		Scoring: ScoringConfig{
			PointsPerKill: 20,
			WinScore:      1000,
		},
		Layout: LayoutConfig{
			Batteries: []BatterySpec{
				{X: 100, Y: 560, Missiles: 15},
				{X: 400, Y: 560, Missiles: 15},
				{X: 700, Y: 560, Missiles: 15},
			},
			Structures: []StructureSpec{
				{X: 200, Y: 560},
				{X: 300, Y: 560},
				{X: 500, Y: 560},
				{X: 600, Y: 560},
			},
		},
		Profiles: map[string]ProfileTuning{
			"easy":   {SpeedMultiplier: 0.7, PowerMultiplier: 1.3},
			"normal": {SpeedMultiplier: 1.0, PowerMultiplier: 1.0},
			"hard":   {SpeedMultiplier: 1.3, PowerMultiplier: 0.9},
			"expert": {SpeedMultiplier: 1.6, PowerMultiplier: 0.8},
			"insane": {SpeedMultiplier: 2.0, PowerMultiplier: 0.7},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDefenseYAML
}
