// Package config provides YAML-based game configuration loading and
// tuning-profile management for the defense game.
package config

import (
	"errors"
	"fmt"
)

// DefenseConfig contains all tunable constants of the simulation.
type DefenseConfig struct {
	Playfield   PlayfieldConfig          `yaml:"playfield"`
	Spawn       SpawnConfig              `yaml:"spawn"`
	Interceptor InterceptorConfig        `yaml:"interceptor"`
	Explosions  ExplosionConfig          `yaml:"explosions"`
	Impact      ImpactConfig             `yaml:"impact"`
	Scoring     ScoringConfig            `yaml:"scoring"`
	Layout      LayoutConfig             `yaml:"layout"`
	Profiles    map[string]ProfileTuning `yaml:"profiles"`
}

// PlayfieldConfig defines the logical coordinate space of the simulation.
type PlayfieldConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	FrameMs float64 `yaml:"frame_ms"` // Reference frame interval (60fps)
}

// SpawnConfig defines threat pacing and initial threat kinematics.
type SpawnConfig struct {
	BaseIntervalMs float64 `yaml:"base_interval_ms"`
	MinIntervalMs  float64 `yaml:"min_interval_ms"`
	IntervalStepMs float64 `yaml:"interval_step_ms"` // Interval reduction per score step
	ScoreStep      int     `yaml:"score_step"`       // Points per interval reduction
	SpawnY         float64 `yaml:"spawn_y"`
	BaseSpeed      float64 `yaml:"base_speed"`
	SpeedJitter    float64 `yaml:"speed_jitter"`
}

// InterceptorConfig defines player missile parameters.
type InterceptorConfig struct {
	Speed float64 `yaml:"speed"` // Units per reference frame before the profile multiplier
}

// ExplosionConfig defines blast sizes and growth rates.
type ExplosionConfig struct {
	PlayerMaxRadius float64 `yaml:"player_max_radius"`
	PlayerGrowth    float64 `yaml:"player_growth"`
	ThreatMaxRadius float64 `yaml:"threat_max_radius"`
	ThreatGrowth    float64 `yaml:"threat_growth"`
	ShrinkFactor    float64 `yaml:"shrink_factor"` // Shrink rate as a fraction of growth
	HitMargin       float64 `yaml:"hit_margin"`    // Extra reach beyond the visual radius
}

// ImpactConfig defines the half-widths of the ground-impact boxes.
type ImpactConfig struct {
	StructureRange float64 `yaml:"structure_range"`
	BatteryRange   float64 `yaml:"battery_range"`
}

// ScoringConfig defines points and the win threshold.
type ScoringConfig struct {
	PointsPerKill int `yaml:"points_per_kill"`
	WinScore      int `yaml:"win_score"`
}

// LayoutConfig lists the fixed ground installations.
type LayoutConfig struct {
	Batteries  []BatterySpec   `yaml:"batteries"`
	Structures []StructureSpec `yaml:"structures"`
}

// BatterySpec describes one launch site.
type BatterySpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Missiles int     `yaml:"missiles"`
}

// StructureSpec describes one protected city.
type StructureSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Validate checks that the configuration can drive a simulation.
func (c DefenseConfig) Validate() error {
	var errs []error

	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		errs = append(errs, fmt.Errorf("playfield must be positive, got %gx%g", c.Playfield.Width, c.Playfield.Height))
	}
	if c.Playfield.FrameMs <= 0 {
		errs = append(errs, fmt.Errorf("playfield.frame_ms must be positive, got %g", c.Playfield.FrameMs))
	}
	if c.Spawn.MinIntervalMs <= 0 || c.Spawn.BaseIntervalMs < c.Spawn.MinIntervalMs {
		errs = append(errs, fmt.Errorf("spawn intervals invalid: base=%g min=%g", c.Spawn.BaseIntervalMs, c.Spawn.MinIntervalMs))
	}
	if c.Spawn.ScoreStep <= 0 {
		errs = append(errs, fmt.Errorf("spawn.score_step must be positive, got %d", c.Spawn.ScoreStep))
	}
	if c.Explosions.PlayerGrowth <= 0 || c.Explosions.ThreatGrowth <= 0 || c.Explosions.ShrinkFactor <= 0 {
		errs = append(errs, errors.New("explosion growth and shrink rates must be positive"))
	}
	if c.Explosions.PlayerMaxRadius <= 0 || c.Explosions.ThreatMaxRadius <= 0 {
		errs = append(errs, errors.New("explosion max radii must be positive"))
	}
	if c.Interceptor.Speed <= 0 {
		errs = append(errs, fmt.Errorf("interceptor.speed must be positive, got %g", c.Interceptor.Speed))
	}
	if len(c.Layout.Batteries) == 0 {
		errs = append(errs, errors.New("layout needs at least one battery"))
	}
	for i, b := range c.Layout.Batteries {
		if b.Missiles < 0 {
			errs = append(errs, fmt.Errorf("battery %d has negative missiles", i))
		}
	}
	for _, p := range AllProfiles() {
		if _, ok := c.Profiles[p.String()]; !ok {
			errs = append(errs, fmt.Errorf("missing tuning for profile %q", p))
		}
	}
	for name, t := range c.Profiles {
		if _, ok := ParseProfile(name); !ok {
			errs = append(errs, fmt.Errorf("unknown profile %q", name))
		}
		if t.SpeedMultiplier <= 0 || t.PowerMultiplier <= 0 {
			errs = append(errs, fmt.Errorf("profile %q multipliers must be positive", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid defense config: %w", errors.Join(errs...))
	}
	return nil
}

// Tuning returns the multipliers for a profile, falling back to neutral ones.
func (c DefenseConfig) Tuning(p Profile) ProfileTuning {
	if t, ok := c.Profiles[p.String()]; ok {
		return t
	}
	return ProfileTuning{SpeedMultiplier: 1, PowerMultiplier: 1}
}
