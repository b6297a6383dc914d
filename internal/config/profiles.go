package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is one of the fixed tuning presets.
type Profile int

const (
	ProfileEasy Profile = iota
	ProfileNormal
	ProfileHard
	ProfileExpert
	ProfileInsane
)

// ProfileTuning bundles the two knobs a profile exposes to the simulation.
type ProfileTuning struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Applied to threat and interceptor speed
	PowerMultiplier float64 `yaml:"power_multiplier"` // Applied to player blast radius
}

// AllProfiles returns every profile in menu order.
func AllProfiles() []Profile {
	return []Profile{ProfileEasy, ProfileNormal, ProfileHard, ProfileExpert, ProfileInsane}
}

// String returns the profile key used in YAML, game IDs and the CLI.
func (p Profile) String() string {
	switch p {
	case ProfileEasy:
		return "easy"
	case ProfileNormal:
		return "normal"
	case ProfileHard:
		return "hard"
	case ProfileExpert:
		return "expert"
	case ProfileInsane:
		return "insane"
	default:
		return "unknown"
	}
}

// Title returns a display name for menus.
func (p Profile) Title() string {
	switch p {
	case ProfileEasy:
		return "Easy"
	case ProfileNormal:
		return "Normal"
	case ProfileHard:
		return "Hard"
	case ProfileExpert:
		return "Expert"
	case ProfileInsane:
		return "Insane"
	default:
		return "Unknown"
	}
}

// ParseProfile resolves a profile name (case-insensitive).
func ParseProfile(s string) (Profile, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return ProfileEasy, true
	case "normal", "":
		return ProfileNormal, true
	case "hard":
		return ProfileHard, true
	case "expert":
		return ProfileExpert, true
	case "insane":
		return ProfileInsane, true
	default:
		return ProfileNormal, false
	}
}

// MarshalYAML encodes the profile by name.
func (p Profile) MarshalYAML() (any, error) {
	return p.String(), nil
}

// UnmarshalYAML decodes a profile name.
func (p *Profile) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, ok := ParseProfile(name)
	if !ok {
		return fmt.Errorf("config: unknown profile %q", name)
	}
	*p = parsed
	return nil
}
