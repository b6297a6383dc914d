package sim

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
)

// EntityID identifies a dynamic entity for the lifetime of a session.
// IDs are allocated from a per-world counter starting at 1.
type EntityID uint64

// Kind discriminates the dynamic entity variants sharing the Entity record.
type Kind uint8

const (
	KindMissile   Kind = iota // Player interceptor
	KindThreat                // Enemy ordnance
	KindExplosion             // Blast of either class
)

// String returns a short name for logs.
func (k Kind) String() string {
	switch k {
	case KindMissile:
		return "missile"
	case KindThreat:
		return "threat"
	case KindExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// BlastClass tags an explosion with its origin. Only player blasts kill threats.
type BlastClass uint8

const (
	BlastPlayer BlastClass = iota
	BlastThreat
)

// Entity is the shared record for missiles, threats and explosions.
// Which fields are meaningful depends on Kind.
type Entity struct {
	ID        EntityID   `yaml:"id"`
	Kind      Kind       `yaml:"kind"`
	Pos       core.Vec2  `yaml:"pos"`
	Target    core.Vec2  `yaml:"target"`
	HasTarget bool       `yaml:"has_target"`
	StartPos  core.Vec2  `yaml:"start_pos"` // Trail origin, presentation only
	Speed     float64    `yaml:"speed"`     // Units per reference frame
	Radius    float64    `yaml:"radius"`
	Color     core.Color `yaml:"color"`
	Active    bool       `yaml:"active"`

	// Explosion fields
	MaxRadius  float64    `yaml:"max_radius,omitempty"`
	GrowthRate float64    `yaml:"growth_rate,omitempty"`
	Shrinking  bool       `yaml:"shrinking,omitempty"`
	Class      BlastClass `yaml:"class,omitempty"`
	Source     EntityID   `yaml:"source,omitempty"` // Missile that produced a player blast
}

// Battery is a player launch site with its own ammo pool.
type Battery struct {
	ID          int       `yaml:"id"`
	Pos         core.Vec2 `yaml:"pos"`
	Missiles    int       `yaml:"missiles"`
	MaxMissiles int       `yaml:"max_missiles"`
	Destroyed   bool      `yaml:"destroyed"`
}

// Eligible reports whether the battery can launch right now.
func (b Battery) Eligible() bool {
	return !b.Destroyed && b.Missiles > 0
}

// Structure is a protected city.
type Structure struct {
	ID        int       `yaml:"id"`
	Pos       core.Vec2 `yaml:"pos"`
	Destroyed bool      `yaml:"destroyed"`
}

// Status is the coarse game state.
type Status uint8

const (
	StatusNotStarted Status = iota
	StatusPlaying
	StatusWon
	StatusLost
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has ended.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// MarshalYAML encodes the status by name.
func (s Status) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML decodes a status name.
func (s *Status) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	for _, candidate := range []Status{StatusNotStarted, StatusPlaying, StatusWon, StatusLost} {
		if candidate.String() == name {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("sim: unknown status %q", name)
}

// SimulationState holds score and session status.
type SimulationState struct {
	Score  int            `yaml:"score"`
	Level  int            `yaml:"level"` // Reserved; never changed by the simulation
	Mode   config.Profile `yaml:"mode"`
	Status Status         `yaml:"status"`
}

// World is the complete mutable simulation state. One World is owned by one
// Engine and threaded through every phase of a step.
type World struct {
	State        SimulationState
	Batteries    []Battery
	Structures   []Structure
	Missiles     []Entity
	Threats      []Entity
	Explosions   []Entity
	SpawnAccumMs float64
	NextID       EntityID
	Frame        uint64
}

// newID allocates the next entity identifier.
func (w *World) newID() EntityID {
	w.NextID++
	return w.NextID
}

// resetLayout restores batteries and structures from the configured layout.
func (w *World) resetLayout(layout config.LayoutConfig) {
	w.Batteries = make([]Battery, len(layout.Batteries))
	for i, spec := range layout.Batteries {
		w.Batteries[i] = Battery{
			ID:          i + 1,
			Pos:         core.V(spec.X, spec.Y),
			Missiles:    spec.Missiles,
			MaxMissiles: spec.Missiles,
		}
	}

	w.Structures = make([]Structure, len(layout.Structures))
	for i, spec := range layout.Structures {
		w.Structures[i] = Structure{
			ID:  i + 1,
			Pos: core.V(spec.X, spec.Y),
		}
	}
}

// clearDynamic drops all missiles, threats and explosions.
func (w *World) clearDynamic() {
	w.Missiles = w.Missiles[:0]
	w.Threats = w.Threats[:0]
	w.Explosions = w.Explosions[:0]
}

// allBatteriesDestroyed reports whether no battery survives.
func (w *World) allBatteriesDestroyed() bool {
	for _, b := range w.Batteries {
		if !b.Destroyed {
			return false
		}
	}
	return true
}

// StructuresStanding counts non-destroyed structures.
func (w *World) StructuresStanding() int {
	n := 0
	for _, s := range w.Structures {
		if !s.Destroyed {
			n++
		}
	}
	return n
}
