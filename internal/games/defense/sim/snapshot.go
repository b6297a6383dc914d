package sim

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Snapshot is a read-only copy of the world, detached from the engine.
// Restoring a snapshot taken with the built-in RNG reproduces every later
// frame exactly, given the same launches and deltas.
type Snapshot struct {
	State        SimulationState `yaml:"state"`
	Batteries    []Battery       `yaml:"batteries"`
	Structures   []Structure     `yaml:"structures"`
	Missiles     []Entity        `yaml:"missiles"`
	Threats      []Entity        `yaml:"threats"`
	Explosions   []Entity        `yaml:"explosions"`
	SpawnAccumMs float64         `yaml:"spawn_accum_ms"`
	NextID       EntityID        `yaml:"next_id"`
	Frame        uint64          `yaml:"frame"`
	RNGState     uint64          `yaml:"rng_state"`
}

// Snapshot copies the current world.
func (e *Engine) Snapshot() Snapshot {
	w := &e.world
	snap := Snapshot{
		State:        w.State,
		Batteries:    append([]Battery(nil), w.Batteries...),
		Structures:   append([]Structure(nil), w.Structures...),
		Missiles:     append([]Entity(nil), w.Missiles...),
		Threats:      append([]Entity(nil), w.Threats...),
		Explosions:   append([]Entity(nil), w.Explosions...),
		SpawnAccumMs: w.SpawnAccumMs,
		NextID:       w.NextID,
		Frame:        w.Frame,
	}
	if e.builtin != nil {
		snap.RNGState = e.builtin.State()
	}
	return snap
}

// Restore replaces the world with a copy of snap. Pending launch events are
// dropped.
func (e *Engine) Restore(snap Snapshot) {
	e.world = World{
		State:        snap.State,
		Batteries:    append([]Battery(nil), snap.Batteries...),
		Structures:   append([]Structure(nil), snap.Structures...),
		Missiles:     append([]Entity(nil), snap.Missiles...),
		Threats:      append([]Entity(nil), snap.Threats...),
		Explosions:   append([]Entity(nil), snap.Explosions...),
		SpawnAccumMs: snap.SpawnAccumMs,
		NextID:       snap.NextID,
		Frame:        snap.Frame,
	}
	if e.builtin != nil {
		e.builtin.SetState(snap.RNGState)
	}
	e.pending = nil
}

// Marshal encodes the snapshot as YAML.
func (snap Snapshot) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("sim: marshal snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a snapshot produced by Marshal.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("sim: unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	h = h*31 + uint64(snap.State.Score)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.State.Mode)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.State.Status) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.SpawnAccumMs)
	h = h*31 + uint64(snap.NextID)

	for _, b := range snap.Batteries {
		h = h*31 + uint64(b.Missiles) //#nosec G115 -- hash computation
		h = h*31 + boolBit(b.Destroyed)
	}
	for _, s := range snap.Structures {
		h = h*31 + boolBit(s.Destroyed)
	}
	for _, list := range [][]Entity{snap.Missiles, snap.Threats, snap.Explosions} {
		h = h*31 + uint64(len(list))
		for _, e := range list {
			h = h*31 + uint64(e.ID)
			h = h*31 + math.Float64bits(e.Pos.X)
			h = h*31 + math.Float64bits(e.Pos.Y)
			h = h*31 + math.Float64bits(e.Radius)
			h = h*31 + math.Float64bits(e.Speed)
			h = h*31 + math.Float64bits(e.Target.X)
			h = h*31 + math.Float64bits(e.Target.Y)
			h = h*31 + boolBit(e.HasTarget)
			h = h*31 + math.Float64bits(e.StartPos.X)
			h = h*31 + math.Float64bits(e.StartPos.Y)
			h = h*31 + boolBit(e.Active)
			h = h*31 + boolBit(e.Shrinking)
			h = h*31 + math.Float64bits(e.GrowthRate)
			h = h*31 + math.Float64bits(e.MaxRadius)
			h = h*31 + uint64(e.Class)
		}
	}

	h = h*31 + snap.RNGState

	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
