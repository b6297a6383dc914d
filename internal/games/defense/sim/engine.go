// Package sim implements the frame-driven missile defense simulation.
// It has no rendering, audio or input dependencies: hosts feed it launch
// targets and frame timestamps, and read back snapshots and events.
//
// Each step runs its phases in a fixed order:
//
//  1. Spawn threats on the pacing timer
//  2. Move interceptors (arrivals detonate)
//  3. Move threats (arrivals hit the ground)
//  4. Test threats against player blasts
//  5. Grow and shrink explosions
//  6. Prune inactive entities
//  7. Evaluate win and loss
package sim

import (
	"math"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
)

// Engine owns one World and advances it step by step.
// It is not safe for concurrent use.
type Engine struct {
	cfg     config.DefenseConfig
	world   World
	rng     Rand
	builtin *RNG // Non-nil while rng is the snapshot-able generator
	pending []Event
}

// stepContext carries per-step parameters through the phase functions.
type stepContext struct {
	cfg        *config.DefenseConfig
	tuning     config.ProfileTuning
	rng        Rand
	frameScale float64
	frame      uint64
	events     []Event
}

func (c *stepContext) emit(ev Event) {
	ev.Frame = c.frame
	c.events = append(c.events, ev)
}

// NewEngine creates an engine in the NOT_STARTED state.
func NewEngine(cfg config.DefenseConfig, seed int64) *Engine {
	rng := NewRNG(seed)
	e := &Engine{
		cfg:     cfg,
		rng:     rng,
		builtin: rng,
	}
	e.world.resetLayout(cfg.Layout)
	e.world.State.Mode = config.ProfileNormal
	return e
}

// SetRand replaces the random source. Snapshots taken afterwards do not
// capture the state of a custom source.
func (e *Engine) SetRand(r Rand) {
	e.rng = r
	if b, ok := r.(*RNG); ok {
		e.builtin = b
	} else {
		e.builtin = nil
	}
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.DefenseConfig {
	return e.cfg
}

// StartSession begins a fresh session with the given profile, discarding all
// previous state regardless of the current status.
func (e *Engine) StartSession(p config.Profile) {
	w := &e.world
	w.State = SimulationState{Mode: p, Status: StatusPlaying}
	w.resetLayout(e.cfg.Layout)
	w.clearDynamic()
	w.SpawnAccumMs = 0
	w.Frame = 0
	e.pending = e.pending[:0]
}

// Restart starts a new session with the current profile.
func (e *Engine) Restart() {
	e.StartSession(e.world.State.Mode)
}

// Reset returns the engine to NOT_STARTED with a full layout.
func (e *Engine) Reset() {
	e.StartSession(e.world.State.Mode)
	e.world.State.Status = StatusNotStarted
}

// Launch fires an interceptor from the eligible battery horizontally closest
// to target. It returns false when the session is not playing, the target is
// not a finite point or no battery can fire.
func (e *Engine) Launch(target core.Vec2) bool {
	w := &e.world
	if w.State.Status != StatusPlaying {
		return false
	}
	if !finite(target.X) || !finite(target.Y) {
		return false
	}

	best := -1
	bestDX := math.Inf(1)
	for i, b := range w.Batteries {
		if !b.Eligible() {
			continue
		}
		if dx := math.Abs(b.Pos.X - target.X); dx < bestDX {
			best, bestDX = i, dx
		}
	}
	if best < 0 {
		return false
	}

	b := &w.Batteries[best]
	b.Missiles--
	tuning := e.cfg.Tuning(w.State.Mode)
	m := Entity{
		ID:        w.newID(),
		Kind:      KindMissile,
		Pos:       b.Pos,
		StartPos:  b.Pos,
		Target:    target,
		HasTarget: true,
		Speed:     e.cfg.Interceptor.Speed * tuning.SpeedMultiplier,
		Radius:    2,
		Color:     core.ColorBrightCyan,
		Active:    true,
	}
	w.Missiles = append(w.Missiles, m)
	e.pending = append(e.pending, Event{
		Kind:   EventMissileLaunched,
		Frame:  w.Frame,
		Pos:    b.Pos,
		Entity: m.ID,
		Index:  b.ID,
	})
	return true
}

// Step advances the simulation by dtMs milliseconds and returns the events
// raised since the previous step, including launches. Outside PLAYING, and
// when no time has passed, the world is left untouched.
func (e *Engine) Step(dtMs float64) []Event {
	events := e.DrainEvents()

	w := &e.world
	if w.State.Status != StatusPlaying {
		return events
	}
	// No time passed
	if dtMs <= 0 || !finite(dtMs) {
		return events
	}

	w.Frame++
	ctx := &stepContext{
		cfg:        &e.cfg,
		tuning:     e.cfg.Tuning(w.State.Mode),
		rng:        e.rng,
		frameScale: dtMs / e.cfg.Playfield.FrameMs,
		frame:      w.Frame,
		events:     events,
	}

	spawnPhase(w, ctx, dtMs)
	moveMissiles(w, ctx)
	moveThreats(w, ctx)
	collidePhase(w, ctx)
	explosionPhase(w, ctx)
	prune(w)
	evaluateStatus(w, ctx)

	return ctx.events
}

// DrainEvents returns events queued by Launch without stepping.
func (e *Engine) DrainEvents() []Event {
	events := e.pending
	e.pending = nil
	return events
}

// Status returns the coarse session status.
func (e *Engine) Status() Status {
	return e.world.State.Status
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.world.State.Score
}

// Profile returns the active tuning profile.
func (e *Engine) Profile() config.Profile {
	return e.world.State.Mode
}

// Frame returns the number of simulated steps in this session.
func (e *Engine) Frame() uint64 {
	return e.world.Frame
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
