package sim

import (
	"testing"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
)

// scriptedRand replays fixed draws and then repeats the last one.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	if len(r.floats) > 1 {
		r.floats = r.floats[1:]
	}
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	if len(r.ints) > 1 {
		r.ints = r.ints[1:]
	}
	return v % n
}

func newPlayingEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(config.DefaultDefenseConfig(), 12345)
	e.StartSession(config.ProfileNormal)
	return e
}

// refDt is one reference frame, so frame scale is exactly 1.
func refDt(e *Engine) float64 {
	return e.cfg.Playfield.FrameMs
}

func newCtx(e *Engine) *stepContext {
	return &stepContext{
		cfg:        &e.cfg,
		tuning:     e.cfg.Tuning(e.world.State.Mode),
		rng:        e.rng,
		frameScale: 1,
	}
}

func threatAt(id EntityID, pos, target core.Vec2, speed float64) Entity {
	return Entity{
		ID:        id,
		Kind:      KindThreat,
		Pos:       pos,
		StartPos:  pos,
		Target:    target,
		HasTarget: true,
		Speed:     speed,
		Active:    true,
	}
}

func playerBlastAt(id EntityID, pos core.Vec2, radius float64) Entity {
	return Entity{
		ID:         id,
		Kind:       KindExplosion,
		Pos:        pos,
		Radius:     radius,
		MaxRadius:  96,
		GrowthRate: 3,
		Class:      BlastPlayer,
		Active:     true,
	}
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
