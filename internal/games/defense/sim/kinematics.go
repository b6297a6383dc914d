package sim

import "github.com/vovakirdan/tui-defense/internal/core"

// advance moves an entity one frame towards its target. It returns true when
// the entity arrives; an arrived entity is deactivated and left where it was.
func advance(e *Entity, frameScale float64) bool {
	if !e.Active || !e.HasTarget {
		return false
	}

	moveDistance := e.Speed * frameScale
	if core.Arrived(e.Pos, e.Target, moveDistance) {
		e.Active = false
		return true
	}

	dir, _ := core.Direction(e.Pos, e.Target)
	e.Pos = e.Pos.Add(dir.Scale(moveDistance))
	return false
}

// moveMissiles advances interceptors and detonates those that arrive.
func moveMissiles(w *World, ctx *stepContext) {
	for i := range w.Missiles {
		m := &w.Missiles[i]
		if advance(m, ctx.frameScale) {
			spawnPlayerBlast(w, ctx, m.Target, m.ID)
		}
	}
}

// moveThreats advances threats and resolves ground impacts on arrival.
func moveThreats(w *World, ctx *stepContext) {
	for i := range w.Threats {
		t := &w.Threats[i]
		if advance(t, ctx.frameScale) {
			resolveImpact(w, ctx, t.Target, t.ID)
			spawnThreatBlast(w, ctx, t.Target, t.ID)
		}
	}
}
