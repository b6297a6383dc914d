package sim

import "github.com/vovakirdan/tui-defense/internal/core"

// resolveImpact destroys every standing structure and battery whose impact
// box contains the point. One impact may take out several installations.
func resolveImpact(w *World, ctx *stepContext, at core.Vec2, threat EntityID) {
	ctx.emit(Event{Kind: EventThreatImpact, Pos: at, Entity: threat})

	for i := range w.Structures {
		s := &w.Structures[i]
		if s.Destroyed || !core.WithinBox(s.Pos, at, ctx.cfg.Impact.StructureRange) {
			continue
		}
		s.Destroyed = true
		ctx.emit(Event{Kind: EventStructureDestroyed, Pos: s.Pos, Entity: threat, Index: s.ID})
	}

	for i := range w.Batteries {
		b := &w.Batteries[i]
		if b.Destroyed || !core.WithinBox(b.Pos, at, ctx.cfg.Impact.BatteryRange) {
			continue
		}
		b.Destroyed = true
		ctx.emit(Event{Kind: EventBatteryDestroyed, Pos: b.Pos, Entity: threat, Index: b.ID})
	}
}

// collidePhase kills threats caught inside active player blasts. A threat
// scores at most once; blasts are never consumed by a kill.
func collidePhase(w *World, ctx *stepContext) {
	for i := range w.Threats {
		t := &w.Threats[i]
		for j := range w.Explosions {
			if !t.Active {
				break
			}
			ex := &w.Explosions[j]
			if !ex.Active || ex.Class != BlastPlayer {
				continue
			}
			if core.Dist(t.Pos, ex.Pos) < ex.Radius+ctx.cfg.Explosions.HitMargin {
				t.Active = false
				w.State.Score += ctx.cfg.Scoring.PointsPerKill
				ctx.emit(Event{Kind: EventThreatDestroyed, Pos: t.Pos, Entity: t.ID})
			}
		}
	}
}
