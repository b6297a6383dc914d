package sim

import "github.com/vovakirdan/tui-defense/internal/core"

// spawnPlayerBlast detonates an interceptor at its commanded point.
func spawnPlayerBlast(w *World, ctx *stepContext, at core.Vec2, missile EntityID) {
	ex := Entity{
		ID:         w.newID(),
		Kind:       KindExplosion,
		Pos:        at,
		Color:      core.ColorBrightYellow,
		Active:     true,
		MaxRadius:  ctx.cfg.Explosions.PlayerMaxRadius * ctx.tuning.PowerMultiplier,
		GrowthRate: ctx.cfg.Explosions.PlayerGrowth * ctx.frameScale,
		Class:      BlastPlayer,
		Source:     missile,
	}
	w.Explosions = append(w.Explosions, ex)
	ctx.emit(Event{Kind: EventPlayerBlast, Pos: at, Entity: ex.ID})
}

// spawnThreatBlast marks an impact. Threat blasts never hit anything.
func spawnThreatBlast(w *World, ctx *stepContext, at core.Vec2, threat EntityID) {
	w.Explosions = append(w.Explosions, Entity{
		ID:         w.newID(),
		Kind:       KindExplosion,
		Pos:        at,
		Color:      core.ColorOrange,
		Active:     true,
		MaxRadius:  ctx.cfg.Explosions.ThreatMaxRadius,
		GrowthRate: ctx.cfg.Explosions.ThreatGrowth * ctx.frameScale,
		Class:      BlastThreat,
		Source:     threat,
	})
}

// stepExplosion advances one blast through grow, shrink and retire.
// Growth may overshoot MaxRadius by a single frame.
func stepExplosion(ex *Entity, shrinkFactor float64) {
	if !ex.Active {
		return
	}
	if !ex.Shrinking {
		ex.Radius += ex.GrowthRate
		if ex.Radius >= ex.MaxRadius {
			ex.Shrinking = true
		}
		return
	}

	ex.Radius -= ex.GrowthRate * shrinkFactor
	if ex.Radius <= 0 {
		ex.Radius = 0
		ex.Active = false
	}
}

func explosionPhase(w *World, ctx *stepContext) {
	for i := range w.Explosions {
		stepExplosion(&w.Explosions[i], ctx.cfg.Explosions.ShrinkFactor)
	}
}
