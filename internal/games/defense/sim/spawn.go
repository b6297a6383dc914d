package sim

import "github.com/vovakirdan/tui-defense/internal/core"

// spawnPhase accumulates elapsed time and emits a threat once the accumulator
// exceeds the score-dependent interval. The accumulator resets even when no
// ground target is left to aim at.
func spawnPhase(w *World, ctx *stepContext, dtMs float64) {
	w.SpawnAccumMs += dtMs
	if w.SpawnAccumMs <= ctx.cfg.Spawn.SpawnInterval(w.State.Score) {
		return
	}
	w.SpawnAccumMs = 0

	pool := targetPool(w)
	if len(pool) == 0 {
		return
	}

	// Draw order matters for reproducibility: target, x, speed.
	target := pool[ctx.rng.Intn(len(pool))]
	x := ctx.rng.Float64() * ctx.cfg.Playfield.Width
	speed := ctx.cfg.Spawn.ThreatSpeed(ctx.rng.Float64(), ctx.tuning.SpeedMultiplier)

	start := core.V(x, ctx.cfg.Spawn.SpawnY)
	threat := Entity{
		ID:        w.newID(),
		Kind:      KindThreat,
		Pos:       start,
		StartPos:  start,
		Target:    target,
		HasTarget: true,
		Speed:     speed,
		Radius:    3,
		Color:     core.ColorRed,
		Active:    true,
	}
	w.Threats = append(w.Threats, threat)
	ctx.emit(Event{Kind: EventThreatSpawned, Pos: start, Entity: threat.ID})
}

// targetPool lists the positions of every standing structure and battery,
// structures first.
func targetPool(w *World) []core.Vec2 {
	pool := make([]core.Vec2, 0, len(w.Structures)+len(w.Batteries))
	for _, s := range w.Structures {
		if !s.Destroyed {
			pool = append(pool, s.Pos)
		}
	}
	for _, b := range w.Batteries {
		if !b.Destroyed {
			pool = append(pool, b.Pos)
		}
	}
	return pool
}
