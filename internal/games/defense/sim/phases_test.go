package sim

import (
	"testing"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
)

func TestSpawnWaitsForInterval(t *testing.T) {
	e := newPlayingEngine(t)
	e.SetRand(&scriptedRand{floats: []float64{0.5, 0.5}, ints: []int{0}})

	e.Step(1999)
	if len(e.world.Threats) != 0 {
		t.Fatal("no threat should spawn before the interval elapses")
	}
	if e.world.SpawnAccumMs != 1999 {
		t.Fatalf("accumulator = %g, want 1999", e.world.SpawnAccumMs)
	}

	events := e.Step(2)
	if len(e.world.Threats) != 1 {
		t.Fatalf("expected one threat, got %d", len(e.world.Threats))
	}
	if e.world.SpawnAccumMs != 0 {
		t.Errorf("accumulator = %g, want 0 after spawn", e.world.SpawnAccumMs)
	}
	if countEvents(events, EventThreatSpawned) != 1 {
		t.Errorf("expected threat-spawned event, got %v", events)
	}

	th := e.world.Threats[0]
	if th.StartPos != core.V(400, e.cfg.Spawn.SpawnY) {
		t.Errorf("start = %v, want (400,%g)", th.StartPos, e.cfg.Spawn.SpawnY)
	}
	if th.Target != e.world.Structures[0].Pos {
		t.Errorf("target = %v, want first structure %v", th.Target, e.world.Structures[0].Pos)
	}
	if want := e.cfg.Spawn.ThreatSpeed(0.5, 1.0); th.Speed != want {
		t.Errorf("speed = %g, want %g", th.Speed, want)
	}
}

func TestSpawnIntervalShrinksWithScore(t *testing.T) {
	e := newPlayingEngine(t)
	e.world.State.Score = 300 // Interval 1700

	e.Step(1700)
	if len(e.world.Threats) != 0 {
		t.Fatal("interval must be exceeded, not just reached")
	}
	e.Step(1)
	if len(e.world.Threats) != 1 {
		t.Fatalf("expected spawn once past 1700ms, got %d threats", len(e.world.Threats))
	}
}

func TestSpawnTargetsBatteriesAfterStructures(t *testing.T) {
	e := newPlayingEngine(t)
	e.world.Structures[1].Destroyed = true
	pool := targetPool(&e.world)

	want := len(e.world.Structures) - 1 + len(e.world.Batteries)
	if len(pool) != want {
		t.Fatalf("pool size = %d, want %d", len(pool), want)
	}
	for _, p := range pool {
		if p == e.world.Structures[1].Pos {
			t.Error("destroyed structure must not be targeted")
		}
	}
	if pool[len(pool)-1] != e.world.Batteries[len(e.world.Batteries)-1].Pos {
		t.Error("batteries should follow structures in the pool")
	}
}

func TestSpawnSkippedWithoutTargets(t *testing.T) {
	e := newPlayingEngine(t)
	for i := range e.world.Structures {
		e.world.Structures[i].Destroyed = true
	}
	for i := range e.world.Batteries {
		e.world.Batteries[i].Destroyed = true
	}
	ctx := newCtx(e)

	e.world.SpawnAccumMs = 5000
	spawnPhase(&e.world, ctx, 16)

	if len(e.world.Threats) != 0 {
		t.Error("no threat should spawn without a target")
	}
	if e.world.SpawnAccumMs != 0 {
		t.Errorf("accumulator = %g, want 0", e.world.SpawnAccumMs)
	}
}

func TestImpactBox(t *testing.T) {
	tests := []struct {
		name           string
		at             core.Vec2
		wantStructures []int // Destroyed structure IDs
		wantBatteries  []int // Destroyed battery IDs
	}{
		{"direct structure hit", core.V(200, 560), []int{1}, nil},
		{"corner inside box", core.V(220, 580), []int{1}, nil},
		{"edge is outside", core.V(225, 560), nil, nil},
		{"battery has wider box", core.V(134, 560), nil, []int{1}},
		{"between cities misses both", core.V(250, 560), nil, nil},
		{"far away", core.V(400, 100), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newPlayingEngine(t)
			resolveImpact(&e.world, newCtx(e), tt.at, 1)

			for _, s := range e.world.Structures {
				if s.Destroyed != contains(tt.wantStructures, s.ID) {
					t.Errorf("structure %d destroyed = %v", s.ID, s.Destroyed)
				}
			}
			for _, b := range e.world.Batteries {
				if b.Destroyed != contains(tt.wantBatteries, b.ID) {
					t.Errorf("battery %d destroyed = %v", b.ID, b.Destroyed)
				}
			}
		})
	}
}

func TestImpactCanDestroySeveralTargets(t *testing.T) {
	e := newPlayingEngine(t)
	w := &e.world
	w.Structures = []Structure{
		{ID: 1, Pos: core.V(200, 560)},
		{ID: 2, Pos: core.V(215, 560)},
	}
	w.Batteries = []Battery{{ID: 1, Pos: core.V(230, 560), Missiles: 1, MaxMissiles: 1}}

	ctx := newCtx(e)
	resolveImpact(w, ctx, core.V(207, 560), 1)

	if !w.Structures[0].Destroyed || !w.Structures[1].Destroyed || !w.Batteries[0].Destroyed {
		t.Errorf("expected all overlapping targets destroyed: %+v %+v", w.Structures, w.Batteries)
	}
	if got := countEvents(ctx.events, EventStructureDestroyed); got != 2 {
		t.Errorf("structure-destroyed events = %d, want 2", got)
	}
	if got := countEvents(ctx.events, EventBatteryDestroyed); got != 1 {
		t.Errorf("battery-destroyed events = %d, want 1", got)
	}
	if got := countEvents(ctx.events, EventThreatImpact); got != 1 {
		t.Errorf("threat-impact events = %d, want 1", got)
	}
}

func TestCollisionRules(t *testing.T) {
	t.Run("hit margin", func(t *testing.T) {
		e := newPlayingEngine(t)
		w := &e.world
		w.Explosions = []Entity{playerBlastAt(1, core.V(0, 0), 10)}
		w.Threats = []Entity{
			threatAt(2, core.V(19.9, 0), core.V(0, 600), 1),
			threatAt(3, core.V(20, 0), core.V(0, 600), 1),
		}

		collidePhase(w, newCtx(e))
		if w.Threats[0].Active {
			t.Error("threat within radius+margin should die")
		}
		if !w.Threats[1].Active {
			t.Error("threat exactly at radius+margin should survive")
		}
		if w.State.Score != 20 {
			t.Errorf("score = %d, want 20", w.State.Score)
		}
	})

	t.Run("threat blasts are harmless", func(t *testing.T) {
		e := newPlayingEngine(t)
		w := &e.world
		blast := playerBlastAt(1, core.V(0, 0), 30)
		blast.Class = BlastThreat
		w.Explosions = []Entity{blast}
		w.Threats = []Entity{threatAt(2, core.V(0, 0), core.V(0, 600), 1)}

		collidePhase(w, newCtx(e))
		if !w.Threats[0].Active || w.State.Score != 0 {
			t.Error("threat-class blasts must not kill threats")
		}
	})

	t.Run("one kill per threat", func(t *testing.T) {
		e := newPlayingEngine(t)
		w := &e.world
		w.Explosions = []Entity{
			playerBlastAt(1, core.V(0, 0), 30),
			playerBlastAt(2, core.V(5, 0), 30),
		}
		w.Threats = []Entity{threatAt(3, core.V(2, 0), core.V(0, 600), 1)}

		ctx := newCtx(e)
		collidePhase(w, ctx)
		if w.State.Score != 20 {
			t.Errorf("score = %d, want 20", w.State.Score)
		}
		if got := countEvents(ctx.events, EventThreatDestroyed); got != 1 {
			t.Errorf("threat-destroyed events = %d, want 1", got)
		}
	})

	t.Run("one blast many kills", func(t *testing.T) {
		e := newPlayingEngine(t)
		w := &e.world
		w.Explosions = []Entity{playerBlastAt(1, core.V(100, 100), 40)}
		w.Threats = []Entity{
			threatAt(2, core.V(90, 100), core.V(0, 600), 1),
			threatAt(3, core.V(110, 110), core.V(0, 600), 1),
			threatAt(4, core.V(300, 300), core.V(0, 600), 1),
		}

		collidePhase(w, newCtx(e))
		if w.State.Score != 40 {
			t.Errorf("score = %d, want 40", w.State.Score)
		}
		if !w.Explosions[0].Active || w.Explosions[0].Radius != 40 {
			t.Error("blast must not be consumed by kills")
		}
	})
}

func TestExplosionLifecycle(t *testing.T) {
	ex := Entity{Kind: KindExplosion, Active: true, MaxRadius: 10, GrowthRate: 4}

	// Grow: 4, 8, 12 (overshoot by less than one growth step)
	for _, want := range []float64{4, 8, 12} {
		stepExplosion(&ex, 0.5)
		if ex.Radius != want {
			t.Fatalf("radius = %g, want %g", ex.Radius, want)
		}
	}
	if !ex.Shrinking {
		t.Fatal("explosion should start shrinking after reaching max")
	}

	// Shrink at half rate: 10, 8, 6, 4, 2, 0
	prev := ex.Radius
	steps := 0
	for ex.Active {
		stepExplosion(&ex, 0.5)
		steps++
		if ex.Radius >= prev {
			t.Fatalf("radius did not decrease: %g -> %g", prev, ex.Radius)
		}
		if ex.Radius < 0 {
			t.Fatalf("negative radius %g", ex.Radius)
		}
		prev = ex.Radius
	}
	if steps != 6 {
		t.Errorf("shrink took %d steps, want 6", steps)
	}

	// Retired explosions are never touched again
	stepExplosion(&ex, 0.5)
	if ex.Radius != 0 || ex.Active {
		t.Errorf("retired explosion mutated: %+v", ex)
	}
}

func TestExplosionGrowthScalesWithFrame(t *testing.T) {
	e := newPlayingEngine(t)
	e.Launch(core.V(100, 560))
	e.Step(2 * refDt(e))

	ex := e.world.Explosions[0]
	if want := 2 * e.cfg.Explosions.PlayerGrowth; ex.GrowthRate != want {
		t.Errorf("growth = %g, want %g", ex.GrowthRate, want)
	}
}

func TestPowerMultiplierScalesPlayerBlast(t *testing.T) {
	e := newPlayingEngine(t)
	e.StartSession(config.ProfileHard)
	e.Launch(core.V(100, 560))
	e.Step(refDt(e))

	tuning := e.cfg.Tuning(e.Profile())
	want := e.cfg.Explosions.PlayerMaxRadius * tuning.PowerMultiplier
	if got := e.world.Explosions[0].MaxRadius; got != want {
		t.Errorf("max radius = %g, want %g", got, want)
	}
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
