package sim

import (
	"fmt"
	"math"
	"testing"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
)

func TestNewEngineNotStarted(t *testing.T) {
	e := NewEngine(config.DefaultDefenseConfig(), 1)

	if e.Status() != StatusNotStarted {
		t.Fatalf("expected not_started, got %s", e.Status())
	}
	if e.Launch(core.V(400, 300)) {
		t.Error("launch should be ignored before the session starts")
	}

	before := e.Snapshot()
	e.Step(1000)
	after := e.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("step must not touch the world outside PLAYING")
	}
}

func TestStartSessionResetsEverything(t *testing.T) {
	e := newPlayingEngine(t)

	// Dirty the world
	e.Launch(core.V(120, 300))
	e.Launch(core.V(420, 300))
	for range 200 {
		e.Step(refDt(e))
	}
	e.world.State.Score = 340
	e.world.Batteries[0].Destroyed = true
	e.world.Structures[2].Destroyed = true
	e.world.Threats = append(e.world.Threats, threatAt(999, core.V(1, 1), core.V(2, 2), 1))

	for range 2 {
		e.StartSession(config.ProfileHard)

		w := e.world
		if w.State.Score != 0 {
			t.Errorf("score = %d, want 0", w.State.Score)
		}
		if w.State.Status != StatusPlaying || w.State.Mode != config.ProfileHard {
			t.Errorf("state = %+v, want playing/hard", w.State)
		}
		for _, b := range w.Batteries {
			if b.Destroyed || b.Missiles != b.MaxMissiles {
				t.Errorf("battery %d not restored: %+v", b.ID, b)
			}
		}
		for _, s := range w.Structures {
			if s.Destroyed {
				t.Errorf("structure %d still destroyed", s.ID)
			}
		}
		if len(w.Missiles)+len(w.Threats)+len(w.Explosions) != 0 {
			t.Error("dynamic collections should be empty")
		}
		if w.SpawnAccumMs != 0 {
			t.Errorf("spawn accumulator = %g, want 0", w.SpawnAccumMs)
		}
	}
}

func TestResetAndRestart(t *testing.T) {
	e := newPlayingEngine(t)
	e.StartSession(config.ProfileExpert)
	e.world.State.Status = StatusLost

	e.Restart()
	if e.Status() != StatusPlaying || e.Profile() != config.ProfileExpert {
		t.Errorf("restart: got %s/%s, want playing/expert", e.Status(), e.Profile())
	}

	e.Reset()
	if e.Status() != StatusNotStarted {
		t.Errorf("reset: got %s, want not_started", e.Status())
	}
}

func TestLaunchPicksNearestBattery(t *testing.T) {
	tests := []struct {
		name      string
		target    core.Vec2
		destroyed []int // Battery indexes to knock out first
		empty     []int // Battery indexes with no ammo
		want      int   // Battery ID, 0 for no launch
	}{
		{"left", core.V(50, 200), nil, nil, 1},
		{"center", core.V(390, 200), nil, nil, 2},
		{"right", core.V(799, 0), nil, nil, 3},
		{"tie goes to first", core.V(250, 200), nil, nil, 1},
		{"skip destroyed", core.V(390, 200), []int{1}, nil, 1},
		{"skip empty", core.V(390, 200), nil, []int{1}, 1},
		{"fallback to far battery", core.V(90, 200), []int{0}, []int{1}, 3},
		{"none eligible", core.V(400, 200), []int{0, 1}, []int{2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newPlayingEngine(t)
			for _, i := range tt.destroyed {
				e.world.Batteries[i].Destroyed = true
			}
			for _, i := range tt.empty {
				e.world.Batteries[i].Missiles = 0
			}

			ok := e.Launch(tt.target)
			if ok != (tt.want != 0) {
				t.Fatalf("Launch returned %v, want %v", ok, tt.want != 0)
			}
			if !ok {
				if len(e.world.Missiles) != 0 {
					t.Error("no missile should be created")
				}
				return
			}

			b := e.world.Batteries[tt.want-1]
			if b.Missiles != b.MaxMissiles-1 {
				t.Errorf("battery %d ammo = %d, want %d", b.ID, b.Missiles, b.MaxMissiles-1)
			}
			m := e.world.Missiles[0]
			if m.Pos != b.Pos || m.StartPos != b.Pos || m.Target != tt.target {
				t.Errorf("missile %+v not launched from battery %d to %v", m, b.ID, tt.target)
			}
		})
	}
}

func TestLaunchSpeedUsesProfile(t *testing.T) {
	cfg := config.DefaultDefenseConfig()
	e := NewEngine(cfg, 1)
	e.StartSession(config.ProfileInsane)
	e.Launch(core.V(400, 100))

	want := cfg.Interceptor.Speed * cfg.Tuning(config.ProfileInsane).SpeedMultiplier
	if got := e.world.Missiles[0].Speed; got != want {
		t.Errorf("missile speed = %g, want %g", got, want)
	}
}

func TestLaunchEventDeliveredOnNextStep(t *testing.T) {
	e := newPlayingEngine(t)
	e.Launch(core.V(400, 100))

	events := e.Step(refDt(e))
	if countEvents(events, EventMissileLaunched) != 1 {
		t.Fatalf("expected one launch event, got %v", events)
	}
	if events := e.Step(refDt(e)); countEvents(events, EventMissileLaunched) != 0 {
		t.Error("launch event delivered twice")
	}
}

func TestAmmoRunsOut(t *testing.T) {
	e := newPlayingEngine(t)
	total := 0
	for _, b := range e.world.Batteries {
		total += b.MaxMissiles
	}

	launched := 0
	for range total + 5 {
		if e.Launch(core.V(400, 100)) {
			launched++
		}
	}
	if launched != total {
		t.Errorf("launched %d missiles, want %d", launched, total)
	}
	for _, b := range e.world.Batteries {
		if b.Missiles != 0 {
			t.Errorf("battery %d ammo = %d, want 0", b.ID, b.Missiles)
		}
	}
}

// A missile aimed at its own battery detonates on the first step.
func TestZeroDistanceMissileDetonatesImmediately(t *testing.T) {
	e := newPlayingEngine(t)
	target := core.V(100, 560)

	if !e.Launch(target) {
		t.Fatal("launch failed")
	}
	events := e.Step(refDt(e))

	if len(e.world.Missiles) != 0 {
		t.Errorf("missile should be gone, have %d", len(e.world.Missiles))
	}
	if countEvents(events, EventPlayerBlast) != 1 {
		t.Fatalf("expected a player blast, events: %v", events)
	}
	if len(e.world.Explosions) != 1 {
		t.Fatalf("expected one explosion, got %d", len(e.world.Explosions))
	}
	ex := e.world.Explosions[0]
	if ex.Pos != target || ex.Class != BlastPlayer {
		t.Errorf("explosion %+v, want player blast at %v", ex, target)
	}
	if ex.Radius != e.cfg.Explosions.PlayerGrowth {
		t.Errorf("radius after one frame = %g, want %g", ex.Radius, e.cfg.Explosions.PlayerGrowth)
	}
}

func TestStepWithoutElapsedTimeRunsNoPhases(t *testing.T) {
	for _, dt := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		t.Run(fmt.Sprint(dt), func(t *testing.T) {
			e := newPlayingEngine(t)
			if !e.Launch(core.V(100, 560)) {
				t.Fatal("launch failed")
			}

			events := e.Step(dt)
			if countEvents(events, EventMissileLaunched) != 1 {
				t.Errorf("expected launch event, got %v", events)
			}
			if e.Frame() != 0 || len(e.world.Missiles) != 1 || len(e.world.Explosions) != 0 {
				t.Fatalf("world stepped: frame=%d missiles=%d explosions=%d",
					e.Frame(), len(e.world.Missiles), len(e.world.Explosions))
			}

			// The blast from the next real frame must still burn out
			for i := range e.world.Batteries {
				e.world.Batteries[i].Destroyed = true
			}
			for i := range e.world.Structures {
				e.world.Structures[i].Destroyed = true
			}
			for range 500 {
				if e.Status() != StatusPlaying {
					break
				}
				e.Step(refDt(e))
			}
			if e.Status() != StatusLost {
				t.Errorf("status = %s, want lost", e.Status())
			}
		})
	}
}

func TestLaunchRejectsNonFiniteTarget(t *testing.T) {
	tests := []struct {
		name   string
		target core.Vec2
	}{
		{"nan x", core.V(math.NaN(), 300)},
		{"nan y", core.V(400, math.NaN())},
		{"inf x", core.V(math.Inf(1), 300)},
		{"-inf y", core.V(400, math.Inf(-1))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newPlayingEngine(t)
			if e.Launch(tc.target) {
				t.Error("launch should be rejected")
			}
			if len(e.world.Missiles) != 0 || len(e.DrainEvents()) != 0 {
				t.Error("rejected launch left a missile or event behind")
			}
			for _, b := range e.world.Batteries {
				if b.Missiles != b.MaxMissiles {
					t.Errorf("battery %d spent ammo", b.ID)
				}
			}
		})
	}
}

func TestThreatMovesInUnitStepsAndArrives(t *testing.T) {
	e := newPlayingEngine(t)
	start := core.V(400, 100)
	target := core.V(400, 150)
	e.world.Threats = []Entity{threatAt(e.world.newID(), start, target, 1.0)}

	for k := 1; k < 50; k++ {
		events := e.Step(refDt(e))
		if countEvents(events, EventThreatImpact) != 0 {
			t.Fatalf("arrived early at step %d", k)
		}
		pos := e.world.Threats[0].Pos
		if pos != core.V(400, 100+float64(k)) {
			t.Fatalf("step %d: pos = %v, want (400,%d)", k, pos, 100+k)
		}
	}

	events := e.Step(refDt(e))
	if countEvents(events, EventThreatImpact) != 1 {
		t.Fatalf("expected impact on step 50, events: %v", events)
	}
	if len(e.world.Threats) != 0 {
		t.Error("threat should be removed after arrival")
	}
	if len(e.world.Explosions) != 1 || e.world.Explosions[0].Class != BlastThreat {
		t.Errorf("expected one threat blast, got %+v", e.world.Explosions)
	}
	if e.world.Explosions[0].Pos != target {
		t.Errorf("threat blast at %v, want %v", e.world.Explosions[0].Pos, target)
	}
}

func TestWinOnSameFrame(t *testing.T) {
	e := newPlayingEngine(t)
	e.world.State.Score = e.cfg.Scoring.WinScore - e.cfg.Scoring.PointsPerKill
	e.world.Threats = []Entity{threatAt(e.world.newID(), core.V(400, 300), core.V(400, 550), 1)}
	e.world.Explosions = []Entity{playerBlastAt(e.world.newID(), core.V(400, 300), 20)}

	events := e.Step(refDt(e))

	if e.Score() != e.cfg.Scoring.WinScore {
		t.Errorf("score = %d, want %d", e.Score(), e.cfg.Scoring.WinScore)
	}
	if e.Status() != StatusWon {
		t.Errorf("status = %s, want won", e.Status())
	}
	if countEvents(events, EventGameWon) != 1 {
		t.Errorf("expected game-won event, got %v", events)
	}
}

func TestWinTakesPriorityOverLoss(t *testing.T) {
	e := newPlayingEngine(t)
	e.world.State.Score = e.cfg.Scoring.WinScore
	for i := range e.world.Batteries {
		e.world.Batteries[i].Destroyed = true
	}

	events := e.Step(refDt(e))
	if e.Status() != StatusWon {
		t.Errorf("status = %s, want won", e.Status())
	}
	if countEvents(events, EventGameLost) != 0 {
		t.Error("loss must not fire alongside a win")
	}
}

func TestLossWaitsForBattlefieldToSettle(t *testing.T) {
	t.Run("settled", func(t *testing.T) {
		e := newPlayingEngine(t)
		for i := range e.world.Batteries {
			e.world.Batteries[i].Destroyed = true
		}

		events := e.Step(refDt(e))
		if e.Status() != StatusLost {
			t.Errorf("status = %s, want lost", e.Status())
		}
		if countEvents(events, EventGameLost) != 1 {
			t.Errorf("expected game-lost event, got %v", events)
		}
	})

	t.Run("explosion still active", func(t *testing.T) {
		e := newPlayingEngine(t)
		for i := range e.world.Batteries {
			e.world.Batteries[i].Destroyed = true
		}
		e.world.Explosions = []Entity{{
			ID:         e.world.newID(),
			Kind:       KindExplosion,
			Pos:        core.V(100, 560),
			Radius:     10,
			MaxRadius:  36,
			GrowthRate: 2.4,
			Class:      BlastThreat,
			Active:     true,
		}}

		e.Step(refDt(e))
		if e.Status() != StatusPlaying {
			t.Errorf("status = %s, want playing while an explosion is active", e.Status())
		}
	})

	t.Run("threat still active", func(t *testing.T) {
		e := newPlayingEngine(t)
		for i := range e.world.Batteries {
			e.world.Batteries[i].Destroyed = true
		}
		e.world.Threats = []Entity{threatAt(e.world.newID(), core.V(300, 0), core.V(300, 560), 1)}

		e.Step(refDt(e))
		if e.Status() != StatusPlaying {
			t.Errorf("status = %s, want playing while a threat is active", e.Status())
		}
	})
}

func TestTerminalStatusFreezesWorld(t *testing.T) {
	e := newPlayingEngine(t)
	e.world.State.Score = e.cfg.Scoring.WinScore
	e.Step(refDt(e))
	if e.Status() != StatusWon {
		t.Fatalf("status = %s, want won", e.Status())
	}

	before := e.Snapshot()
	for range 10 {
		e.Step(refDt(e))
	}
	after := e.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("world changed after the session ended")
	}
}

func TestInvariantsHoldOverLongRun(t *testing.T) {
	e := NewEngine(config.DefaultDefenseConfig(), 777)
	e.StartSession(config.ProfileEasy)
	aim := NewRNG(99)

	prevScore := 0
	prevAmmo := make([]int, len(e.world.Batteries))
	for i, b := range e.world.Batteries {
		prevAmmo[i] = b.Missiles
	}

	for frame := range 6000 {
		if e.Status() != StatusPlaying {
			break
		}
		if frame%20 == 0 && len(e.world.Threats) > 0 {
			// Aim slightly ahead of the oldest threat
			th := e.world.Threats[0]
			e.Launch(core.V(th.Pos.X, th.Pos.Y+30+aim.Float64()*20))
		}
		e.Step(refDt(e))

		if err := e.CheckInvariants(); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		score := e.Score()
		if score < prevScore || (score-prevScore)%e.cfg.Scoring.PointsPerKill != 0 {
			t.Fatalf("frame %d: score went %d -> %d", frame, prevScore, score)
		}
		prevScore = score
		for i, b := range e.world.Batteries {
			if b.Missiles > prevAmmo[i] {
				t.Fatalf("frame %d: battery %d ammo grew", frame, b.ID)
			}
			prevAmmo[i] = b.Missiles
		}
	}
}
