// Package defense adapts the missile defense simulation to the arcade
// platform: it registers one game per tuning profile, turns platform input
// into launch requests and renders snapshots into the cell screen.
package defense

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense/sim"
	"github.com/vovakirdan/tui-defense/internal/registry"
)

// IDPrefix prefixes every registered defense game ID.
const IDPrefix = "defense_"

// bannerTicks is how long a transient banner stays on screen.
const bannerTicks = 45

// configPath stores the custom config path set via CLI
var configPath string

// logger receives session and event logs; silent unless SetLogger is called.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger routes game logs to l. A nil logger silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// GameID returns the registry ID for a profile.
func GameID(p config.Profile) string {
	return IDPrefix + p.String()
}

// ProfileFromID extracts the profile from a registry ID.
func ProfileFromID(id string) (config.Profile, bool) {
	name, ok := strings.CutPrefix(id, IDPrefix)
	if !ok {
		return config.ProfileNormal, false
	}
	return config.ParseProfile(name)
}

// Game hosts one simulation engine for the platform loop.
type Game struct {
	profile config.Profile
	cfg     config.DefenseConfig
	runtime core.RuntimeConfig

	engine *sim.Engine
	driver *sim.Driver
	snap   sim.Snapshot

	clockMs   float64   // Synthetic timestamp advanced once per tick
	crosshair core.Vec2 // Keyboard aiming point in playfield units
	paused    bool

	banner      string
	bannerColor core.Color
	bannerLeft  int

	view viewport
}

// New creates a defense game for the given profile.
func New(p config.Profile) *Game {
	return &Game{profile: p}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID(g.profile)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Missile Defense (" + g.profile.Title() + ")"
}

// Profile returns the tuning profile this game plays with.
func (g *Game) Profile() config.Profile {
	return g.profile
}

// Reset loads configuration and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadDefense(configPath)
	if err != nil {
		logger.Warn("falling back to default config", "err", err)
	}
	g.cfg = cfg

	g.engine = sim.NewEngine(cfg, runtime.Seed)
	g.engine.StartSession(g.profile)
	g.driver = sim.NewDriver(g.engine)
	g.snap = g.engine.Snapshot()

	g.clockMs = 0
	g.paused = false
	g.banner = ""
	g.bannerLeft = 0
	g.crosshair = core.V(cfg.Playfield.Width/2, cfg.Playfield.Height/2)
	g.view = newViewport(runtime.ScreenW, runtime.ScreenH, cfg.Playfield)

	logger.Info("session started", "game", g.ID(), "seed", runtime.Seed)
}

// Step advances the game by one platform tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.clockMs += g.runtime.FrameInterval()

	if g.view.tooSmall {
		return core.StepResult{State: g.State()}
	}

	status := g.engine.Status()

	// Handle restart
	if in.Has(core.ActionRestart) && status.Terminal() {
		g.engine.Restart()
		g.driver.Reprime()
		g.snap = g.engine.Snapshot()
		g.setBanner("", core.ColorDefault)
		logger.Info("session restarted", "game", g.ID())
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && status == sim.StatusPlaying {
		g.paused = !g.paused
		if !g.paused {
			g.driver.Reprime()
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.handleAim(in)

	snap, events := g.driver.FrameTick(g.clockMs)
	g.snap = snap
	if g.bannerLeft > 0 {
		g.bannerLeft--
	}

	return core.StepResult{
		State:  g.State(),
		Events: g.consume(events),
	}
}

// handleAim moves the crosshair and turns fire and clicks into launches.
func (g *Game) handleAim(in core.InputFrame) {
	stepX, stepY := g.view.cellSize()
	if in.Has(core.ActionLeft) {
		g.crosshair.X -= stepX
	}
	if in.Has(core.ActionRight) {
		g.crosshair.X += stepX
	}
	if in.Has(core.ActionUp) {
		g.crosshair.Y -= stepY
	}
	if in.Has(core.ActionDown) {
		g.crosshair.Y += stepY
	}
	g.crosshair.X = core.ClampF(g.crosshair.X, 0, g.cfg.Playfield.Width)
	g.crosshair.Y = core.ClampF(g.crosshair.Y, 0, g.cfg.Playfield.Height)

	if in.Has(core.ActionFire) {
		g.launch(g.crosshair)
	}
	for _, c := range in.Clicks {
		p, ok := g.view.toField(c.X, c.Y)
		if !ok {
			continue
		}
		g.crosshair = p
		g.launch(p)
	}
}

func (g *Game) launch(target core.Vec2) {
	if !g.engine.Launch(target) {
		logger.Debug("launch ignored", "x", target.X, "y", target.Y)
	}
}

// consume logs events, updates the banner and returns readable notices.
func (g *Game) consume(events []sim.Event) []string {
	if len(events) == 0 {
		return nil
	}

	notices := make([]string, 0, len(events))
	for _, ev := range events {
		logger.Debug("event", "kind", ev.Kind, "frame", ev.Frame, "x", ev.Pos.X, "y", ev.Pos.Y)
		notices = append(notices, ev.Kind.String())

		switch ev.Kind {
		case sim.EventStructureDestroyed:
			g.setBanner(fmt.Sprintf("CITY %d LOST", ev.Index), core.ColorBrightRed)
		case sim.EventBatteryDestroyed:
			g.setBanner(fmt.Sprintf("BATTERY %c DESTROYED", batteryLabel(ev.Index)), core.ColorBrightRed)
		case sim.EventGameWon:
			logger.Info("session won", "game", g.ID(), "score", g.engine.Score(), "frames", g.engine.Frame())
		case sim.EventGameLost:
			logger.Info("session lost", "game", g.ID(), "score", g.engine.Score(), "frames", g.engine.Frame())
		}
	}
	return notices
}

func (g *Game) setBanner(text string, c core.Color) {
	g.banner = text
	g.bannerColor = c
	g.bannerLeft = bannerTicks
	if text == "" {
		g.bannerLeft = 0
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	status := g.engine.Status()
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: status.Terminal(),
		Won:      status == sim.StatusWon,
		Paused:   g.paused,
	}
}

// Snapshot returns the last observed simulation snapshot.
func (g *Game) Snapshot() sim.Snapshot {
	return g.snap
}

// Frames returns how many simulation frames the current session has run.
func (g *Game) Frames() uint64 {
	if g.engine == nil {
		return 0
	}
	return g.engine.Frame()
}

// Engine exposes the underlying simulation.
func (g *Game) Engine() *sim.Engine {
	return g.engine
}

// Resize recomputes the viewport without restarting the session.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.view = newViewport(w, h, g.cfg.Playfield)
}

// batteryLabel maps battery IDs 1, 2, 3 to A, B, C.
func batteryLabel(id int) rune {
	if id < 1 || id > 26 {
		return '?'
	}
	return rune('A' + id - 1)
}

func init() {
	for _, p := range config.AllProfiles() {
		registry.Register(GameID(p), func() registry.Game {
			return New(p)
		})
	}
}
