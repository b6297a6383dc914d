package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/registry"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

// runInfo is implemented by games that can describe the run being recorded.
type runInfo interface {
	Profile() config.Profile
	Frames() uint64
}

// GameModel is the Bubble Tea model hosting one game, locally or over SSH.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	tickID     int
	quitting   bool
	backToMenu bool
	runSaved   bool   // Whether the current session has been recorded
	lastRunID  string // Run ID of the most recent saved record
}

// NewGameModel creates a new game model.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		tickID:     nextTickID(),
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.tickID, m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		// Ticks scheduled by an earlier model are dropped
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveAbandoned()
		m.quitting = true
		return m, tea.Quit
	}

	// Back only leaves a finished or paused session
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.saveAbandoned()
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize keeps the session alive when the game can re-layout itself.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A restart from the end screen begins a new run
	if wasOver && !m.gameState.GameOver {
		m.runSaved = false
	}

	if m.gameState.GameOver && !m.runSaved {
		outcome := storage.OutcomeLost
		if m.gameState.Won {
			outcome = storage.OutcomeWon
		}
		m.saveRun(outcome)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.tickID, m.config.TickRate)
}

// saveAbandoned records a session the player walked away from.
func (m *GameModel) saveAbandoned() {
	if m.runSaved || m.gameState.GameOver || m.gameState.Score <= 0 {
		return
	}
	m.saveRun(storage.OutcomeAbandoned)
}

func (m *GameModel) saveRun(outcome storage.Outcome) {
	m.runSaved = true
	if m.store == nil {
		return
	}

	rec := storage.RunRecord{
		GameID:  m.game.ID(),
		Score:   m.gameState.Score,
		Outcome: outcome,
		Seed:    m.config.Seed,
	}
	if info, ok := m.game.(runInfo); ok {
		rec.Profile = info.Profile().String()
		rec.Frames = info.Frames()
		rec.Duration = time.Duration(float64(rec.Frames) * m.config.FrameInterval() * float64(time.Millisecond))
	}

	id, err := m.store.SaveRun(rec)
	if err != nil {
		return // Best-effort save, game continues regardless
	}
	m.lastRunID = id
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// LastRunID returns the ID of the last recorded run, if any.
func (m GameModel) LastRunID() string {
	return m.lastRunID
}

// GameResult reports how a standalone game program ended.
type GameResult struct {
	BackToMenu bool
	RunID      string
	Config     core.RuntimeConfig
}

// Run starts a Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (GameResult, error) {
	p := tea.NewProgram(
		NewGameModel(game, store, cfg),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks become launch targets
	)

	finalModel, err := p.Run()
	if err != nil {
		return GameResult{Config: cfg}, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return GameResult{Config: cfg}, nil
	}
	// Carry the live screen size back so a following menu starts at it
	return GameResult{BackToMenu: m.BackToMenu(), RunID: m.LastRunID(), Config: m.config}, nil
}
