package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/platform/tui"
	"github.com/vovakirdan/tui-defense/internal/registry"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [profile]",
	Short: "Play a difficulty profile",
	Long: `Start defending at the given difficulty profile.
Without a profile the profile menu opens first.

Controls:
  Mouse click      - Launch an interceptor at the clicked point
  Arrows/WASD/HJKL - Move the crosshair
  Space/F          - Launch at the crosshair
  P/Esc            - Pause
  R                - Restart (after the game ends)
  B                - Back to menu (paused or ended)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Profiles: easy, normal, hard, expert, insane

Examples:
  defense play
  defense play hard
  defense play insane --seed 42
  defense play normal --config ./my-defense.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	var gameID string
	if len(args) == 1 {
		id, ok := resolveGameID(args[0])
		if !ok || !registry.Exists(id) {
			return fmt.Errorf("unknown profile %q (run 'defense list' to see available profiles)", args[0])
		}
		gameID = id
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	cfg := runtimeConfig()

	if gameID == "" {
		runMenuLoop(store, cfg)
		return nil
	}

	result, err := playGame(gameID, store, cfg)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if result.BackToMenu {
		runMenuLoop(store, result.Config)
	}
	return nil
}

// playGame runs one game program and reports how it ended.
func playGame(gameID string, store *storage.Store, cfg core.RuntimeConfig) (tui.GameResult, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return tui.GameResult{Config: cfg}, err
	}

	result, err := tui.Run(game, store, cfg)
	if logger != nil && result.RunID != "" {
		logger.Info("run recorded", "game", gameID, "run", result.RunID)
	}
	// The next game picks a fresh seed unless one was pinned
	result.Config.Seed = flagSeed
	return result, err
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the runs database; games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}
