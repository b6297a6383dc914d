package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/platform/tui"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a profile picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a profile.
Leaving a game with B returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select profile
  Tab          - Scoreboard
  Q            - Quit

Examples:
  defense menu
  defense menu --fps 30
  defense menu --db ./defense.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	runMenuLoop(store, runtimeConfig())
}

// runMenuLoop alternates between the menu, the scoreboard and games until
// the player quits.
func runMenuLoop(store *storage.Store, cfg core.RuntimeConfig) {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return // User quit from scoreboard
		}

		result, err := playGame(menuResult.GameID, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}
		if !result.BackToMenu {
			return // Quit from inside the game
		}
		cfg = result.Config
	}
}
