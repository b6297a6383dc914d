package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/registry"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

var (
	flagScoresRun   string
	flagScoresClear bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [profile]",
	Short: "Show recorded runs",
	Long: `Without a profile, shows win/loss statistics for every profile.
With a profile, shows its top runs.

Examples:
  defense scores
  defense scores hard
  defense scores hard --limit 25
  defense scores --run 0b1c...   # Show a single run
  defense scores hard --clear    # Delete every run of a profile`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show the run with this ID")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs of the given profile")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresRun != "":
		return showRun(store, flagScoresRun)
	case len(args) == 0:
		if flagScoresClear {
			return fmt.Errorf("--clear needs a profile")
		}
		return showStats(store)
	}

	gameID, ok := resolveGameID(args[0])
	if !ok || !registry.Exists(gameID) {
		return fmt.Errorf("unknown profile %q (run 'defense list' to see available profiles)", args[0])
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared all runs for %s.\n", registry.Title(gameID))
		return nil
	}

	return showTop(store, gameID)
}

func showTop(store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'defense play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-9s  %-6s  %-16s  %s\n", "Rank", "Score", "Outcome", "Time", "Date", "Run")
	fmt.Printf("  %-4s  %-8s  %-9s  %-6s  %-16s  %s\n", "----", "-----", "-------", "----", "----", "---")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %-9s  %-6s  %-16s  %s\n",
			i+1, e.Score, e.Outcome, clock(e.Duration), e.CreatedAt.Format("2006-01-02 15:04"), shortRunID(e.RunID))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Won: %d  Lost: %d  Win rate: %.0f%%\n",
			stats.HighScore, stats.GamesCount, stats.Wins, stats.Losses, stats.WinRate()*100)
	}
	return nil
}

func showStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Println("Run statistics")
	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %-5s  %-5s  %-6s  %-8s  %s\n", "Profile", "Runs", "Won", "Lost", "Best", "Avg", "Last played")
	fmt.Printf("  %-8s  %-6s  %-5s  %-5s  %-6s  %-8s  %s\n", "-------", "----", "---", "----", "----", "---", "-----------")

	for _, p := range config.AllProfiles() {
		st, ok := all[defense.GameID(p)]
		if !ok {
			fmt.Printf("  %-8s  %-6d  %-5s  %-5s  %-6s  %-8s  %s\n", p, 0, "-", "-", "-", "-", "never")
			continue
		}
		fmt.Printf("  %-8s  %-6d  %-5d  %-5d  %-6d  %-8.1f  %s\n",
			p, st.GamesCount, st.Wins, st.Losses, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func showRun(store *storage.Store, runID string) error {
	e, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("no run with id %q", runID)
	}

	fmt.Printf("Run %s\n\n", e.RunID)
	fmt.Printf("  Game:     %s\n", e.GameID)
	fmt.Printf("  Profile:  %s\n", e.Profile)
	fmt.Printf("  Outcome:  %s\n", e.Outcome)
	fmt.Printf("  Score:    %d\n", e.Score)
	fmt.Printf("  Frames:   %d (%s)\n", e.Frames, clock(e.Duration))
	fmt.Printf("  Seed:     %d\n", e.Seed)
	fmt.Printf("  Played:   %s\n", e.CreatedAt.Format(time.RFC3339))
	fmt.Println()
	fmt.Printf("Replay the same spawn sequence with: defense play %s --seed %d\n", e.Profile, e.Seed)
	return nil
}

// clock renders a duration as m:ss.
func clock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// shortRunID trims a UUID to its first group for table display.
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
