// defense is a terminal missile defense game: hold the cities against falling
// threats by launching interceptors from ground batteries.
//
// Usage:
//
//	defense list               - List playable profiles
//	defense play [profile]     - Play a profile (menu if omitted)
//	defense menu               - Start menu to pick profiles interactively
//	defense serve              - Start SSH server for remote play
//	defense scores [profile]   - Show recorded runs
//	defense config             - Print the effective game configuration
//	defense simulate           - Run the simulation headless
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.arcade/defense.db)
//	--config <path>  - Load game configuration from a YAML file
//	--log <path>     - Write debug logs to a file
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/games/defense"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string

	// logger is the process logger; silent unless --log is given
	logger  *log.Logger
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "defense",
	Short: "Missile Defense - protect your cities in the terminal",
	Long: `Missile Defense is a terminal arcade game. Threats fall toward your
cities and batteries; launch interceptors whose blasts destroy them.

Available commands:
  list      - Show all difficulty profiles
  play      - Play a profile directly
  menu      - Interactive profile picker menu
  serve     - Start SSH server for remote play
  scores    - View recorded runs
  config    - Print the effective configuration
  simulate  - Run the simulation without a terminal

Examples:
  defense list
  defense play hard
  defense menu
  defense serve --ssh :2222
  defense scores normal`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/defense.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write debug logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setup applies the global flags shared by every subcommand.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	defense.SetConfigPath(flagConfig)

	if flagLogPath == "" {
		return nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "defense",
	})
	defense.SetLogger(logger)
	return nil
}

// resolveGameID accepts "hard" or "defense_hard".
func resolveGameID(arg string) (string, bool) {
	if strings.TrimSpace(arg) == "" {
		return "", false
	}
	if p, ok := defense.ProfileFromID(arg); ok {
		return defense.GameID(p), true
	}
	if p, ok := defense.ProfileFromID(defense.IDPrefix + arg); ok {
		return defense.GameID(p), true
	}
	return "", false
}
