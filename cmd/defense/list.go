package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all difficulty profiles",
	Long:  `Shows every registered profile with its speed and blast multipliers.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadDefense(flagConfig)
	if err != nil {
		fmt.Printf("Warning: %v (using defaults)\n\n", err)
	}

	fmt.Println("Available profiles:")
	fmt.Println()
	fmt.Printf("  %-16s  %-28s  %-5s  %s\n", "ID", "Title", "Speed", "Blast")
	fmt.Printf("  %-16s  %-28s  %-5s  %s\n", "--", "-----", "-----", "-----")

	for _, p := range config.AllProfiles() {
		id := defense.GameID(p)
		if !registry.Exists(id) {
			continue
		}
		t := cfg.Tuning(p)
		fmt.Printf("  %-16s  %-28s  x%-4.2f  x%.2f\n", id, registry.Title(id), t.SpeedMultiplier, t.PowerMultiplier)
	}

	fmt.Println()
	fmt.Println("Run 'defense play <profile>' to play, e.g. 'defense play hard'.")
}
