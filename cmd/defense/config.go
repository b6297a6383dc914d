package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-defense/internal/config"
)

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Prints the configuration the game would load, as YAML.

The search order is --config, ~/.arcade/configs/defense.yaml,
./configs/defense.yaml, then the built-in defaults. Use --default to print
the commented built-in file as a starting point for your own.

Examples:
  defense config
  defense config --default > ~/.arcade/configs/defense.yaml
  defense config --config ./my-defense.yaml`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in default file")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefault {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadDefense(flagConfig)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
