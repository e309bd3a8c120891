package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lpbcli/internal/config"
)

type generateFlags struct {
	configFile string
	n          int
	output     string
	seed       int64
	scenario   string
}

// NewGenerateCommand returns the lpb-generate command
func NewGenerateCommand() *cobra.Command {
	var flags generateFlags

	cmd := newCommand("lpb-generate", "Generate synthetic fiber optic link data",
		`Generate a CSV of synthetic fiber links with randomized physical
parameters. The same seed, count and scenario always produce the same file.

Usage:
  lpb-generate --n 500 --output examples/links.csv --seed 7 --scenario urban`)

	defaults := config.DefaultGenerate()
	f := cmd.Flags()
	f.IntVar(&flags.n, "n", defaults.N, "Number of links to generate")
	f.StringVar(&flags.output, "output", defaults.Output, "Output CSV file path")
	f.Int64Var(&flags.seed, "seed", defaults.Seed, "Random seed for reproducibility")
	f.StringVar(&flags.scenario, "scenario", defaults.Scenario, "Scenario label for the generated links")
	f.StringVar(&flags.configFile, "config", "", "Path to a YAML config file")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, flags)
	}
	return cmd
}

func runGenerate(cmd *cobra.Command, flags generateFlags) error {
	application, cleanup, err := bootstrap(flags.configFile)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := application.Generate(cmd.Context(), config.GenerateConfig{
		N:        flags.n,
		Output:   flags.output,
		Seed:     flags.seed,
		Scenario: flags.scenario,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "DONE — %d links written to %s\n", result.Links, result.Path)
	return nil
}
