package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lpbcli/internal/config"
)

type analyzeFlags struct {
	configFile  string
	results     string
	outdir      string
	inputLinks  string
	worstN      int
	xlsx        bool
	metricsFile string
	traceFile   string
}

// NewAnalyzeCommand returns the lpb-analyze command
func NewAnalyzeCommand() *cobra.Command {
	var flags analyzeFlags

	cmd := newCommand("lpb-analyze", "Summarize and plot LPB margins",
		`Analyze a link power budget results table.

Loads the results CSV, optionally merges per-link input parameters, and
writes a per-scenario summary, the worst links by margin and up to four
charts into the output directory.

Usage:
  lpb-analyze --results out/results.csv
  lpb-analyze --results out/results.csv --input-links examples/links.csv --worst-n 20`)

	f := cmd.Flags()
	f.StringVar(&flags.results, "results", "", "Path to the results CSV (required)")
	f.StringVar(&flags.outdir, "outdir", config.DefaultOutputDir, "Output directory for reports and charts")
	f.StringVar(&flags.inputLinks, "input-links", "", "Optional input-links CSV to merge by link_id")
	f.IntVar(&flags.worstN, "worst-n", config.DefaultWorstN, "Number of lowest-margin links to export")
	f.BoolVar(&flags.xlsx, "xlsx", false, "Also write "+config.DefaultWorkbookName)
	f.StringVar(&flags.metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	f.StringVar(&flags.traceFile, "trace-file", "", "Write stage traces as JSON to this file")
	f.StringVar(&flags.configFile, "config", "", "Path to a YAML config file")
	_ = cmd.MarkFlagRequired("results")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, flags)
	}
	return cmd
}

func runAnalyze(cmd *cobra.Command, flags analyzeFlags) error {
	application, cleanup, err := bootstrap(flags.configFile)
	if err != nil {
		return err
	}
	defer cleanup()

	// Flags override the file and environment settings only when given
	if cmd.Flags().Changed("xlsx") {
		application.Config.Export.XLSX = flags.xlsx
	}
	if flags.metricsFile != "" {
		application.Config.Telemetry.MetricsFile = flags.metricsFile
	}
	if flags.traceFile != "" {
		application.Config.Telemetry.TraceFile = flags.traceFile
	}

	run := application.Config.Analysis(flags.results, flags.outdir)
	run.InputLinksCSV = flags.inputLinks
	run.WorstN = flags.worstN

	result, err := application.Analyze(cmd.Context(), run)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range result.StatusLines() {
		fmt.Fprintln(out, line)
	}
	return nil
}
