package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lpbcli/internal/analysis"
	"lpbcli/internal/charts"
	"lpbcli/internal/config"
	lpberrors "lpbcli/internal/errors"
	"lpbcli/internal/generator"
	"lpbcli/internal/infrastructure"
	"lpbcli/internal/operations"
)

// Application represents the main application container
type Application struct {
	Config *config.Config
	Logger *slog.Logger
}

// New creates an application from loaded configuration
func New(cfg *config.Config, logger *slog.Logger) *Application {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Application{Config: cfg, Logger: logger}
}

// AnalysisResult is the outcome of an analyzer run
type AnalysisResult struct {
	RunID     string
	Report    *analysis.Report
	Artifacts []Artifact
	State     *operations.OperationState
}

// StatusLines returns one console line per artifact in production order
func (r *AnalysisResult) StatusLines() []string {
	lines := make([]string, len(r.Artifacts))
	for i, a := range r.Artifacts {
		lines[i] = a.StatusLine()
	}
	return lines
}

// plotStep describes one chart of the run. Optional plots name the column
// they need and the skip message printed when it is absent.
type plotStep struct {
	id     string
	name   string
	column string
	reason string
	render func(context.Context, *analysis.Dataset) (string, error)
}

// Analyze runs load → merge → summarize/save → plot for one results table
func (a *Application) Analyze(ctx context.Context, run config.AnalysisConfig) (*AnalysisResult, error) {
	const op = "app.Analyze"

	if err := run.Validate(); err != nil {
		return nil, lpberrors.NewConfigError(op, "invalid analysis settings", err)
	}

	ctx = infrastructure.EnsureRunID(ctx)
	runID := infrastructure.GetRunID(ctx)
	logger := infrastructure.WithComponent(a.Logger, "analyzer")

	tracing, err := infrastructure.InitializeTracing(ctx, a.Config.Telemetry.TraceFile, logger)
	if err != nil {
		return nil, lpberrors.NewConfigError(op, "failed to initialize tracing", err)
	}
	defer func() {
		if err := tracing.Shutdown(context.Background()); err != nil {
			logger.Warn("Tracing shutdown failed", slog.String("error", err.Error()))
		}
	}()

	ctx, span := tracing.Tracer.Start(ctx, "lpb.analyze",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("lpb.results_csv", run.ResultsCSV),
			attribute.String("lpb.output_dir", run.OutputDir),
			attribute.Int("lpb.worst_n", run.WorstN),
		),
	)
	defer span.End()

	logger.InfoContext(ctx, "Analysis started",
		slog.String("trace_id", infrastructure.TraceIDFromContext(ctx)),
		slog.String("results", run.ResultsCSV),
		slog.String("input_links", run.InputLinksCSV),
		slog.String("outdir", run.OutputDir))

	metrics, err := infrastructure.NewRunMetrics()
	if err != nil {
		return nil, lpberrors.NewConfigError(op, "failed to initialize metrics", err)
	}
	defer func() {
		if err := metrics.Shutdown(context.Background()); err != nil {
			logger.Warn("Metrics shutdown failed", slog.String("error", err.Error()))
		}
	}()
	runner := operations.NewRunner(runID, tracing.Tracer, logger).WithObserver(metrics)
	result := &AnalysisResult{RunID: runID}

	err = a.analyze(ctx, logger, run, runner, metrics, result)
	result.State = runner.Finish(err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	if path := a.Config.Telemetry.MetricsFile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			return nil, lpberrors.NewStorageError(op, "failed to write metrics", err).
				WithContext(lpberrors.ContextPath, path)
		}
		logger.InfoContext(ctx, "Run metrics written", slog.String("path", path))
	}

	logger.InfoContext(ctx, "Analysis completed",
		slog.Int("artifacts", len(result.Artifacts)),
		slog.Duration("duration", result.State.Duration()))
	return result, nil
}

func (a *Application) analyze(ctx context.Context, logger *slog.Logger, run config.AnalysisConfig, runner *operations.Runner, metrics *infrastructure.RunMetrics, result *AnalysisResult) error {
	loader := analysis.NewLoader(logger)

	var ds *analysis.Dataset
	err := runner.Run(ctx, "load", "Load results", func(ctx context.Context) error {
		var err error
		ds, err = loader.LoadResults(ctx, run)
		return err
	})
	if err != nil {
		return err
	}

	err = runner.Run(ctx, "merge", "Merge input links", func(ctx context.Context) error {
		var err error
		ds, err = loader.MergeInputs(ctx, run, ds)
		return err
	})
	if err != nil {
		return err
	}
	metrics.LinksTotal.Set(float64(ds.Len()))
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"lpb.links":   ds.Len(),
		"lpb.columns": len(ds.Columns),
		"lpb.merged":  run.InputLinksCSV != "",
	})

	opts := []analysis.ReporterOption{analysis.WithExcelBOM(a.Config.Export.ExcelBOM)}
	if a.Config.Export.XLSX {
		opts = append(opts, analysis.WithWorkbook())
	}
	reporter := analysis.NewReporter(run, logger, opts...)

	err = runner.Run(ctx, "summarize", "Summarize and save", func(ctx context.Context) error {
		var err error
		result.Report, err = reporter.SaveSummary(ctx, ds)
		return err
	})
	if err != nil {
		return err
	}

	for _, s := range result.Report.Summaries {
		metrics.ObserveScenario(s.Scenario, s.NLinks, s.PassRate, s.MarginMeanDB, s.MarginP05DB)
	}
	result.add(metrics, Artifact{Kind: KindSummary, Name: "summary", Path: result.Report.SummaryPath})
	result.add(metrics, Artifact{Kind: KindWorst, Name: "worst_links", Path: result.Report.WorstPath})
	if result.Report.WorkbookPath != "" {
		result.add(metrics, Artifact{Kind: KindWorkbook, Name: "workbook", Path: result.Report.WorkbookPath})
	}

	viz := charts.NewVisualizer(run, a.Config.Export, logger)
	for _, p := range plotSteps(run, viz) {
		if p.column != "" && !ds.HasColumn(p.column) {
			runner.Skip(ctx, p.id, p.name, p.reason)
			result.add(metrics, Artifact{Kind: KindPlot, Name: p.id, Skipped: true, Reason: p.reason})
			continue
		}

		var path string
		err := runner.Run(ctx, p.id, p.name, func(ctx context.Context) error {
			var err error
			path, err = p.render(ctx, ds)
			return err
		})
		if err != nil {
			return err
		}
		result.add(metrics, Artifact{Kind: KindPlot, Name: p.id, Path: path})
	}

	return nil
}

func plotSteps(run config.AnalysisConfig, viz *charts.Visualizer) []plotStep {
	return []plotStep{
		{
			id:     "margin_distribution",
			name:   "Margin histogram",
			render: viz.MarginHistogram,
		},
		{
			id:     "pass_or_fail_summary",
			name:   "Pass/fail summary",
			render: viz.PassFailSummary,
		},
		{
			id:     "margin_vs_length",
			name:   "Margin vs fiber length",
			column: run.FiberLengthCol,
			reason: fmt.Sprintf("missing %s — provide --input-links to merge", run.FiberLengthCol),
			render: viz.MarginVsFiberLength,
		},
		{
			id:     "top_contributors",
			name:   "Top contributors",
			column: run.TopContributorCol,
			reason: fmt.Sprintf("missing %s", run.TopContributorCol),
			render: viz.TopContributors,
		},
	}
}

func (r *AnalysisResult) add(metrics *infrastructure.RunMetrics, a Artifact) {
	r.Artifacts = append(r.Artifacts, a)
	metrics.ObserveArtifact(string(a.Kind), a.Outcome())
}

// Generate writes a synthetic links CSV
func (a *Application) Generate(ctx context.Context, gen config.GenerateConfig) (*generator.Result, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	logger := infrastructure.WithComponent(a.Logger, "generator")
	return generator.NewGenerator(gen, logger).Generate(ctx)
}
