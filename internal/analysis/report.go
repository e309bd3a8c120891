package analysis

import (
	"context"
	"log/slog"

	"lpbcli/internal/config"
	lpberrors "lpbcli/internal/errors"
	"lpbcli/internal/exporter"
)

// Sheet names of the optional workbook
const (
	SummarySheet    = "summary"
	WorstLinksSheet = "worst_links"
)

// Report lists the artifacts written by SaveSummary
type Report struct {
	SummaryPath  string
	WorstPath    string
	WorkbookPath string
	Summaries    []ScenarioSummary
	Worst        []Record
}

// Reporter persists the summary and worst-links tables
type Reporter struct {
	cfg      config.AnalysisConfig
	paths    *config.Paths
	csv      *exporter.CSVWriter
	workbook *exporter.WorkbookWriter
	logger   *slog.Logger
}

// ReporterOption configures a Reporter
type ReporterOption func(*Reporter)

// WithWorkbook also writes both tables to an XLSX workbook
func WithWorkbook() ReporterOption {
	return func(r *Reporter) {
		r.workbook = exporter.NewWorkbookWriter(r.paths, r.logger)
	}
}

// WithExcelBOM prefixes the CSV outputs with a UTF-8 BOM
func WithExcelBOM(enabled bool) ReporterOption {
	return func(r *Reporter) {
		r.csv.WithBOM(enabled)
	}
}

// NewReporter creates a reporter writing into cfg.OutputDir
func NewReporter(cfg config.AnalysisConfig, logger *slog.Logger, opts ...ReporterOption) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	paths := config.NewPaths(cfg.OutputDir)
	paths.LogPathResolution(logger)
	r := &Reporter{
		cfg:    cfg,
		paths:  paths,
		csv:    exporter.NewCSVWriter(paths, logger),
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WorstHeaders returns the worst-links table header
func WorstHeaders(cfg config.AnalysisConfig) []string {
	return []string{cfg.JoinKey, cfg.ScenarioCol, cfg.MarginCol, cfg.StatusCol}
}

// SaveSummary writes summary_by_scenario.csv and worst_{N}.csv into the
// output directory, creating it if needed and overwriting existing files.
func (r *Reporter) SaveSummary(ctx context.Context, ds *Dataset) (*Report, error) {
	const op = "analysis.SaveSummary"

	if err := r.paths.EnsureOutputDir(); err != nil {
		return nil, lpberrors.NewStorageError(op, "failed to create output directory", err).
			WithContext(lpberrors.ContextPath, r.paths.OutputDir)
	}

	report := &Report{
		Summaries: Summarize(ds, r.cfg),
		Worst:     WorstLinks(ds, r.cfg.WorstN),
	}

	summaryPath, err := r.csv.WriteSimpleCSV(config.SummaryFileName, SummaryHeaders(r.cfg), summaryRows(report.Summaries))
	if err != nil {
		return nil, err
	}
	report.SummaryPath = summaryPath

	worstPath, err := r.csv.WriteSimpleCSV(config.WorstFileName(r.cfg.WorstN), WorstHeaders(r.cfg), r.worstRows(report.Worst))
	if err != nil {
		return nil, err
	}
	report.WorstPath = worstPath

	r.logger.InfoContext(ctx, "Summary saved",
		slog.String("summary_path", summaryPath),
		slog.Int("scenarios", len(report.Summaries)))
	r.logger.InfoContext(ctx, "Worst links saved",
		slog.String("worst_path", worstPath),
		slog.Int("rows", len(report.Worst)))

	if r.workbook != nil {
		workbookPath, err := r.workbook.WriteWorkbook(config.DefaultWorkbookName, r.sheets(report))
		if err != nil {
			return nil, err
		}
		report.WorkbookPath = workbookPath
		r.logger.InfoContext(ctx, "Workbook saved", slog.String("workbook_path", workbookPath))
	}

	return report, nil
}

func summaryRows(summaries []ScenarioSummary) [][]string {
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{
			s.Scenario,
			exporter.FormatInt(s.NLinks),
			exporter.FormatFloat(s.PassRate),
			exporter.FormatFloat(s.FailRate),
			exporter.FormatFloat(s.MarginMeanDB),
			exporter.FormatFloat(s.MarginMedianDB),
			exporter.FormatFloat(s.MarginP05DB),
			exporter.FormatFloat(s.MarginP95DB),
			exporter.FormatFloat(s.MarginMinDB),
			exporter.FormatFloat(s.MarginMaxDB),
		}
	}
	return rows
}

func (r *Reporter) worstRows(worst []Record) [][]string {
	rows := make([][]string, len(worst))
	for i, rec := range worst {
		rows[i] = []string{
			rec.LinkID,
			rec.Scenario,
			exporter.FormatFloat(rec.Margin),
			rec.Status,
		}
	}
	return rows
}

func (r *Reporter) sheets(report *Report) []exporter.Sheet {
	summary := exporter.Sheet{Name: SummarySheet, Headers: SummaryHeaders(r.cfg)}
	for _, s := range report.Summaries {
		summary.Rows = append(summary.Rows, []interface{}{
			s.Scenario,
			s.NLinks,
			exporter.FloatCell(s.PassRate),
			exporter.FloatCell(s.FailRate),
			exporter.FloatCell(s.MarginMeanDB),
			exporter.FloatCell(s.MarginMedianDB),
			exporter.FloatCell(s.MarginP05DB),
			exporter.FloatCell(s.MarginP95DB),
			exporter.FloatCell(s.MarginMinDB),
			exporter.FloatCell(s.MarginMaxDB),
		})
	}

	worst := exporter.Sheet{Name: WorstLinksSheet, Headers: WorstHeaders(r.cfg)}
	for _, rec := range report.Worst {
		worst.Rows = append(worst.Rows, []interface{}{
			rec.LinkID,
			rec.Scenario,
			exporter.FloatCell(rec.Margin),
			rec.Status,
		})
	}
	return []exporter.Sheet{summary, worst}
}
