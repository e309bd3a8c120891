package charts

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"lpbcli/internal/analysis"
	"lpbcli/internal/config"
	lpberrors "lpbcli/internal/errors"
)

// Visualizer renders the analyzer charts into the output directory
type Visualizer struct {
	cfg    config.AnalysisConfig
	export config.ExportConfig
	paths  *config.Paths
	logger *slog.Logger
}

// NewVisualizer creates a new visualizer. Zero export settings fall back
// to the defaults.
func NewVisualizer(cfg config.AnalysisConfig, export config.ExportConfig, logger *slog.Logger) *Visualizer {
	if logger == nil {
		logger = slog.Default()
	}
	if export.DPI <= 0 {
		export.DPI = config.DefaultDPI
	}
	if export.HistogramBins <= 0 {
		export.HistogramBins = config.DefaultHistogramBins
	}
	if export.TopContributors <= 0 {
		export.TopContributors = config.DefaultTopContributors
	}
	return &Visualizer{
		cfg:    cfg,
		export: export,
		paths:  config.NewPaths(cfg.OutputDir),
		logger: logger,
	}
}

// MarginHistogram plots the distribution of non-missing margins with a
// dashed reference line at zero margin.
func (v *Visualizer) MarginHistogram(ctx context.Context, ds *analysis.Dataset) (string, error) {
	const op = "charts.MarginHistogram"

	p := newPlot("Link Power Budget Margin Distribution", "Margin (dB)", "Number of Links")
	margins := finite(ds.Margins())

	top := 1.0
	if len(margins) > 0 {
		hist, err := plotter.NewHist(margins, v.export.HistogramBins)
		if err != nil {
			return "", lpberrors.NewRenderError(op, "failed to build histogram", err)
		}
		hist.FillColor = barColor
		p.Add(hist)
		for _, bin := range hist.Bins {
			top = math.Max(top, bin.Weight)
		}
	}

	ref, err := referenceLine(0, 0, 0, top)
	if err != nil {
		return "", lpberrors.NewRenderError(op, "failed to build reference line", err)
	}
	p.Add(ref)

	return v.write(ctx, op, p, config.MarginHistogramFileName, slog.Int("margins", len(margins)))
}

// PassFailSummary plots the number of links per status
func (v *Visualizer) PassFailSummary(ctx context.Context, ds *analysis.Dataset) (string, error) {
	const op = "charts.PassFailSummary"

	p := newPlot("Link Power Budget Pass or Fail Summary", "Status", "Number of Links")
	counts := StatusCounts(ds.Statuses())

	if len(counts) > 0 {
		bars, err := barChart(counts, false)
		if err != nil {
			return "", lpberrors.NewRenderError(op, "failed to build bar chart", err)
		}
		p.Add(bars)
		p.NominalX(labels(counts)...)
	}

	return v.write(ctx, op, p, config.PassFailFileName, slog.Int("statuses", len(counts)))
}

// MarginVsFiberLength plots margin against fiber length with PASS links
// and all other links as separate series. It returns "" without error when
// the fiber length column is absent.
func (v *Visualizer) MarginVsFiberLength(ctx context.Context, ds *analysis.Dataset) (string, error) {
	const op = "charts.MarginVsFiberLength"

	if !ds.HasColumn(v.cfg.FiberLengthCol) {
		v.logger.WarnContext(ctx, "Fiber length column not found; skipping margin vs length plot",
			slog.String("column", v.cfg.FiberLengthCol))
		return "", nil
	}

	p := newPlot("Margin vs Fiber Length", "Fiber Length (km)", "Margin (dB)")
	p.Legend.Top = true

	lengths := ds.Numeric(v.cfg.FiberLengthCol)
	var pass, fail plotter.XYs
	xmin, xmax := math.Inf(1), math.Inf(-1)
	for i, rec := range ds.Records {
		x, y := lengths[i], rec.Margin
		if !isFinite(x) || !isFinite(y) {
			continue
		}
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
		if rec.Status == analysis.StatusPass {
			pass = append(pass, plotter.XY{X: x, Y: y})
		} else {
			fail = append(fail, plotter.XY{X: x, Y: y})
		}
	}

	for _, series := range []struct {
		name string
		xys  plotter.XYs
		c    draw.GlyphStyle
	}{
		{analysis.StatusPass, pass, draw.GlyphStyle{Color: passColor, Radius: vg.Points(2), Shape: draw.CircleGlyph{}}},
		{analysis.StatusFail, fail, draw.GlyphStyle{Color: failColor, Radius: vg.Points(2), Shape: draw.CircleGlyph{}}},
	} {
		if len(series.xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(series.xys)
		if err != nil {
			return "", lpberrors.NewRenderError(op, "failed to build scatter", err)
		}
		s.GlyphStyle = series.c
		p.Add(s)
		p.Legend.Add(series.name, s)
	}

	if xmin > xmax {
		xmin, xmax = 0, 1
	}
	ref, err := referenceLine(xmin, 0, xmax, 0)
	if err != nil {
		return "", lpberrors.NewRenderError(op, "failed to build reference line", err)
	}
	p.Add(ref)

	return v.write(ctx, op, p, config.MarginVsFiberLengthFileName,
		slog.Int("pass_points", len(pass)),
		slog.Int("fail_points", len(fail)))
}

// TopContributors plots the most frequent values of the top contributor
// column as horizontal bars, most frequent at the top. It returns ""
// without error when the column is absent.
func (v *Visualizer) TopContributors(ctx context.Context, ds *analysis.Dataset) (string, error) {
	const op = "charts.TopContributors"

	if !ds.HasColumn(v.cfg.TopContributorCol) {
		v.logger.WarnContext(ctx, "Top contributor column not found; skipping top contributors plot",
			slog.String("column", v.cfg.TopContributorCol))
		return "", nil
	}

	p := newPlot(
		fmt.Sprintf("Top %d Contributors to Margin Failures", v.export.TopContributors),
		"Number of Links",
		"Contributor: "+v.cfg.TopContributorCol)

	counts := TopValues(ds.Text(v.cfg.TopContributorCol), v.export.TopContributors)
	// bottom-up order puts the most frequent bar at the top
	reversed := make([]Count, len(counts))
	for i, c := range counts {
		reversed[len(counts)-1-i] = c
	}

	if len(reversed) > 0 {
		bars, err := barChart(reversed, true)
		if err != nil {
			return "", lpberrors.NewRenderError(op, "failed to build bar chart", err)
		}
		p.Add(bars)
		p.NominalY(labels(reversed)...)
	}

	return v.write(ctx, op, p, config.TopContributorsFileName, slog.Int("values", len(counts)))
}

// write saves p under name in the output directory and returns its path
func (v *Visualizer) write(ctx context.Context, op string, p *plot.Plot, name string, attrs ...any) (string, error) {
	if err := v.paths.EnsureOutputDir(); err != nil {
		return "", lpberrors.NewRenderError(op, "failed to create output directory", err)
	}
	path := v.paths.GetReportPath(name)
	if err := save(op, p, config.DefaultChartWidthIn, config.DefaultChartHeightIn, v.export.DPI, path); err != nil {
		return "", err
	}

	v.logger.InfoContext(ctx, "Plot saved",
		append([]any{slog.String("path", path), slog.Int("dpi", v.export.DPI)}, attrs...)...)
	return path, nil
}

func barChart(counts []Count, horizontal bool) (*plotter.BarChart, error) {
	values := make(plotter.Values, len(counts))
	for i, c := range counts {
		values[i] = float64(c.N)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	bars.Horizontal = horizontal
	return bars, nil
}

func labels(counts []Count) []string {
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Label
	}
	return out
}
