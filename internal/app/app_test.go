package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpbcli/internal/config"
	lpberrors "lpbcli/internal/errors"
	"lpbcli/internal/operations"
)

const results = `link_id,scenario,margin_db,lpb_status,top_contributor_1
link_1,A,1.5,PASS,fiber
link_2,A,-0.5,FAIL,splice
link_3,B,3.0,PASS,fiber
`

const inputLinks = `link_id,fiber_length_km,splitter_loss_db
link_1,3.2,0.5
link_2,38.0,1.0
link_3,12.0,2.0
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnalyze_SkipsFiberLengthPlot(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	run := cfg.Analysis(writeFile(t, dir, "results.csv", results), filepath.Join(dir, "out"))

	res, err := New(cfg, nil).Analyze(context.Background(), run)
	require.NoError(t, err)

	outDir := filepath.Join(dir, "out")
	assert.Equal(t, []string{
		"[OK] Summary: " + filepath.Join(outDir, config.SummaryFileName),
		"[OK] Worst links: " + filepath.Join(outDir, "worst_10.csv"),
		"[OK] Plot: " + filepath.Join(outDir, config.MarginHistogramFileName),
		"[OK] Plot: " + filepath.Join(outDir, config.PassFailFileName),
		"[SKIP] margin_vs_length (missing fiber_length_km — provide --input-links to merge)",
		"[OK] Plot: " + filepath.Join(outDir, config.TopContributorsFileName),
	}, res.StatusLines())

	assert.NoFileExists(t, filepath.Join(outDir, config.MarginVsFiberLengthFileName))
	assert.FileExists(t, filepath.Join(outDir, config.MarginHistogramFileName))

	require.Len(t, res.Report.Summaries, 2)
	assert.Equal(t, "A", res.Report.Summaries[0].Scenario)
	assert.Equal(t, 0.5, res.Report.Summaries[0].PassRate)
	assert.Equal(t, 1.0, res.Report.Summaries[1].PassRate)

	assert.Equal(t, operations.OperationStatusCompleted, res.State.Status)
	assert.Len(t, res.State.StepsWithStatus(operations.StepStatusSkipped), 1)
	assert.NotEmpty(t, res.RunID)
}

func TestAnalyze_WithInputLinksAndTelemetry(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Export.XLSX = true
	cfg.Telemetry.MetricsFile = filepath.Join(dir, "metrics", "lpb.prom")
	cfg.Telemetry.TraceFile = filepath.Join(dir, "trace.json")

	run := cfg.Analysis(writeFile(t, dir, "results.csv", results), filepath.Join(dir, "out"))
	run.InputLinksCSV = writeFile(t, dir, "links.csv", inputLinks)
	run.WorstN = 2

	res, err := New(cfg, nil).Analyze(context.Background(), run)
	require.NoError(t, err)

	for _, line := range res.StatusLines() {
		assert.False(t, strings.HasPrefix(line, "[SKIP]"), line)
	}
	assert.Contains(t, res.StatusLines(), "[OK] Workbook: "+filepath.Join(dir, "out", config.DefaultWorkbookName))
	assert.FileExists(t, filepath.Join(dir, "out", "worst_2.csv"))
	assert.FileExists(t, filepath.Join(dir, "out", config.MarginVsFiberLengthFileName))

	metrics, err := os.ReadFile(cfg.Telemetry.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "lpb_links_total 3")
	assert.Contains(t, string(metrics), `lpb_scenario_pass_rate{scenario="A"} 0.5`)
	assert.Contains(t, string(metrics), `lpb_artifacts_total{kind="plot",outcome="ok"} 4`)
	assert.Contains(t, string(metrics), `lpb_step_duration_seconds_count{status="completed",step="load"} 1`)

	trace, err := os.ReadFile(cfg.Telemetry.TraceFile)
	require.NoError(t, err)
	assert.Contains(t, string(trace), "operation.step.load")
	assert.Contains(t, string(trace), "lpb.analyze")
}

func TestAnalyze_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()

	t.Run("missing results file", func(t *testing.T) {
		run := cfg.Analysis(filepath.Join(dir, "absent.csv"), filepath.Join(dir, "out"))
		_, err := New(cfg, nil).Analyze(context.Background(), run)
		assert.ErrorIs(t, err, lpberrors.ErrMissingFile)
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeFile(t, dir, "bad.csv", "link_id,scenario,margin_db\nl1,A,1.0\n")
		run := cfg.Analysis(path, filepath.Join(dir, "out"))
		_, err := New(cfg, nil).Analyze(context.Background(), run)
		assert.ErrorIs(t, err, lpberrors.ErrSchema)
		assert.Equal(t, []string{"lpb_status"}, lpberrors.MissingColumns(err))
	})

	t.Run("invalid settings", func(t *testing.T) {
		run := cfg.Analysis("", filepath.Join(dir, "out"))
		_, err := New(cfg, nil).Analyze(context.Background(), run)
		assert.ErrorIs(t, err, lpberrors.ErrConfig)
	})
}

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen", "links.csv")
	gen := config.DefaultGenerate()
	gen.N = 5
	gen.Output = out

	res, err := New(nil, nil).Generate(context.Background(), gen)
	require.NoError(t, err)
	assert.Equal(t, out, res.Path)
	assert.Equal(t, 5, res.Links)
	assert.FileExists(t, out)
}

func TestArtifact_StatusLine(t *testing.T) {
	tests := []struct {
		artifact Artifact
		want     string
	}{
		{Artifact{Kind: KindSummary, Path: "s.csv"}, "[OK] Summary: s.csv"},
		{Artifact{Kind: KindWorst, Path: "w.csv"}, "[OK] Worst links: w.csv"},
		{Artifact{Kind: KindWorkbook, Path: "r.xlsx"}, "[OK] Workbook: r.xlsx"},
		{Artifact{Kind: KindPlot, Path: "p.png"}, "[OK] Plot: p.png"},
		{Artifact{Kind: KindPlot, Name: "top_contributors", Skipped: true, Reason: "missing x"}, "[SKIP] top_contributors (missing x)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.artifact.StatusLine())
	}
	assert.Equal(t, "skip", tests[4].artifact.Outcome())
	assert.Equal(t, "ok", tests[0].artifact.Outcome())
}
