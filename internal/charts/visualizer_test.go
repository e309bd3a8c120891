package charts

import (
	"bytes"
	"context"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpbcli/internal/analysis"
	"lpbcli/internal/config"
)

const mergedResults = `link_id,scenario,margin_db,lpb_status,fiber_length_km,top_contributor_1
l1,A,1.5,PASS,3.2,splice
l2,A,-0.5,FAIL,38.0,fiber
l3,B,3.0,PASS,12.0,fiber
l4,B,,FAIL,,
l5,B,abc,WARN,20.1,connector
`

func loadDataset(t *testing.T, content string) (*analysis.Dataset, config.AnalysisConfig) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := config.Default().Analysis(path, filepath.Join(dir, "out"))
	ds, err := analysis.NewLoader(nil).LoadResults(context.Background(), cfg)
	require.NoError(t, err)
	return ds, cfg
}

func assertPNG(t *testing.T, path string, width, height int) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, width, img.Width)
	assert.Equal(t, height, img.Height)
}

func TestVisualizer_AllCharts(t *testing.T) {
	ds, cfg := loadDataset(t, mergedResults)
	v := NewVisualizer(cfg, config.Default().Export, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		plot func(context.Context, *analysis.Dataset) (string, error)
		file string
	}{
		{"histogram", v.MarginHistogram, config.MarginHistogramFileName},
		{"pass fail", v.PassFailSummary, config.PassFailFileName},
		{"scatter", v.MarginVsFiberLength, config.MarginVsFiberLengthFileName},
		{"top contributors", v.TopContributors, config.TopContributorsFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := tt.plot(ctx, ds)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(cfg.OutputDir, tt.file), path)
			// 6.4 x 4.8 inches at 200 DPI
			assertPNG(t, path, 1280, 960)
		})
	}
}

func TestVisualizer_CustomDPI(t *testing.T) {
	ds, cfg := loadDataset(t, mergedResults)
	export := config.Default().Export
	export.DPI = 50

	path, err := NewVisualizer(cfg, export, nil).PassFailSummary(context.Background(), ds)
	require.NoError(t, err)
	assertPNG(t, path, 320, 240)
}

func TestVisualizer_SkipsMissingColumns(t *testing.T) {
	ds, cfg := loadDataset(t, "link_id,scenario,margin_db,lpb_status\nl1,A,1.0,PASS\n")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	v := NewVisualizer(cfg, config.ExportConfig{}, logger)

	path, err := v.MarginVsFiberLength(context.Background(), ds)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, config.MarginVsFiberLengthFileName))

	path, err = v.TopContributors(context.Background(), ds)
	require.NoError(t, err)
	assert.Empty(t, path)

	assert.Contains(t, buf.String(), "column=fiber_length_km")
	assert.Contains(t, buf.String(), "column=top_contributor_1")
}

func TestVisualizer_NoMargins(t *testing.T) {
	ds, cfg := loadDataset(t, "link_id,scenario,margin_db,lpb_status,fiber_length_km\nl1,A,,PASS,2\n")
	v := NewVisualizer(cfg, config.Default().Export, nil)

	path, err := v.MarginHistogram(context.Background(), ds)
	require.NoError(t, err)
	assert.FileExists(t, path)

	path, err = v.MarginVsFiberLength(context.Background(), ds)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestVisualizer_EmptyDataset(t *testing.T) {
	ds, cfg := loadDataset(t, "link_id,scenario,margin_db,lpb_status\n")
	v := NewVisualizer(cfg, config.Default().Export, nil)

	path, err := v.PassFailSummary(context.Background(), ds)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestStatusCounts(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     []Count
	}{
		{
			name:     "pass and fail first",
			statuses: []string{"WARN", "FAIL", "NAN", "PASS", "FAIL", "WARN"},
			want:     []Count{{"PASS", 1}, {"FAIL", 2}, {"WARN", 2}, {"NAN", 1}},
		},
		{
			name:     "no pass",
			statuses: []string{"X", "FAIL", "Y"},
			want:     []Count{{"FAIL", 1}, {"X", 1}, {"Y", 1}},
		},
		{
			name: "empty",
			want: []Count{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCounts(tt.statuses))
		})
	}
}

func TestTopValues(t *testing.T) {
	values := []string{"b", "a", "c", "a", "nan", "c", "a", "d"}

	assert.Equal(t, []Count{{"a", 3}, {"c", 2}, {"b", 1}, {"nan", 1}, {"d", 1}}, TopValues(values, 10))
	assert.Equal(t, []Count{{"a", 3}, {"c", 2}}, TopValues(values, 2))
	assert.Empty(t, TopValues(nil, 10))
}
