package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	tempDir := t.TempDir()
	outDir := filepath.Join(tempDir, "exports", "lpb")
	paths := NewPaths(outDir)

	assert.Equal(t, filepath.Join(outDir, "summary_by_scenario.csv"), paths.SummaryPath())
	assert.Equal(t, filepath.Join(outDir, "worst_10.csv"), paths.WorstPath(10))
	assert.Equal(t, filepath.Join(outDir, "worst_3.csv"), paths.WorstPath(3))
	assert.Equal(t, "worst_7.csv", WorstFileName(7))
	assert.Equal(t, filepath.Join(outDir, "chart.png"), paths.GetReportPath("chart.png"))

	abs := filepath.Join(tempDir, "elsewhere.csv")
	assert.Equal(t, abs, paths.GetReportPath(abs))

	require.NoError(t, paths.EnsureOutputDir())
	info, err := os.Stat(outDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// idempotent
	require.NoError(t, paths.EnsureOutputDir())
	paths.LogPathResolution(nil)
}

func TestNewPaths_DefaultOutputDir(t *testing.T) {
	paths := NewPaths("")
	assert.Equal(t, filepath.Clean(DefaultOutputDir), paths.OutputDir)
}
