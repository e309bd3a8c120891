package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lpbcli/internal/config"
)

const threeRowResults = `link_id,scenario,margin_db,lpb_status
link_1,A,1.5,PASS
link_2,A,-0.5,FAIL
link_3,B,3.0,PASS
`

// writeFile creates name under dir with content and returns its path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// testConfig returns the default column bindings rooted in a temp dir
func testConfig(t *testing.T, resultsCSV string) config.AnalysisConfig {
	t.Helper()
	return config.Default().Analysis(resultsCSV, filepath.Join(t.TempDir(), "out"))
}

// loadString writes content as a results CSV and loads it
func loadString(t *testing.T, content string) (*Dataset, config.AnalysisConfig) {
	t.Helper()
	path := writeFile(t, t.TempDir(), "results.csv", content)
	cfg := testConfig(t, path)
	ds, err := NewLoader(nil).LoadResults(context.Background(), cfg)
	require.NoError(t, err)
	return ds, cfg
}

// chdir switches into dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
