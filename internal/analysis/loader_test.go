package analysis

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lpberrors "lpbcli/internal/errors"
)

func TestLoadResults_ThreeRows(t *testing.T) {
	ds, _ := loadString(t, threeRowResults)

	require.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"link_id", "scenario", "margin_db", "lpb_status"}, ds.Columns)
	assert.Equal(t, "link_1", ds.Records[0].LinkID)
	assert.Equal(t, "A", ds.Records[0].Scenario)
	assert.Equal(t, 1.5, ds.Records[0].Margin)
	assert.Equal(t, "PASS", ds.Records[0].Status)
	assert.Equal(t, -0.5, ds.Records[1].Margin)
	assert.Equal(t, "B", ds.Records[2].Scenario)
}

func TestLoadResults_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")
	cfg := testConfig(t, path)

	_, err := NewLoader(nil).LoadResults(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lpberrors.ErrMissingFile))
	assert.Equal(t, path, lpberrors.Path(err))

	var appErr *lpberrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "analysis.LoadResults", appErr.Op)
}

func TestLoadResults_SchemaCheck(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		missing []string
	}{
		{"all present", "link_id,scenario,margin_db,lpb_status", nil},
		{"extra columns", "x,link_id,scenario,margin_db,lpb_status,fiber_length_km", nil},
		{"missing status", "link_id,scenario,margin_db", []string{"lpb_status"}},
		{"missing key and margin", "scenario,lpb_status", []string{"link_id", "margin_db"}},
		{"case sensitive", "LINK_ID,scenario,margin_db,lpb_status", []string{"link_id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "results.csv", tt.header+"\n")
			_, err := NewLoader(nil).LoadResults(context.Background(), testConfig(t, path))

			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, lpberrors.ErrSchema))
			assert.Equal(t, tt.missing, lpberrors.MissingColumns(err))
		})
	}
}

func TestLoadResults_CustomColumns(t *testing.T) {
	path := writeFile(t, t.TempDir(), "results.csv", "id,case,m,s\nx,A,1,pass\n")
	cfg := testConfig(t, path)
	cfg.JoinKey, cfg.ScenarioCol, cfg.MarginCol, cfg.StatusCol = "id", "case", "m", "s"

	ds, err := NewLoader(nil).LoadResults(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "x", ds.Records[0].LinkID)
	assert.Equal(t, 1.0, ds.Records[0].Margin)
	assert.Equal(t, "PASS", ds.Records[0].Status)
}

func TestLoadResults_Normalization(t *testing.T) {
	ds, _ := loadString(t, `link_id,scenario,margin_db,lpb_status
l1,A,abc,pass
l2,,,  fail
l3,NA,2.25,NA
l4,7, -1 ,Pass
l5,A,1e1,
`)

	require.Equal(t, 5, ds.Len())

	assert.True(t, math.IsNaN(ds.Records[0].Margin), "unparsable margin is missing")
	assert.Equal(t, "PASS", ds.Records[0].Status)

	assert.True(t, math.IsNaN(ds.Records[1].Margin))
	assert.Equal(t, "nan", ds.Records[1].Scenario)
	assert.Equal(t, "FAIL", ds.Records[1].Status)

	assert.Equal(t, "nan", ds.Records[2].Scenario)
	assert.Equal(t, 2.25, ds.Records[2].Margin)
	assert.Equal(t, "NAN", ds.Records[2].Status)

	assert.Equal(t, "7", ds.Records[3].Scenario)
	assert.Equal(t, -1.0, ds.Records[3].Margin)
	assert.Equal(t, "PASS", ds.Records[3].Status)

	assert.Equal(t, 10.0, ds.Records[4].Margin)
	assert.Equal(t, "NAN", ds.Records[4].Status)
}

func TestLoadResults_ShortRowsAndBOM(t *testing.T) {
	ds, _ := loadString(t, "\xEF\xBB\xBFlink_id,scenario,margin_db,lpb_status,top_contributor_1\nl1,A,1.0,PASS\n\nl2,A,2.0,FAIL,splice\n")

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "link_id", ds.Columns[0])
	v, ok := ds.Records[0].Value("top_contributor_1")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, []string{"nan", "splice"}, ds.Text("top_contributor_1"))
}

func TestLoadResults_ParsingErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"too many fields", "link_id,scenario,margin_db,lpb_status\nl1,A,1,PASS,extra\n"},
		{"bare quote", "link_id,scenario,margin_db,lpb_status\nl1,\"A,1,PASS\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "results.csv", tt.content)
			_, err := NewLoader(nil).LoadResults(context.Background(), testConfig(t, path))
			require.Error(t, err)

			var appErr *lpberrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, lpberrors.ErrTypeParsing, appErr.Type)
		})
	}
}

func TestDedupeColumns(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "a.1", "a.2"}, dedupeColumns([]string{"a", "b", "a", "a"}))
	assert.Equal(t, []string{"a", "a.1", "a.2"}, dedupeColumns([]string{"a", "a.1", "a"}))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 1.5, ParseNumber("1.5"))
	assert.Equal(t, -3.0, ParseNumber(" -3 "))
	assert.True(t, math.IsNaN(ParseNumber("")))
	assert.True(t, math.IsNaN(ParseNumber("N/A")))
	assert.True(t, math.IsNaN(ParseNumber("x1")))
}
