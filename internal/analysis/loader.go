package analysis

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"lpbcli/internal/config"
	lpberrors "lpbcli/internal/errors"
	"lpbcli/internal/validation"
)

// Loader reads and validates the results and input-links tables
type Loader struct {
	logger    *slog.Logger
	validator *validation.FileValidator
}

// NewLoader creates a new loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger,
		validator: validation.NewFileValidator(logger),
	}
}

// LoadResults reads the results CSV named by cfg and normalizes the
// required columns. It fails with a MissingFileError when the file does not
// exist and with a SchemaError when a required column is absent. No rows are
// dropped.
func (l *Loader) LoadResults(ctx context.Context, cfg config.AnalysisConfig) (*Dataset, error) {
	const op = "analysis.LoadResults"

	if err := l.validator.ValidateCSVFile(op, cfg.ResultsCSV); err != nil {
		return nil, err
	}

	tbl, err := readTable(op, cfg.ResultsCSV)
	if err != nil {
		return nil, err
	}

	if missing := tbl.missing(cfg.RequiredColumns()); len(missing) > 0 {
		l.logger.ErrorContext(ctx, "Missing required columns in results CSV",
			slog.String("file", cfg.ResultsCSV),
			slog.Any("missing", missing))
		return nil, lpberrors.NewSchemaError(op, cfg.ResultsCSV, missing)
	}

	ds := &Dataset{
		Source:  cfg.ResultsCSV,
		Columns: tbl.columns,
		Records: make([]Record, len(tbl.rows)),
	}
	unparsable := 0
	for i, row := range tbl.rows {
		fields := tbl.fields(row)
		rec := Record{
			LinkID:   fields[cfg.JoinKey],
			Scenario: TextValue(fields[cfg.ScenarioCol]),
			Margin:   ParseNumber(fields[cfg.MarginCol]),
			Status:   NormalizeStatus(fields[cfg.StatusCol]),
			Fields:   fields,
		}
		if math.IsNaN(rec.Margin) && !IsMissing(fields[cfg.MarginCol]) {
			unparsable++
		}
		ds.Records[i] = rec
	}

	if unparsable > 0 {
		l.logger.WarnContext(ctx, "Unparsable margins treated as missing",
			slog.String("column", cfg.MarginCol),
			slog.Int("count", unparsable))
	}
	l.logger.InfoContext(ctx, "Results loaded",
		slog.String("file", cfg.ResultsCSV),
		slog.Int("rows", ds.Len()),
		slog.Int("columns", len(ds.Columns)))
	return ds, nil
}

// table is a CSV file held as a header and raw rows
type table struct {
	columns []string
	rows    [][]string
}

// missing returns the names in required that are not table columns, in order
func (t *table) missing(required []string) []string {
	present := make(map[string]struct{}, len(t.columns))
	for _, c := range t.columns {
		present[c] = struct{}{}
	}
	var missing []string
	for _, c := range required {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// fields maps a row onto the column names; short rows are padded as missing
func (t *table) fields(row []string) map[string]string {
	fields := make(map[string]string, len(t.columns))
	for i, c := range t.columns {
		if i < len(row) {
			fields[c] = row[i]
		} else {
			fields[c] = ""
		}
	}
	return fields
}

// readTable reads a CSV file with a header row. Duplicate header names are
// disambiguated as name.1, name.2 and so on; blank lines are skipped.
func readTable(op, path string) (*table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lpberrors.NewStorageError(op, fmt.Sprintf("failed to read %s", path), err).
			WithContext(lpberrors.ContextPath, path)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, lpberrors.NewParsingError(op, fmt.Sprintf("no columns to parse from %s", path), err).
			WithContext(lpberrors.ContextPath, path)
	}
	if err != nil {
		return nil, lpberrors.NewParsingError(op, fmt.Sprintf("failed to read header of %s", path), err).
			WithContext(lpberrors.ContextPath, path)
	}

	t := &table{columns: dedupeColumns(header)}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, lpberrors.NewParsingError(op, fmt.Sprintf("malformed CSV in %s", path), err).
				WithContext(lpberrors.ContextPath, path)
		}
		if len(row) > len(t.columns) {
			line, _ := reader.FieldPos(0)
			return nil, lpberrors.NewParsingError(op,
				fmt.Sprintf("expected %d fields in line %d of %s, saw %d", len(t.columns), line, path, len(row)), nil).
				WithContext(lpberrors.ContextPath, path)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func dedupeColumns(header []string) []string {
	seen := make(map[string]struct{}, len(header))
	out := make([]string, len(header))
	for i, name := range header {
		candidate := name
		for n := 1; ; n++ {
			if _, dup := seen[candidate]; !dup {
				break
			}
			candidate = fmt.Sprintf("%s.%d", name, n)
		}
		seen[candidate] = struct{}{}
		out[i] = candidate
	}
	return out
}
