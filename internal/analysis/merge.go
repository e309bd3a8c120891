package analysis

import (
	"context"
	"log/slog"
	"slices"

	"lpbcli/internal/config"
	lpberrors "lpbcli/internal/errors"
)

// MergeSuffix disambiguates auxiliary columns that collide with a results column.
const MergeSuffix = "_in"

// missingKey groups join keys that are missing on either side
const missingKey = "\x00missing"

// MergeInputs left-joins the allow-listed auxiliary columns of the
// input-links table onto ds by the join key. Without a configured path ds is
// returned unchanged. Unmatched rows keep missing values; a key matching
// several auxiliary rows yields one row per match in auxiliary order.
func (l *Loader) MergeInputs(ctx context.Context, cfg config.AnalysisConfig, ds *Dataset) (*Dataset, error) {
	const op = "analysis.MergeInputs"

	if cfg.InputLinksCSV == "" {
		l.logger.InfoContext(ctx, "No input links CSV provided; skipping merge")
		return ds, nil
	}

	if err := l.validator.ValidateCSVFile(op, cfg.InputLinksCSV); err != nil {
		return nil, err
	}

	aux, err := readTable(op, cfg.InputLinksCSV)
	if err != nil {
		return nil, err
	}
	if missing := aux.missing([]string{cfg.JoinKey}); len(missing) > 0 {
		l.logger.ErrorContext(ctx, "Join key not found in input links CSV",
			slog.String("file", cfg.InputLinksCSV),
			slog.String("join_key", cfg.JoinKey))
		return nil, lpberrors.NewSchemaError(op, cfg.InputLinksCSV, missing)
	}

	// Allow-listed columns present in the auxiliary table, with their
	// output names after collision suffixing.
	var pulled, outNames []string
	for _, col := range cfg.AuxiliaryColumns() {
		if len(aux.missing([]string{col})) > 0 || col == cfg.JoinKey || slices.Contains(pulled, col) {
			continue
		}
		name := col
		if ds.HasColumn(col) {
			name = col + MergeSuffix
		}
		pulled = append(pulled, col)
		outNames = append(outNames, name)
	}

	index := make(map[string][]map[string]string)
	for _, row := range aux.rows {
		fields := aux.fields(row)
		key := joinValue(fields[cfg.JoinKey])
		index[key] = append(index[key], fields)
	}

	merged := &Dataset{
		Source:  ds.Source,
		Columns: append(append([]string(nil), ds.Columns...), outNames...),
		Records: make([]Record, 0, len(ds.Records)),
	}

	matched := 0
	for _, rec := range ds.Records {
		matches := index[joinValue(rec.Fields[cfg.JoinKey])]
		if len(matches) == 0 {
			out := rec.clone()
			for _, name := range outNames {
				out.Fields[name] = ""
			}
			merged.Records = append(merged.Records, out)
			continue
		}
		matched++
		for _, m := range matches {
			out := rec.clone()
			for i, col := range pulled {
				out.Fields[outNames[i]] = m[col]
			}
			merged.Records = append(merged.Records, out)
		}
	}

	l.logger.InfoContext(ctx, "Input links merged",
		slog.String("file", cfg.InputLinksCSV),
		slog.Any("columns", outNames),
		slog.Int("matched", matched),
		slog.Int("unmatched", len(ds.Records)-matched),
		slog.Int("rows", merged.Len()))
	return merged, nil
}

func joinValue(cell string) string {
	if IsMissing(cell) {
		return missingKey
	}
	return cell
}
