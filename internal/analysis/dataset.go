package analysis

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// MissingText is the text a missing cell takes when coerced to a label.
const MissingText = "nan"

// missingTokens are the cell values read as missing.
var missingTokens = map[string]struct{}{
	"":         {},
	"NA":       {},
	"N/A":      {},
	"n/a":      {},
	"NaN":      {},
	"nan":      {},
	"-nan":     {},
	"-NaN":     {},
	"NULL":     {},
	"null":     {},
	"None":     {},
	"<NA>":     {},
	"#N/A":     {},
	"#NA":      {},
	"#N/A N/A": {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"1.#IND":   {},
	"1.#QNAN":  {},
}

// IsMissing reports whether a raw cell value denotes a missing value
func IsMissing(cell string) bool {
	_, ok := missingTokens[cell]
	return ok
}

// ParseNumber converts a cell to float64. Missing or unparsable cells
// yield NaN, never an error.
func ParseNumber(cell string) float64 {
	if IsMissing(cell) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// TextValue coerces a cell to a label; missing cells become "nan"
func TextValue(cell string) string {
	if IsMissing(cell) {
		return MissingText
	}
	return cell
}

// NormalizeStatus upper-cases and trims a status cell
func NormalizeStatus(cell string) string {
	return strings.TrimSpace(strings.ToUpper(TextValue(cell)))
}

// Record is one link row. The typed fields hold the normalized required
// columns; Fields holds every cell by column name as read.
type Record struct {
	LinkID   string
	Scenario string
	Margin   float64
	Status   string
	Fields   map[string]string
}

// Value returns the raw cell of col and whether the column exists
func (r Record) Value(col string) (string, bool) {
	v, ok := r.Fields[col]
	return v, ok
}

// clone returns a copy of r with its own Fields map
func (r Record) clone() Record {
	out := r
	out.Fields = make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}

// Dataset is an ordered set of link records sharing one column list.
// Pipeline steps return new datasets and never mutate their input.
type Dataset struct {
	Source  string
	Columns []string
	Records []Record
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// HasColumn reports whether col is part of the dataset
func (d *Dataset) HasColumn(col string) bool {
	return slices.Contains(d.Columns, col)
}

// Margins returns the margin of every record, NaN where missing
func (d *Dataset) Margins() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Margin
	}
	return out
}

// Numeric returns col coerced to numbers, NaN where missing or unparsable
func (d *Dataset) Numeric(col string) []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		cell, ok := r.Fields[col]
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = ParseNumber(cell)
	}
	return out
}

// Text returns col coerced to labels, "nan" where missing
func (d *Dataset) Text(col string) []string {
	out := make([]string, len(d.Records))
	for i, r := range d.Records {
		out[i] = TextValue(r.Fields[col])
	}
	return out
}

// Statuses returns the normalized status of every record
func (d *Dataset) Statuses() []string {
	out := make([]string, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Status
	}
	return out
}
