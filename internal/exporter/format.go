package exporter

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat formats a float64 for CSV output in shortest round-trip form.
// Whole values keep a trailing ".0" so float columns stay recognisable as
// floats; NaN is written as an empty cell.
func FormatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// FormatInt formats an integer value for CSV output
func FormatInt(i int) string {
	return strconv.Itoa(i)
}

// FloatCell returns f for workbook cells, or nil for NaN so the cell stays empty
func FloatCell(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
