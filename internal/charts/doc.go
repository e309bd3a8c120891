// Package charts renders the analyzer's PNG charts with gonum/plot.
//
// Every chart is saved at the configured DPI (200 by default) into the run's
// output directory. The scatter and top-contributor charts depend on
// optional columns; when the column is missing they log a warning and
// return an empty path instead of an error.
package charts
