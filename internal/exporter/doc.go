// Package exporter writes the report artifacts of an LPB run.
//
// This package contains two writers:
//
// CSVWriter: core CSV writing with headers, overwrite semantics, streaming
// for large outputs, and an optional UTF-8 BOM for Excel compatibility.
// Relative file names resolve into the run's output directory.
//
// WorkbookWriter: writes several tables as named sheets of one XLSX
// workbook using excelize.
//
// Example usage:
//
//	paths := config.NewPaths("./exports/lpb")
//	writer := exporter.NewCSVWriter(paths, logger)
//	path, err := writer.WriteSimpleCSV("summary_by_scenario.csv", headers, rows)
//
//	stream, err := writer.CreateStreamWriter("links.csv", headers)
//	defer stream.Close()
//	err = stream.WriteRecord(row)
package exporter
