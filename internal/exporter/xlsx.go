package exporter

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"lpbcli/internal/config"
	lpberrors "lpbcli/internal/errors"
)

// Sheet is one worksheet of a workbook export
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// WorkbookWriter writes report tables into a single XLSX workbook
type WorkbookWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewWorkbookWriter creates a new workbook writer
func NewWorkbookWriter(paths *config.Paths, logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{paths: paths, logger: logger}
}

// WriteWorkbook writes sheets, in order, to the named workbook and returns
// its resolved path. The first sheet replaces excelize's default sheet.
func (w *WorkbookWriter) WriteWorkbook(fileName string, sheets []Sheet) (string, error) {
	const op = "exporter.WriteWorkbook"
	if len(sheets) == 0 {
		return "", lpberrors.NewValidationError(op, "workbook needs at least one sheet")
	}

	fullPath := fileName
	if w.paths != nil {
		fullPath = w.paths.GetReportPath(fileName)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", lpberrors.NewStorageError(op, "failed to create directory", err).
			WithContext(lpberrors.ContextPath, fullPath)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", lpberrors.NewStorageError(op, "failed to create header style", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return "", lpberrors.NewStorageError(op, "failed to rename sheet", err).
					WithContext("sheet", sheet.Name)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return "", lpberrors.NewStorageError(op, "failed to add sheet", err).
				WithContext("sheet", sheet.Name)
		}

		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return "", lpberrors.NewStorageError(op, "failed to write sheet", err).
				WithContext("sheet", sheet.Name)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(fullPath); err != nil {
		return "", lpberrors.NewStorageError(op, "failed to save workbook", err).
			WithContext(lpberrors.ContextPath, fullPath)
	}

	w.logger.Debug("Workbook written",
		slog.String("path", fullPath),
		slog.Int("sheets", len(sheets)))
	return fullPath, nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	if len(sheet.Headers) > 0 {
		header := make([]interface{}, len(sheet.Headers))
		for i, h := range sheet.Headers {
			header[i] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
