// Package errors defines the typed failures of the LPB pipelines.
//
// Every failure is an *AppError carrying its ErrorType, the operation it
// originated in and structured context. Callers branch on the kind with the
// sentinels:
//
//	if errors.Is(err, lpberrors.ErrSchema) {
//	    cols := lpberrors.MissingColumns(err)
//	}
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by errors.Is against an *AppError of the same type.
var (
	// ErrMissingFile indicates a configured input path does not exist.
	ErrMissingFile = stderrors.New("missing file")

	// ErrSchema indicates a required column is absent from a loaded table.
	ErrSchema = stderrors.New("schema error")

	// ErrConfig indicates an invalid run configuration.
	ErrConfig = stderrors.New("config error")
)

var sentinels = map[ErrorType]error{
	ErrTypeMissingFile: ErrMissingFile,
	ErrTypeSchema:      ErrSchema,
	ErrTypeConfig:      ErrConfig,
}

// Context keys set by the constructors below
const (
	ContextPath           = "path"
	ContextSource         = "source"
	ContextMissingColumns = "missing_columns"
)

// NewMissingFileError reports that path does not exist
func NewMissingFileError(op, path string, cause error) *AppError {
	return NewAppError(ErrTypeMissingFile, op, fmt.Sprintf("file not found: %s", path), cause).
		WithContext(ContextPath, path)
}

// NewSchemaError reports columns absent from the table read from source
func NewSchemaError(op, source string, missing []string) *AppError {
	cols := append([]string(nil), missing...)
	return NewAppError(ErrTypeSchema, op,
		fmt.Sprintf("missing required columns in %s: [%s]", source, strings.Join(cols, ", ")), nil).
		WithContext(ContextSource, source).
		WithContext(ContextMissingColumns, cols)
}

// MissingColumns returns the missing column names of a schema error, or nil
func MissingColumns(err error) []string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) || appErr.Type != ErrTypeSchema {
		return nil
	}
	cols, _ := appErr.Context[ContextMissingColumns].([]string)
	return cols
}

// Path returns the path attached to an error, or ""
func Path(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return ""
	}
	path, _ := appErr.Context[ContextPath].(string)
	return path
}
