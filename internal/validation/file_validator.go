package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	lpberrors "lpbcli/internal/errors"
)

// FileValidator provides the file checks shared by both executables
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile checks that a configured input exists and is a readable
// regular file. A missing path yields a MissingFileError attributed to op.
func (v *FileValidator) ValidateInputFile(op, path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("op", op),
			slog.String("file", path))
		return lpberrors.NewMissingFileError(op, path, err)
	}
	if err != nil {
		v.logger.Error("Failed to stat input file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return lpberrors.NewStorageError(op, fmt.Sprintf("failed to stat file %s", path), err).
			WithContext(lpberrors.ContextPath, path)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory, not a file",
			slog.String("path", path))
		return lpberrors.NewValidationError(op, fmt.Sprintf("%s is a directory, not a file", path)).
			WithContext(lpberrors.ContextPath, path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return lpberrors.NewStorageError(op, fmt.Sprintf("file %s is not readable", path), err).
			WithContext(lpberrors.ContextPath, path)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateCSVFile checks an input file and warns when it does not carry a
// .csv extension. The extension is advisory; content decides.
func (v *FileValidator) ValidateCSVFile(op, path string) error {
	if err := v.ValidateInputFile(op, path); err != nil {
		return err
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		v.logger.Warn("Input file does not have a .csv extension",
			slog.String("file", path),
			slog.String("extension", ext))
	}
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	const op = "validation.ValidateOutputDirectory"

	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return lpberrors.NewStorageError(op, fmt.Sprintf("failed to create output directory %s", dir), err).
			WithContext(lpberrors.ContextPath, dir)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return lpberrors.NewStorageError(op, fmt.Sprintf("output directory %s is not writable", dir), err).
			WithContext(lpberrors.ContextPath, dir)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
