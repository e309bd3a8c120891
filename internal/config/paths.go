package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths resolves artifact locations for a single run.
// Relative artifact names are placed in the output directory.
type Paths struct {
	OutputDir string
}

// NewPaths returns the paths for the given output directory
func NewPaths(outputDir string) *Paths {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return &Paths{OutputDir: filepath.Clean(outputDir)}
}

// GetReportPath returns the full path of a report artifact
func (p *Paths) GetReportPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.OutputDir, filename)
}

// SummaryPath returns the per-scenario summary CSV path
func (p *Paths) SummaryPath() string {
	return p.GetReportPath(SummaryFileName)
}

// WorstFileName returns the bare worst-N links file name
func WorstFileName(n int) string {
	return fmt.Sprintf(WorstFilePattern, n)
}

// WorstPath returns the worst-N links CSV path
func (p *Paths) WorstPath(n int) string {
	return p.GetReportPath(WorstFileName(n))
}

// EnsureOutputDir creates the output directory if it does not exist
func (p *Paths) EnsureOutputDir() error {
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", p.OutputDir, err)
	}
	return nil
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(p.OutputDir)
	if err != nil {
		abs = p.OutputDir
	}
	logger.Debug("Resolved output paths",
		slog.String("output_dir", p.OutputDir),
		slog.String("output_dir_abs", abs),
		slog.String("summary_csv", p.SummaryPath()))
}
