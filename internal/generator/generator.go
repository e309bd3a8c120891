package generator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"lpbcli/internal/config"
	lpberrors "lpbcli/internal/errors"
	"lpbcli/internal/exporter"
	"lpbcli/internal/validation"
	"lpbcli/pkg/contracts/domain"
)

// Result describes a completed generation run
type Result struct {
	Path  string
	Links int
}

// Generator writes synthetic link records to CSV
type Generator struct {
	cfg    config.GenerateConfig
	logger *slog.Logger
}

// NewGenerator creates a generator for the given run configuration
func NewGenerator(cfg config.GenerateConfig, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{cfg: cfg, logger: logger}
}

// Generate writes a header row followed by N links to the configured
// output path, creating parent directories as needed.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	const op = "generator.Generate"

	if err := g.cfg.Validate(); err != nil {
		return nil, lpberrors.NewConfigError(op, "invalid generator settings", err)
	}

	dir := filepath.Dir(g.cfg.Output)
	if err := validation.NewFileValidator(g.logger).ValidateOutputDirectory(dir); err != nil {
		return nil, err
	}

	writer := exporter.NewCSVWriter(config.NewPaths(dir), g.logger)
	stream, err := writer.CreateStreamWriter(filepath.Base(g.cfg.Output), domain.SyntheticLinkColumns)
	if err != nil {
		return nil, err
	}

	s := newSampler(g.cfg.Seed)
	for i := 1; i <= g.cfg.N; i++ {
		link := s.link(i, g.cfg.Scenario)
		if err := link.Validate(); err != nil {
			stream.Close()
			return nil, lpberrors.NewValidationError(op, fmt.Sprintf("generated %s out of range: %v", link.LinkID, err))
		}
		if err := stream.WriteRecord(linkRecord(link)); err != nil {
			stream.Close()
			return nil, lpberrors.NewStorageError(op, "failed to write link", err).
				WithContext(lpberrors.ContextPath, stream.Path())
		}
	}

	if err := stream.Close(); err != nil {
		return nil, lpberrors.NewStorageError(op, "failed to flush links", err).
			WithContext(lpberrors.ContextPath, stream.Path())
	}

	g.logger.InfoContext(ctx, "Synthetic links generated",
		slog.String("path", stream.Path()),
		slog.Int("links", g.cfg.N),
		slog.Int64("seed", g.cfg.Seed),
		slog.String("scenario", g.cfg.Scenario))

	return &Result{Path: stream.Path(), Links: g.cfg.N}, nil
}

// link draws one record. The draw order is fixed so a seed always
// reproduces the same rows.
func (s *sampler) link(index int, scenario string) domain.SyntheticLink {
	length := s.fiberLength()
	return domain.SyntheticLink{
		LinkID:              fmt.Sprintf("link_%05d", index),
		Scenario:            scenario,
		FiberLengthKm:       length,
		TxPowerDBm:          s.txPower(),
		RxSensitivityDBm:    s.rxSensitivity(),
		EngineeringMarginDB: s.engineeringMargin(),
		FiberAttDBPerKm:     s.fiberAttenuation(),
		NSplice:             SpliceCount(length),
		SpliceLossDB:        s.spliceLoss(),
		NConnector:          s.connectorCount(),
		ConnectorLossDB:     s.connectorLoss(),
		SplitterLossDB:      s.splitterLoss(),
		OtherLossDB:         s.otherLoss(),
	}
}

// linkRecord renders a link in SyntheticLinkColumns order
func linkRecord(l domain.SyntheticLink) []string {
	return []string{
		l.LinkID,
		l.Scenario,
		exporter.FormatInt(l.TxPowerDBm),
		exporter.FormatInt(l.RxSensitivityDBm),
		exporter.FormatInt(l.EngineeringMarginDB),
		exporter.FormatFloat(l.FiberLengthKm),
		exporter.FormatFloat(l.FiberAttDBPerKm),
		exporter.FormatInt(l.NSplice),
		exporter.FormatFloat(l.SpliceLossDB),
		exporter.FormatInt(l.NConnector),
		exporter.FormatFloat(l.ConnectorLossDB),
		exporter.FormatFloat(l.SplitterLossDB),
		exporter.FormatFloat(l.OtherLossDB),
	}
}
