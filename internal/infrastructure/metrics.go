package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"lpbcli/internal/config"
)

// MeterName is the instrumentation scope of pipeline step metrics
const MeterName = "lpbcli.operations"

// RunMetrics collects the outcome of one analyzer run in a private
// registry so it can be written as a Prometheus textfile.
type RunMetrics struct {
	Registry *prometheus.Registry

	LinksTotal     prometheus.Gauge
	ScenarioLinks  *prometheus.GaugeVec
	PassRate       *prometheus.GaugeVec
	MarginMeanDB   *prometheus.GaugeVec
	MarginP05DB    *prometheus.GaugeVec
	ArtifactsTotal *prometheus.CounterVec

	// StepDuration is recorded through OpenTelemetry and exported into
	// Registry by the Prometheus bridge.
	MeterProvider *sdkmetric.MeterProvider
	StepDuration  metric.Float64Histogram
}

// NewRunMetrics creates and registers the run metrics
func NewRunMetrics() (*RunMetrics, error) {
	ns := config.DefaultMetricsPrefix
	m := &RunMetrics{
		Registry: prometheus.NewRegistry(),
		LinksTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "links_total",
			Help:      "Number of link records analyzed.",
		}),
		ScenarioLinks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "scenario_links",
			Help:      "Number of links per scenario.",
		}, []string{"scenario"}),
		PassRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "scenario_pass_rate",
			Help:      "Fraction of links with PASS status per scenario.",
		}, []string{"scenario"}),
		MarginMeanDB: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "scenario_margin_mean_db",
			Help:      "Mean link margin in dB per scenario.",
		}, []string{"scenario"}),
		MarginP05DB: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "scenario_margin_p05_db",
			Help:      "5th percentile link margin in dB per scenario.",
		}, []string{"scenario"}),
		ArtifactsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "artifacts_total",
			Help:      "Artifacts produced by the run, by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}

	m.Registry.MustRegister(
		m.LinksTotal,
		m.ScenarioLinks,
		m.PassRate,
		m.MarginMeanDB,
		m.MarginP05DB,
		m.ArtifactsTotal,
	)

	exporter, err := otelprom.New(
		otelprom.WithRegisterer(m.Registry),
		otelprom.WithNamespace(ns),
		otelprom.WithoutTargetInfo(),
		otelprom.WithoutScopeInfo(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	m.MeterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	m.StepDuration, err = m.MeterProvider.Meter(MeterName).Float64Histogram(
		"step.duration",
		metric.WithDescription("Duration of pipeline steps."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create step duration histogram: %w", err)
	}
	return m, nil
}

// ObserveStep records the duration and final status of a pipeline step
func (m *RunMetrics) ObserveStep(ctx context.Context, step, status string, d time.Duration) {
	m.StepDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(
			attribute.String("step", step),
			attribute.String("status", status),
		),
	)
}

// ObserveScenario records the aggregate of one scenario
func (m *RunMetrics) ObserveScenario(scenario string, links int, passRate, marginMean, marginP05 float64) {
	m.ScenarioLinks.WithLabelValues(scenario).Set(float64(links))
	m.PassRate.WithLabelValues(scenario).Set(passRate)
	m.MarginMeanDB.WithLabelValues(scenario).Set(marginMean)
	m.MarginP05DB.WithLabelValues(scenario).Set(marginP05)
}

// ObserveArtifact counts a produced ("ok") or skipped ("skip") artifact
func (m *RunMetrics) ObserveArtifact(kind, outcome string) {
	m.ArtifactsTotal.WithLabelValues(kind, outcome).Inc()
}

// WriteTextfile writes the registry in text exposition format to path
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// Shutdown stops the meter provider
func (m *RunMetrics) Shutdown(ctx context.Context) error {
	if m.MeterProvider == nil {
		return nil
	}
	return m.MeterProvider.Shutdown(ctx)
}
