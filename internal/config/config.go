package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Columns   ColumnsConfig   `yaml:"columns" envconfig:"COLUMNS"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// ColumnsConfig binds the logical fields of a link record to CSV column names
type ColumnsConfig struct {
	JoinKey        string `yaml:"join_key" envconfig:"JOIN_KEY" validate:"required"`
	Scenario       string `yaml:"scenario" envconfig:"SCENARIO" validate:"required"`
	Margin         string `yaml:"margin" envconfig:"MARGIN" validate:"required"`
	Status         string `yaml:"status" envconfig:"STATUS" validate:"required"`
	FiberLength    string `yaml:"fiber_length" envconfig:"FIBER_LENGTH" validate:"required"`
	TopContributor string `yaml:"top_contributor" envconfig:"TOP_CONTRIBUTOR" validate:"required"`
}

// ExportConfig contains report and chart output settings
type ExportConfig struct {
	XLSX            bool `yaml:"xlsx" envconfig:"XLSX"`
	ExcelBOM        bool `yaml:"excel_bom" envconfig:"EXCEL_BOM"`
	DPI             int  `yaml:"dpi" envconfig:"DPI" validate:"min=36,max=1200"`
	HistogramBins   int  `yaml:"histogram_bins" envconfig:"HISTOGRAM_BINS" validate:"min=1"`
	TopContributors int  `yaml:"top_contributors" envconfig:"TOP_CONTRIBUTORS" validate:"min=1"`
}

// TelemetryConfig contains optional run metrics and trace outputs.
// Empty paths disable the corresponding output.
type TelemetryConfig struct {
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
}

// AnalysisConfig is the per-run binding of paths and column names used by
// the analyzer pipeline. It is built once and passed by value.
type AnalysisConfig struct {
	ResultsCSV        string `validate:"required"`
	OutputDir         string `validate:"required"`
	InputLinksCSV     string
	JoinKey           string `validate:"required"`
	ScenarioCol       string `validate:"required"`
	MarginCol         string `validate:"required"`
	StatusCol         string `validate:"required"`
	FiberLengthCol    string `validate:"required"`
	TopContributorCol string `validate:"required"`
	WorstN            int    `validate:"min=0"`
}

// RequiredColumns returns the four columns every results table must carry
func (a AnalysisConfig) RequiredColumns() []string {
	return []string{a.JoinKey, a.ScenarioCol, a.MarginCol, a.StatusCol}
}

// AuxiliaryColumns returns the allow-list of columns merged from the input-links table
func (a AnalysisConfig) AuxiliaryColumns() []string {
	return []string{a.FiberLengthCol, SplitterLossCol, FiberAttenuationCol, EngineeringMarginCol}
}

// Validate checks the run configuration
func (a AnalysisConfig) Validate() error {
	if err := validator.New().Struct(a); err != nil {
		return fmt.Errorf("invalid analysis config: %w", err)
	}
	return nil
}

// Analysis builds the run configuration from the loaded column bindings.
// Optional inputs and worst-N are set by the caller.
func (c *Config) Analysis(resultsCSV, outputDir string) AnalysisConfig {
	return AnalysisConfig{
		ResultsCSV:        resultsCSV,
		OutputDir:         outputDir,
		JoinKey:           c.Columns.JoinKey,
		ScenarioCol:       c.Columns.Scenario,
		MarginCol:         c.Columns.Margin,
		StatusCol:         c.Columns.Status,
		FiberLengthCol:    c.Columns.FiberLength,
		TopContributorCol: c.Columns.TopContributor,
		WorstN:            DefaultWorstN,
	}
}

// GenerateConfig is the per-run configuration of the link generator
type GenerateConfig struct {
	N        int    `validate:"min=0"`
	Output   string `validate:"required"`
	Seed     int64
	Scenario string
}

// DefaultGenerate returns the generator defaults
func DefaultGenerate() GenerateConfig {
	return GenerateConfig{
		N:        DefaultGenerateCount,
		Output:   DefaultGeneratedCSV,
		Seed:     DefaultSeed,
		Scenario: DefaultScenario,
	}
}

// Validate checks the generator configuration
func (g GenerateConfig) Validate() error {
	if err := validator.New().Struct(g); err != nil {
		return fmt.Errorf("invalid generate config: %w", err)
	}
	return nil
}

// Load loads configuration from defaults, an optional YAML file and
// environment variables. An empty configFile falls back to LPB_CONFIG and
// then to the well-known locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
	}

	// Environment overrides; fields without a variable keep their value
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	return validator.New().Struct(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}

	locations := []string{
		"lpb.yaml",
		"configs/lpb.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Columns: ColumnsConfig{
			JoinKey:        DefaultJoinKey,
			Scenario:       DefaultScenarioCol,
			Margin:         DefaultMarginCol,
			Status:         DefaultStatusCol,
			FiberLength:    DefaultFiberLengthCol,
			TopContributor: DefaultTopContributor,
		},
		Export: ExportConfig{
			DPI:             DefaultDPI,
			HistogramBins:   DefaultHistogramBins,
			TopContributors: DefaultTopContributors,
		},
	}
}
