// Package config provides centralized configuration management for the LPB tools.
// It handles loading configuration from multiple sources, validation, and provides
// a type-safe API for accessing configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// Command-line flags are applied by the cli package on top of the loaded
// configuration when the AnalysisConfig for a run is built.
//
// # Environment Variables
//
// All environment variables follow the pattern LPB_* for namespacing:
//
//	LPB_LOGGING_LEVEL=debug
//	LPB_LOGGING_OUTPUT=both
//	LPB_COLUMNS_MARGIN=margin_db
//	LPB_COLUMNS_STATUS=lpb_status
//	LPB_EXPORT_DPI=200
//	LPB_TELEMETRY_METRICS_FILE=exports/lpb/metrics.prom
//
// # Configuration File
//
// The YAML file is taken from the --config flag, then LPB_CONFIG, then the
// first of lpb.yaml and configs/lpb.yaml found in the working directory:
//
//	columns:
//	  join_key: link_id
//	  margin: margin_db
//	export:
//	  xlsx: true
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	analysis := cfg.Analysis("results.csv", "./exports/lpb")
//
// # Testing
//
// Use config.Default() for a configuration that needs no environment
// variables or files.
package config
