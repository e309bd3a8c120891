package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lpbcli/internal/config"
)

func TestInitializeLogger_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	cfg := config.LoggingConfig{
		Level:    "info",
		Output:   "file",
		FilePath: logFile,
	}

	logger, cleanup, err := InitializeLogger(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger is nil")
	}

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}

	logger.Info("test message", "key", "value")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var logEntry map[string]interface{}
	if err := json.Unmarshal(content, &logEntry); err != nil {
		t.Errorf("Log output is not valid JSON: %v", err)
	}

	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}
	if logEntry["key"] != "value" {
		t.Errorf("Expected key='value', got %v", logEntry["key"])
	}
	if logEntry["level"] != "INFO" {
		t.Errorf("Expected level='INFO', got %v", logEntry["level"])
	}
}

func TestLogger_BothOutputs(t *testing.T) {
	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "both.log")

	logger, cleanup, err := NewLoggerWithWriter(config.LoggingConfig{
		Level:    "debug",
		Output:   "both",
		FilePath: logFile,
	}, &console)
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logger.Debug("fan out")
	cleanup()

	if !strings.Contains(console.String(), "msg=\"fan out\"") {
		t.Errorf("console output missing text record: %q", console.String())
	}

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"fan out"`) {
		t.Errorf("file output missing JSON record: %q", string(content))
	}
}

func TestRunIDInjection(t *testing.T) {
	var console bytes.Buffer
	logger, cleanup, err := NewLoggerWithWriter(config.LoggingConfig{Level: "info", Output: "console"}, &console)
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx := WithRunID(context.Background(), "run-123")
	logger.InfoContext(ctx, "with run")
	logger.With("component", "test").InfoContext(ctx, "with attrs")

	out := console.String()
	if strings.Count(out, "run_id=run-123") != 2 {
		t.Errorf("Expected run_id on both records, got %q", out)
	}

	console.Reset()
	logger.Info("no run")
	if strings.Contains(console.String(), "run_id") {
		t.Errorf("run_id should be absent without context value: %q", console.String())
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		logDebug bool
		logInfo  bool
		logWarn  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"warning", false, false, true},
		{"error", false, false, false},
		{"bogus", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, cleanup, err := NewLoggerWithWriter(config.LoggingConfig{Level: tt.level, Output: "console"}, &buf)
			if err != nil {
				t.Fatalf("Failed to initialize logger: %v", err)
			}
			defer cleanup()

			logger.Debug("d-line")
			logger.Info("i-line")
			logger.Warn("w-line")

			out := buf.String()
			if strings.Contains(out, "d-line") != tt.logDebug {
				t.Errorf("debug visibility = %v, want %v", !tt.logDebug, tt.logDebug)
			}
			if strings.Contains(out, "i-line") != tt.logInfo {
				t.Errorf("info visibility = %v, want %v", !tt.logInfo, tt.logInfo)
			}
			if strings.Contains(out, "w-line") != tt.logWarn {
				t.Errorf("warn visibility = %v, want %v", !tt.logWarn, tt.logWarn)
			}
		})
	}
}

func TestInitializeLogger_BadFilePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, cleanup, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Output:   "file",
		FilePath: filepath.Join(blocker, "app.log"),
	})
	if err == nil {
		t.Fatal("expected error for log path under a regular file")
	}
	if cleanup == nil {
		t.Fatal("cleanup must never be nil")
	}
}

func TestRunIDHelpers(t *testing.T) {
	ctx := EnsureRunID(context.Background())
	runID := GetRunID(ctx)
	if runID == "" {
		t.Fatal("Expected run ID to be generated")
	}

	if GetRunID(EnsureRunID(ctx)) != runID {
		t.Error("EnsureRunID changed existing run ID")
	}

	if GenerateRunID() == GenerateRunID() {
		t.Error("run IDs should be unique")
	}

	var buf bytes.Buffer
	logger, cleanup, _ := NewLoggerWithWriter(config.LoggingConfig{Level: "info", Output: "console"}, &buf)
	defer cleanup()
	WithComponent(logger, "loader").Info("hello")
	if !strings.Contains(buf.String(), "component=loader") {
		t.Errorf("component attribute missing: %q", buf.String())
	}
}
