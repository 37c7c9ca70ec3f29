package observability

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug level", input: "debug", expected: slog.LevelDebug},
		{name: "info level", input: "info", expected: slog.LevelInfo},
		{name: "warn level", input: "warn", expected: slog.LevelWarn},
		{name: "warning level", input: "warning", expected: slog.LevelWarn},
		{name: "error level", input: "error", expected: slog.LevelError},
		{name: "uppercase DEBUG", input: "DEBUG", expected: slog.LevelDebug},
		{name: "uppercase INFO", input: "INFO", expected: slog.LevelInfo},
		{name: "uppercase WARN", input: "WARN", expected: slog.LevelWarn},
		{name: "uppercase ERROR", input: "ERROR", expected: slog.LevelError},
		{name: "mixed case Info", input: "Info", expected: slog.LevelInfo},
		{name: "empty string defaults to info", input: "", expected: slog.LevelInfo},
		{name: "unknown level defaults to info", input: "unknown", expected: slog.LevelInfo},
		{name: "gibberish defaults to info", input: "xyzzy", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestInitLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{
		Output:  &buf,
		Level:   "debug",
		Format:  "json",
		Service: "scamguard",
	})
	if logger == nil {
		t.Fatal("InitLogger returned nil")
	}

	logger.Info("test message", "key", "value")

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "test message" {
		t.Errorf("expected msg %q, got %v", "test message", record["msg"])
	}
	if record["service"] != "scamguard" {
		t.Errorf("expected service attribute, got %v", record["service"])
	}
	if record["key"] != "value" {
		t.Errorf("expected key attribute, got %v", record["key"])
	}
}

func TestInitLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Output: &buf, Level: "info", Format: "text"})

	logger.Info("test message", "key", "value")

	if !strings.Contains(buf.String(), "msg=\"test message\"") {
		t.Errorf("expected text handler output, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "service=") {
		t.Errorf("expected no service attribute when unset, got %q", buf.String())
	}
}

func TestInitLoggerDefaultFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Output: &buf, Level: "warn"})

	logger.Warn("warning message")

	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("expected text output by default, got %q", buf.String())
	}
}

func TestInitLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		level    string
		debugOut bool
		infoOut  bool
		warnOut  bool
	}{
		{level: "debug", debugOut: true, infoOut: true, warnOut: true},
		{level: "info", debugOut: false, infoOut: true, warnOut: true},
		{level: "warn", debugOut: false, infoOut: false, warnOut: true},
		{level: "error", debugOut: false, infoOut: false, warnOut: false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := InitLogger(LogConfig{Output: &buf, Level: tt.level, Format: "json"})

			logger.Debug("debug msg")
			logger.Info("info msg")
			logger.Warn("warn msg")

			out := buf.String()
			if got := strings.Contains(out, "debug msg"); got != tt.debugOut {
				t.Errorf("debug output = %v, want %v", got, tt.debugOut)
			}
			if got := strings.Contains(out, "info msg"); got != tt.infoOut {
				t.Errorf("info output = %v, want %v", got, tt.infoOut)
			}
			if got := strings.Contains(out, "warn msg"); got != tt.warnOut {
				t.Errorf("warn output = %v, want %v", got, tt.warnOut)
			}
		})
	}
}

func TestInitLoggerSetsDefault(t *testing.T) {
	logger := InitLogger(LogConfig{Output: io.Discard, Level: "info", Format: "json"})

	defaultLogger := slog.Default()
	if defaultLogger == nil {
		t.Fatal("slog.Default() returned nil after InitLogger")
	}

	if logger.Handler() != defaultLogger.Handler() {
		t.Error("InitLogger did not set the default logger")
	}
}
