package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Level != "INFO" {
		t.Errorf("Level = %q, want INFO default", cfg.Level)
	}
	if !cfg.ConsoleEnabled {
		t.Error("ConsoleEnabled should default to true")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	data := []byte("logging:\n  level: DEBUG\n  console_enabled: true\n  file_enabled: true\n  file_path: /tmp/x.log\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Level != "DEBUG" {
		t.Errorf("Level = %q, want DEBUG", cfg.Level)
	}
	if !cfg.FileEnabled || cfg.FilePath != "/tmp/x.log" {
		t.Errorf("file settings = (%v, %q), want (true, /tmp/x.log)", cfg.FileEnabled, cfg.FilePath)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR from env", cfg.Level)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := parseLogLevel(tc.in); got != tc.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDiscardLoggerIsSafe(t *testing.T) {
	log := Discard()
	log.Debug("dropped", "k", "v")
	log.Info("dropped")
}

func TestNewRunLoggerWithoutFileDiscards(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FileEnabled = false
	log := NewRunLogger(cfg)
	if log == nil {
		t.Fatal("NewRunLogger returned nil")
	}
	log.Debug("dropped")
}
