package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8090" {
		t.Errorf("expected default port 8090, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected default worker count 4, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected default job TTL 1h, got %s", cfg.JobTTL)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback on by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SOPFORGE_PORT", "9999")
	t.Setenv("SOPFORGE_LOG_LEVEL", "debug")
	t.Setenv("SOPFORGE_WORKER_COUNT", "8")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("expected env port, got %q", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected env log level, got %q", cfg.LogLevel)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("expected env worker count, got %d", cfg.WorkerCount)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("port: \"7070\"\noutput_dir: rendered\napi_key: secret\njob_ttl: 30m\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("expected file port, got %q", cfg.Port)
	}
	if cfg.OutputDir != "rendered" {
		t.Errorf("expected file output dir, got %q", cfg.OutputDir)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("expected api key, got %q", cfg.APIKey)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected 30m ttl, got %s", cfg.JobTTL)
	}
}

func TestLoad_ExplicitMissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Error("expected error when the named config file is missing")
	}
}

func TestLoad_ClampsBadValues(t *testing.T) {
	t.Setenv("SOPFORGE_WORKER_COUNT", "-3")
	t.Setenv("SOPFORGE_MAX_QUEUE_SIZE", "0")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected clamped worker count, got %d", cfg.WorkerCount)
	}
	if cfg.MaxQueueSize != 100 {
		t.Errorf("expected clamped queue size, got %d", cfg.MaxQueueSize)
	}
}

func TestValidate(t *testing.T) {
	good := Config{Port: "8090", OutputDir: "out"}
	if err := good.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
	if err := (Config{OutputDir: "out"}).Validate(); err == nil {
		t.Error("expected error for missing port")
	}
	if err := (Config{Port: "8090"}).Validate(); err == nil {
		t.Error("expected error for missing output_dir")
	}
}
