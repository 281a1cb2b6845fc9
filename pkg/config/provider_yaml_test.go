package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestYAMLProviderLoadConfig(t *testing.T) {
	yamlContent := `
pipeline:
  window_size: 30
  threshold: 2.0
  min_run: 4
  window_frac: 0.1
  baseline: global
  cross: min_magnitude
  magnitude: rms
  combine: mean
  epsilon: 0.001
  parallel: true
wells:
  - name: 34/10-A
    csv: data/34_10_A.csv
  - name: 34/10-B
    csv: data/34_10_B.csv
storage:
  sqlite:
    path: warnings.db
  csv_dir: out
logging:
  debug: true
  logfile: wellwarn.log
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	provider := NewYAMLProvider(path)
	defer provider.Close()

	if !provider.IsReadOnly() {
		t.Error("YAML provider should be read-only")
	}

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	p := cfg.Pipeline
	if p.WindowSize != 30 || p.Threshold != 2.0 || p.MinRun != 4 {
		t.Errorf("unexpected pipeline settings: %+v", p)
	}
	if p.WindowFrac != 0.1 || p.Baseline != "global" || p.Cross != "min_magnitude" {
		t.Errorf("unexpected pipeline settings: %+v", p)
	}
	if p.Magnitude != "rms" || p.Combine != "mean" || p.Epsilon != 0.001 || !p.Parallel {
		t.Errorf("unexpected pipeline settings: %+v", p)
	}

	if len(cfg.Wells) != 2 {
		t.Fatalf("expected 2 wells, got %d", len(cfg.Wells))
	}
	if cfg.Wells[0].Name != "34/10-A" || cfg.Wells[0].CSV != "data/34_10_A.csv" {
		t.Errorf("unexpected well config: %+v", cfg.Wells[0])
	}

	if cfg.Storage.SQLite == nil || cfg.Storage.SQLite.Path != "warnings.db" {
		t.Errorf("unexpected SQLite storage config: %+v", cfg.Storage.SQLite)
	}
	if cfg.Storage.TimescaleDB != nil {
		t.Error("TimescaleDB should be absent when not configured")
	}
	if cfg.Storage.CSVDir != "out" {
		t.Errorf("unexpected CSV dir: %s", cfg.Storage.CSVDir)
	}

	if !cfg.Logging.Debug || cfg.Logging.Logfile != "wellwarn.log" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestYAMLProviderMissingFile(t *testing.T) {
	provider := NewYAMLProvider(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if _, err := provider.LoadConfig(); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
