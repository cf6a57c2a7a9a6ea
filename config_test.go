package reentry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.StartDate.Equal(DefaultEpoch) {
		t.Fatalf("default start date is %s", cfg.StartDate)
	}
	if cfg.Perts != FullPerturbations() {
		t.Fatal("defaults must enable the full force model")
	}
	if cfg.StepSeconds <= 0 || cfg.TimeWarp <= 0 {
		t.Fatal("serving defaults must be positive")
	}
	if cfg.Workers != 0 {
		t.Fatal("default worker count must defer to the CPU count")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("REENTRY_CONFIG", t.TempDir())
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("a missing file must yield the defaults: %s", err)
	}
	if !cfg.StartDate.Equal(DefaultEpoch) {
		t.Fatalf("start date is %s", cfg.StartDate)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	toml := `[general]
start_date = "2024-03-01T12:00:00Z"
output_path = "/tmp/out"

[engine]
workers = 3
jn = 2
third_body = false
drag = true

[server]
listen = ":9000"
step_seconds = 30.0
time_warp = 10.0
`
	if err := os.WriteFile(filepath.Join(dir, "conf.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REENTRY_CONFIG", dir)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %s", err)
	}
	if cfg.StartDate.Year() != 2024 || cfg.StartDate.Month() != 3 {
		t.Fatalf("start date is %s", cfg.StartDate)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Fatalf("output dir is %q", cfg.OutputDir)
	}
	if cfg.Workers != 3 {
		t.Fatalf("workers is %d", cfg.Workers)
	}
	if cfg.Perts.Jn != 2 || cfg.Perts.ThirdBody || !cfg.Perts.Drag {
		t.Fatalf("perturbations are %+v", cfg.Perts)
	}
	if cfg.ListenAddr != ":9000" || cfg.StepSeconds != 30 || cfg.TimeWarp != 10 {
		t.Fatalf("serving config is %+v", cfg)
	}
}

func TestLoadConfigRejectsBadStep(t *testing.T) {
	dir := t.TempDir()
	toml := `[server]
step_seconds = -1.0
`
	if err := os.WriteFile(filepath.Join(dir, "conf.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REENTRY_CONFIG", dir)
	if _, err := LoadConfig(); err == nil {
		t.Fatal("a non-positive step length must be rejected")
	}
}
