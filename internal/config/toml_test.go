package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config must not be an error: %v", err)
	}
	if cfg.Dashboard.Data != nil || cfg.Dashboard.PlotHeight != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigParsesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[dashboard]
data = "usage.csv"
delimiter = ";"
date-format = "2006-01-02"
plot-height = 14

[sample]
rows = 120
medications = "DrugA,DrugB"
seed = 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Dashboard.Data == nil || *cfg.Dashboard.Data != "usage.csv" {
		t.Fatalf("unexpected data %v", cfg.Dashboard.Data)
	}
	if cfg.Dashboard.Delimiter == nil || *cfg.Dashboard.Delimiter != ";" {
		t.Fatalf("unexpected delimiter %v", cfg.Dashboard.Delimiter)
	}
	if cfg.Dashboard.PlotHeight == nil || *cfg.Dashboard.PlotHeight != 14 {
		t.Fatalf("unexpected plot height %v", cfg.Dashboard.PlotHeight)
	}
	if cfg.Sample.Rows == nil || *cfg.Sample.Rows != 120 {
		t.Fatalf("unexpected rows %v", cfg.Sample.Rows)
	}
	if cfg.Sample.Medications == nil || *cfg.Sample.Medications != "DrugA,DrugB" {
		t.Fatalf("unexpected medications %v", cfg.Sample.Medications)
	}
	if cfg.Sample.Seed == nil || *cfg.Sample.Seed != 7 {
		t.Fatalf("unexpected seed %v", cfg.Sample.Seed)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[dashboard\ndata="), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for invalid TOML")
	}
}
