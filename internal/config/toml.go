// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Dashboard DashboardConfig `toml:"dashboard"`
	Sample    SampleConfig    `toml:"sample"`
}

// DashboardConfig maps dashboard-related settings.
type DashboardConfig struct {
	Data       *string `toml:"data"`
	Delimiter  *string `toml:"delimiter"`
	DateFormat *string `toml:"date-format"`
	PlotHeight *int    `toml:"plot-height"`
}

// SampleConfig maps sample dataset generation settings.
type SampleConfig struct {
	Rows        *int    `toml:"rows"`
	Medications *string `toml:"medications"`
	Seed        *int64  `toml:"seed"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
