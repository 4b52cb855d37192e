package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ImportConfig represents the operator-editable import settings
type ImportConfig struct {
	Rules  RulesConfig  `toml:"rules"`
	Limits LimitsConfig `toml:"limits"`
}

// RulesConfig points at the classification rules file
type RulesConfig struct {
	File string `toml:"file"` // optional; built-in tables used when empty
}

// LimitsConfig bounds a single import call
type LimitsConfig struct {
	MaxRows         int    `toml:"max_rows"`
	MaxUploadBytes  int64  `toml:"max_upload_bytes"`
	DefaultStrategy string `toml:"default_strategy"`
}

// DefaultImportConfig returns the settings used when no config file is given
func DefaultImportConfig() *ImportConfig {
	return &ImportConfig{
		Limits: LimitsConfig{
			MaxRows:         5000,
			MaxUploadBytes:  10 << 20, // 10 MiB
			DefaultStrategy: "skip",
		},
	}
}

// LoadImportConfig loads configuration from a TOML file
func LoadImportConfig(filename string) (*ImportConfig, error) {
	config := DefaultImportConfig()
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return config, nil
}
