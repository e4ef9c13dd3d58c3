// Package config handles application configuration. Display preferences are
// not configured here; they live in the preference store and are edited from
// the interface.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	DataDir string `yaml:"data_dir"` // where the key-value store files live
	LogFile string `yaml:"log_file"` // empty means <data_dir>/taskflow.log
	NoColor bool   `yaml:"no_color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir: defaultDataDir(),
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "taskflow", "config.yaml")
}

// Load reads the config file at path. A missing file yields the defaults; a
// malformed file is an error so a typo does not silently move the data
// directory.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

// ResolvedLogFile returns the log file path, deriving it from the data
// directory when unset.
func (c *Config) ResolvedLogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "taskflow.log")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskflow-data"
	}
	return filepath.Join(home, ".local", "share", "taskflow")
}
