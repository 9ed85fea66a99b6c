// Package config loads tool settings from an optional .javamet.yaml at
// the root of the scanned project.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file.
const FileName = ".javamet.yaml"

// Config controls scanning and report rendering.
type Config struct {
	Format  string      `yaml:"format"`
	Output  string      `yaml:"output"`
	Exclude []string    `yaml:"exclude"`
	Watch   WatchConfig `yaml:"watch"`
	UI      UIConfig    `yaml:"ui"`
}

type WatchConfig struct {
	IntervalMS int `yaml:"intervalMs"`
}

type UIConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads the configuration from projectPath, overlaying defaults.
// A missing file is not an error.
func Load(projectPath string) (*Config, error) {
	cfg := &Config{
		Format: "text",
		Watch:  WatchConfig{IntervalMS: 1000},
		UI:     UIConfig{Addr: "localhost:8844"},
	}

	configPath := filepath.Join(projectPath, FileName)
	data, err := os.ReadFile(configPath)
	if err == nil {
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, unmarshalErr)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Format {
	case "", "text", "json", "xml", "html":
	default:
		return fmt.Errorf("unknown report format %q", c.Format)
	}
	if c.Watch.IntervalMS < 0 {
		return fmt.Errorf("watch interval must not be negative, got %d", c.Watch.IntervalMS)
	}
	return nil
}

// Excluded reports whether a path matches any exclude pattern. Patterns
// match against the full slash path and the base name.
func (c *Config) Excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range c.Exclude {
		if ok, _ := filepath.Match(pattern, slashed); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
