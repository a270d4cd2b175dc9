// Package config loads the dfmt command configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"gopkg.in/dfmt.v0/dec"
	"gopkg.in/dfmt.v0/render"
)

// Config holds the dfmt configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Render  RenderConfig  `yaml:"render"`
	Batch   BatchConfig   `yaml:"batch"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console, auto
}

// RenderConfig configures the render engine.
type RenderConfig struct {
	// Largest width or precision accepted in a template.
	MaxField int `yaml:"max_field"`
	// Rounding mode for decimal (%L) arguments.
	Rounding string `yaml:"rounding"`
}

// BatchConfig configures batch runs.
type BatchConfig struct {
	Workers int    `yaml:"workers"`
	Output  string `yaml:"output"` // json, cbor
}

// Rounders maps rounding mode names to rounders.
var Rounders = map[string]dec.Rounder{
	"half_up":   dec.RoundHalfUp,
	"half_even": dec.RoundHalfEven,
	"half_down": dec.RoundHalfDown,
	"down":      dec.RoundDown,
	"up":        dec.RoundUp,
	"floor":     dec.RoundFloor,
	"ceil":      dec.RoundCeil,
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "console", "auto"}
	validOutputs = []string{"json", "cbor"}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Render: RenderConfig{
			MaxField: render.DefaultMaxField,
			Rounding: "half_up",
		},
		Batch: BatchConfig{
			Workers: 4,
			Output:  "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if level := os.Getenv("DFMT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if mode := os.Getenv("DFMT_ROUNDING"); mode != "" {
		c.Render.Rounding = mode
	}
	if workers := os.Getenv("DFMT_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return fmt.Errorf("invalid DFMT_WORKERS %q: %w", workers, err)
		}
		c.Batch.Workers = n
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, validLevels)
	}
	if !contains(validFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, validFormats)
	}
	if c.Render.MaxField <= 0 {
		return fmt.Errorf("render.max_field must be positive, got %d", c.Render.MaxField)
	}
	if _, ok := Rounders[c.Render.Rounding]; !ok {
		return fmt.Errorf("invalid rounding mode: %s (valid: %v)", c.Render.Rounding, RoundingModes())
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	if !contains(validOutputs, c.Batch.Output) {
		return fmt.Errorf("invalid batch output: %s (valid: %v)", c.Batch.Output, validOutputs)
	}
	return nil
}

// RoundingModes returns the rounding mode names in sorted order.
func RoundingModes() []string {
	names := make([]string, 0, len(Rounders))
	for name := range Rounders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Printer returns a render.Printer configured by c.
func (c *Config) Printer() *render.Printer {
	return &render.Printer{
		Rounder:  Rounders[c.Render.Rounding],
		MaxField: c.Render.MaxField,
	}
}
