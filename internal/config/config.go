// Package config loads liftlog settings from ~/.config/liftlog/config.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedarden/liftlog/internal/logger"
	"github.com/jedarden/liftlog/internal/workout"
	"gopkg.in/yaml.v3"
)

// Config holds the user settings. Command-line flags override these values.
type Config struct {
	Metric         string          `yaml:"metric,omitempty"` // auto, weight, reps, duration, distance
	SparklineWidth int             `yaml:"sparkline_width,omitempty"`
	ChartHeight    int             `yaml:"chart_height,omitempty"`
	ChartWidth     int             `yaml:"chart_width,omitempty"` // 0 = size from data
	DateLayouts    []string        `yaml:"date_layouts,omitempty"`
	Columns        workout.Columns `yaml:"columns,omitempty"`
	Cache          bool            `yaml:"cache"`
	CacheDir       string          `yaml:"cache_dir,omitempty"`
	LogFile        string          `yaml:"log_file,omitempty"`
	Debug          bool            `yaml:"debug,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Metric:         "auto",
		SparklineWidth: 20,
		ChartHeight:    12,
		DateLayouts:    append([]string(nil), workout.DefaultDateLayouts...),
		Columns:        workout.DefaultColumns(),
		Cache:          true,
		CacheDir:       workout.DefaultCacheDir(),
		LogFile:        logger.DefaultLogPath(),
	}
}

// DefaultPath returns ~/.config/liftlog/config.yaml, or "" when the home
// directory is unknown
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "liftlog", "config.yaml")
}

// Load reads the config at path on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills in values left blank in the file
func (c *Config) applyDefaults() {
	def := Default()
	if c.Metric == "" {
		c.Metric = def.Metric
	}
	if len(c.DateLayouts) == 0 {
		c.DateLayouts = def.DateLayouts
	}
	if c.Columns.Start == "" {
		c.Columns.Start = def.Columns.Start
	}
	if c.Columns.Exercise == "" {
		c.Columns.Exercise = def.Columns.Exercise
	}
	if c.Columns.Weight == "" {
		c.Columns.Weight = def.Columns.Weight
	}
	if c.Columns.Reps == "" {
		c.Columns.Reps = def.Columns.Reps
	}
	if c.Columns.Duration == "" {
		c.Columns.Duration = def.Columns.Duration
	}
	if c.Columns.Distance == "" {
		c.Columns.Distance = def.Columns.Distance
	}
	if c.CacheDir == "" {
		c.CacheDir = def.CacheDir
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if _, err := workout.ParseMetric(c.Metric); err != nil {
		return err
	}
	if c.SparklineWidth <= 0 {
		return fmt.Errorf("sparkline_width must be positive, got %d", c.SparklineWidth)
	}
	if c.ChartHeight <= 0 {
		return fmt.Errorf("chart_height must be positive, got %d", c.ChartHeight)
	}
	if c.ChartWidth < 0 {
		return fmt.Errorf("chart_width must not be negative, got %d", c.ChartWidth)
	}
	return nil
}

// MetricValue returns the parsed metric. Call Validate first.
func (c *Config) MetricValue() workout.Metric {
	m, _ := workout.ParseMetric(c.Metric)
	return m
}
