// Package config provides configuration management for the dashboard tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingDataFile        = errors.New("data file path is required")
	ErrInvalidBaselineRevenue = errors.New("metrics.baseline_revenue must be a non-negative number")
	ErrInvalidPoorROAS        = errors.New("metrics.poor_roas_threshold must be a non-negative number")
	ErrInvalidTopN            = errors.New("metrics.top_n must be at least 1")
	ErrMissingServerAddr      = errors.New("server.addr is required")
	ErrInvalidServerTimeout   = errors.New("server timeouts must be at least 1 second")
	ErrInvalidLogLevel        = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat       = errors.New("logging.format must be 'text' or 'json'")
	ErrUnknownAliasTable      = errors.New("normalizer.aliases references an unknown table")
	ErrEmptyAlias             = errors.New("normalizer.aliases contains a blank spelling")
	ErrEmptyDateLayout        = errors.New("normalizer.date_layouts contains a blank layout")
)

// Table names accepted in the data and normalizer sections.
const (
	TableInfluencers = "influencers"
	TablePosts       = "posts"
	TableTracking    = "tracking"
	TablePayouts     = "payouts"
)

// Config represents the complete dashboard configuration.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DataConfig locates the four input files.
type DataConfig struct {
	BaseDir     string `yaml:"base_dir"`
	Influencers string `yaml:"influencers"`
	Posts       string `yaml:"posts"`
	Tracking    string `yaml:"tracking"`
	Payouts     string `yaml:"payouts"`
}

// NormalizerConfig extends the built-in alias groups and date layouts.
type NormalizerConfig struct {
	// Aliases maps table -> canonical field -> extra accepted spellings.
	Aliases     map[string]map[string][]string `yaml:"aliases"`
	DateLayouts []string                       `yaml:"date_layouts"`
}

// MetricsConfig holds the engine defaults.
type MetricsConfig struct {
	BaselineRevenue   string `yaml:"baseline_revenue"`
	PoorROASThreshold string `yaml:"poor_roas_threshold"`
	TopN              int    `yaml:"top_n"`
}

// ServerConfig defines the dashboard HTTP server.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			BaseDir:     "data",
			Influencers: "influencers.csv",
			Posts:       "posts.csv",
			Tracking:    "tracking_data.csv",
			Payouts:     "payouts.csv",
		},
		Metrics: MetricsConfig{
			BaselineRevenue:   "0",
			PoorROASThreshold: "1",
			TopN:              5,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from YAML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load reads path when it is non-empty and falls back to the defaults otherwise.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}

	cfg := Default()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides selected settings from the environment.
func (c *Config) ApplyEnv() {
	c.Data.BaseDir = envOrDefault("DASHBOARD_DATA_DIR", c.Data.BaseDir)
	c.Server.Addr = envOrDefault("DASHBOARD_ADDR", c.Server.Addr)
	c.Logging.Level = strings.ToLower(envOrDefault("LOG_LEVEL", c.Logging.Level))
	c.Metrics.BaselineRevenue = envOrDefault("DASHBOARD_BASELINE_REVENUE", c.Metrics.BaselineRevenue)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	files := map[string]string{
		TableInfluencers: c.Data.Influencers,
		TablePosts:       c.Data.Posts,
		TableTracking:    c.Data.Tracking,
		TablePayouts:     c.Data.Payouts,
	}

	for _, name := range TableNames() {
		if strings.TrimSpace(files[name]) == "" {
			return fmt.Errorf("%w: data.%s", ErrMissingDataFile, name)
		}
	}

	if d, err := decimal.NewFromString(orZero(c.Metrics.BaselineRevenue)); err != nil || d.IsNegative() {
		return ErrInvalidBaselineRevenue
	}

	if d, err := decimal.NewFromString(orZero(c.Metrics.PoorROASThreshold)); err != nil || d.IsNegative() {
		return ErrInvalidPoorROAS
	}

	if c.Metrics.TopN < 1 {
		return ErrInvalidTopN
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return ErrMissingServerAddr
	}

	if c.Server.ReadTimeoutSec < 1 || c.Server.WriteTimeoutSec < 1 {
		return ErrInvalidServerTimeout
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	for table, fields := range c.Normalizer.Aliases {
		if !isTable(table) {
			return fmt.Errorf("%w: %s", ErrUnknownAliasTable, table)
		}

		for field, spellings := range fields {
			for _, s := range spellings {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("%w: %s.%s", ErrEmptyAlias, table, field)
				}
			}
		}
	}

	for _, layout := range c.Normalizer.DateLayouts {
		if strings.TrimSpace(layout) == "" {
			return ErrEmptyDateLayout
		}
	}

	return nil
}

// TableNames returns the four input tables in load order.
func TableNames() []string {
	return []string{TableInfluencers, TablePosts, TableTracking, TablePayouts}
}

// DataPath resolves the file for a table against the base directory.
func (c *Config) DataPath(table string) string {
	var name string

	switch table {
	case TableInfluencers:
		name = c.Data.Influencers
	case TablePosts:
		name = c.Data.Posts
	case TableTracking:
		name = c.Data.Tracking
	case TablePayouts:
		name = c.Data.Payouts
	default:
		return ""
	}

	if filepath.IsAbs(name) || c.Data.BaseDir == "" {
		return name
	}

	return filepath.Join(c.Data.BaseDir, name)
}

// Baseline returns the configured iROAS baseline revenue.
func (m *MetricsConfig) Baseline() decimal.Decimal {
	d, err := decimal.NewFromString(orZero(m.BaselineRevenue))
	if err != nil {
		return decimal.Zero
	}

	return d
}

// PoorThreshold returns the ROAS below which an influencer is flagged.
func (m *MetricsConfig) PoorThreshold() decimal.Decimal {
	d, err := decimal.NewFromString(orZero(m.PoorROASThreshold))
	if err != nil {
		return decimal.NewFromInt(1)
	}

	return d
}

// ReadTimeout returns the server read timeout.
func (s *ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

// WriteTimeout returns the server write timeout.
func (s *ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{DataDir: %s, Baseline: %s, TopN: %d, Addr: %s}",
		c.Data.BaseDir,
		orZero(c.Metrics.BaselineRevenue),
		c.Metrics.TopN,
		c.Server.Addr,
	)
}

func isTable(name string) bool {
	for _, t := range TableNames() {
		if t == name {
			return true
		}
	}

	return false
}

func orZero(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0"
	}

	return strings.TrimSpace(s)
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}

	return fallback
}
