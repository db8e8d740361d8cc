//-------------------------------------------------------------------------
//
// Petshop Insights Dashboard
//
// Portions copyright (c) 2025 - 2026, Breno Aliotti
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for petshop-insights.
// Configuration is loaded from config files and CLI flags; CLI flags take
// precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for petshop-insights.
type Config struct {
	// Source holds the transaction data source settings.
	Source SourceConfig `mapstructure:"source"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Forecast holds configuration for the forecast command.
	Forecast ForecastConfig `mapstructure:"forecast"`

	// Cache holds configuration for the dataset cache.
	Cache CacheConfig `mapstructure:"cache"`
}

// SourceConfig describes where transactions are loaded from. Exactly one of
// CSVPath or PostgresConn must be set.
type SourceConfig struct {
	// CSVPath is the path to a sales CSV file.
	CSVPath string `mapstructure:"csv_path"`

	// DateFormat is the Go layout used to parse sale dates in the CSV.
	DateFormat string `mapstructure:"date_format"`

	// PostgresConn is a PostgreSQL connection string.
	PostgresConn string `mapstructure:"postgres_conn"`

	// PostgresTable is the table holding sales rows.
	PostgresTable string `mapstructure:"postgres_table"`
}

// ForecastConfig holds defaults for the forecast command.
type ForecastConfig struct {
	// Horizon is the number of future months to predict (1-24).
	Horizon int `mapstructure:"horizon"`

	// Confidence is the prediction interval confidence level.
	Confidence float64 `mapstructure:"confidence"`
}

// CacheConfig holds configuration for the in-process dataset cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached datasets.
	MaxEntries int `mapstructure:"max_entries"`

	// TTLMinutes is how long a cached dataset stays valid.
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

// MinHorizon and MaxHorizon bound the forecast horizon.
const (
	MinHorizon = 1
	MaxHorizon = 24
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Source: SourceConfig{
			DateFormat:    "2006-01-02",
			PostgresTable: "sales",
		},
		Forecast: ForecastConfig{
			Horizon:    6,
			Confidence: 0.95,
		},
		Cache: CacheConfig{
			MaxEntries: 4,
			TTLMinutes: 30,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./petshop-insights.yaml
// 3. ~/.config/petshop-insights/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("petshop-insights")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "petshop-insights"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that a transaction source is configured.
func (c *Config) Validate() error {
	if c.Source.CSVPath == "" && c.Source.PostgresConn == "" {
		return fmt.Errorf("a data source is required (csv_path or postgres_conn)")
	}
	if c.Source.CSVPath != "" && c.Source.PostgresConn != "" {
		return fmt.Errorf("only one data source may be configured")
	}
	if c.Source.PostgresConn != "" && c.Source.PostgresTable == "" {
		return fmt.Errorf("postgres_table is required with postgres_conn")
	}
	return nil
}

// ValidateForecast checks configuration required for the forecast command.
func (c *Config) ValidateForecast() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Forecast.Horizon < MinHorizon || c.Forecast.Horizon > MaxHorizon {
		return fmt.Errorf("forecast horizon must be between %d and %d months",
			MinHorizon, MaxHorizon)
	}
	if c.Forecast.Confidence <= 0 || c.Forecast.Confidence >= 1 {
		return fmt.Errorf("confidence must be strictly between 0 and 1")
	}
	return nil
}
