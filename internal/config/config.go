// Package config loads process configuration with viper, grounded on
// noah-isme-sma-adp-api's config layer: environment variables override a
// YAML file, which overrides the defaults set here.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the settings spec §6 calls out as deployment knobs: where
// lecture rows come from, and bounds on solver behavior.
type Config struct {
	StoreDSN         string `mapstructure:"store_dsn"`
	CSVFixturePath   string `mapstructure:"csv_fixture_path"`
	SolverLicense    string `mapstructure:"solver_license_path"`
	MaxSolverSeconds int    `mapstructure:"max_solver_seconds"`
	LogDevelopment   bool   `mapstructure:"log_development"`
}

// Load reads configuration from, in ascending priority: built-in
// defaults, an optional config file at path (if non-empty), then
// SCHEDULER_-prefixed environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("scheduler")
	v.AutomaticEnv()

	v.SetDefault("store_dsn", "")
	v.SetDefault("csv_fixture_path", "")
	v.SetDefault("solver_license_path", "")
	v.SetDefault("max_solver_seconds", 30)
	v.SetDefault("log_development", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}
