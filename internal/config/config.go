// Package config provides Viper-based configuration loading for the
// skirmish simulator.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SimConfig holds simulation settings.
type SimConfig struct {
	// Seed seeds the dice source; 0 draws a seed from crypto randomness,
	// making the run non-reproducible.
	Seed int64 `mapstructure:"seed"`
	// MaxTicks bounds a run that no scenario script terminates.
	MaxTicks int `mapstructure:"max_ticks"`
	// Debug raises log verbosity; it never changes simulation behavior.
	Debug bool `mapstructure:"debug"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ContentConfig holds the content directory layout.
type ContentConfig struct {
	// WeaponsDir holds the weapon definition YAML files.
	WeaponsDir string `mapstructure:"weapons_dir"`
	// FactionsDir holds the faction definition YAML files.
	FactionsDir string `mapstructure:"factions_dir"`
	// ScenariosDir holds the Lua scenario scripts.
	ScenariosDir string `mapstructure:"scenarios_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Sim     SimConfig     `mapstructure:"sim"`
	Logging LoggingConfig `mapstructure:"logging"`
	Content ContentConfig `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSim(c.Sim); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSim(s SimConfig) error {
	if s.MaxTicks < 1 {
		return fmt.Errorf("sim.max_ticks must be >= 1, got %d", s.MaxTicks)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.WeaponsDir == "" {
		errs = append(errs, "content.weapons_dir must not be empty")
	}
	if c.FactionsDir == "" {
		errs = append(errs, "content.factions_dir must not be empty")
	}
	if c.ScenariosDir == "" {
		errs = append(errs, "content.scenarios_dir must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SKIRMISH_ prefix
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no config file is
// given.
//
// Postcondition: the result passes Validate.
func Default() Config {
	return Config{
		Sim: SimConfig{
			Seed:     0,
			MaxTicks: 3600,
			Debug:    false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Content: ContentConfig{
			WeaponsDir:   "content/weapons",
			FactionsDir:  "content/factions",
			ScenariosDir: "content/scenarios",
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.max_ticks", 3600)
	v.SetDefault("sim.debug", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("content.weapons_dir", "content/weapons")
	v.SetDefault("content.factions_dir", "content/factions")
	v.SetDefault("content.scenarios_dir", "content/scenarios")
}
