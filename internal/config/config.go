// Package config provides configuration management for the options analyzer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Range    RangeConfig    `mapstructure:"range"`
	Strategy StrategyConfig `mapstructure:"strategy"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// RangeConfig holds the default underlying price sweep.
type RangeConfig struct {
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"`
	Step float64 `mapstructure:"step"`
}

// StrategyConfig holds strategy building limits and preset defaults.
type StrategyConfig struct {
	MaxLegs int     `mapstructure:"max_legs"`
	Center  float64 `mapstructure:"center"`
	Width   float64 `mapstructure:"width"`
	Premium float64 `mapstructure:"premium"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
	ChartWidth   int  `mapstructure:"chart_width"`
	ChartHeight  int  `mapstructure:"chart_height"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// PriceRange converts the range section to the engine's type.
func (r RangeConfig) PriceRange() models.PriceRange {
	return models.PriceRange{Min: r.Min, Max: r.Max, Step: r.Step}
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-analyzer"
	}
	return filepath.Join(home, ".config", "options-analyzer")
}

// Default returns the configuration used when no file overrides a value.
func Default() *Config {
	cfg := &Config{}
	v := viper.New()
	setDefaults(v)
	// Unmarshal of defaults alone cannot fail.
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	rng := models.DefaultPriceRange()
	v.SetDefault("range.min", rng.Min)
	v.SetDefault("range.max", rng.Max)
	v.SetDefault("range.step", rng.Step)

	v.SetDefault("strategy.max_legs", 4)
	v.SetDefault("strategy.center", 100.0)
	v.SetDefault("strategy.width", 10.0)
	v.SetDefault("strategy.premium", 5.0)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.chart_width", 60)
	v.SetDefault("ui.chart_height", 15)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", false)
	v.SetDefault("log.file_path", filepath.Join(DefaultConfigDir(), "logs", "analyzer.log"))
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 30)
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config.toml is replaced by the commented template and defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		if err := createTemplateConfig(configDir); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ANALYZER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	for name, target := range map[string]*float64{
		"ANALYZER_PRICE_MIN":  &cfg.Range.Min,
		"ANALYZER_PRICE_MAX":  &cfg.Range.Max,
		"ANALYZER_PRICE_STEP": &cfg.Range.Step,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return apperrors.Wrapf(apperrors.ErrConfigInvalid, "%s=%q is not a number", name, v)
		}
		*target = f
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Range.Step <= 0 {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "range.step must be positive")
	}
	if c.Range.Max < c.Range.Min {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "range.max must not be below range.min")
	}

	if c.Strategy.MaxLegs < 1 {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "strategy.max_legs must be at least 1")
	}
	if c.Strategy.Width <= 0 {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "strategy.width must be positive")
	}

	if c.UI.ChartWidth < 10 || c.UI.ChartHeight < 3 {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "ui chart must be at least 10x3")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "invalid log level: %s", c.Log.Level)
	}

	return nil
}
