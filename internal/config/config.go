// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Display  DisplayConfig  `mapstructure:"display"`
	Data     DataConfig     `mapstructure:"data"`
	Logging  LoggingConfig  `mapstructure:"logging"`

	// ConfigDir is the directory configuration was loaded from.
	ConfigDir string `mapstructure:"-"`
}

// DefaultsConfig holds default market selections.
type DefaultsConfig struct {
	MarketA string `mapstructure:"market_a"`
	MarketB string `mapstructure:"market_b"`
}

// DisplayConfig holds display-related configuration.
type DisplayConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// DataConfig holds data file locations.
type DataConfig struct {
	OverridesFile string `mapstructure:"overrides_file"`
	CalendarDB    string `mapstructure:"calendar_db"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/apac-settle"
	}
	return filepath.Join(home, ".config", "apac-settle")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = os.Getenv("SETTLE_CONFIG_DIR")
	}
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{ConfigDir: configDir}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyDefaults(cfg, configDir)
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run: write the template, then load it so the
			// template's defaults actually apply.
			if err := createTemplateConfig(configDir); err != nil {
				return err
			}
			if err := v.ReadInConfig(); err != nil {
				return err
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func applyDefaults(cfg *Config, configDir string) {
	if cfg.Defaults.MarketA == "" {
		cfg.Defaults.MarketA = "HK"
	}
	if cfg.Defaults.MarketB == "" {
		cfg.Defaults.MarketB = "JP"
	}
	if cfg.Display.DateFormat == "" {
		cfg.Display.DateFormat = "2006-01-02"
	}
	if cfg.Display.TimeFormat == "" {
		cfg.Display.TimeFormat = "15:04"
	}
	if cfg.Data.OverridesFile == "" {
		cfg.Data.OverridesFile = filepath.Join(configDir, "manual_overrides.json")
	}
	if cfg.Data.CalendarDB == "" {
		cfg.Data.CalendarDB = filepath.Join(configDir, "calendars.db")
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = filepath.Join(configDir, "logs", "settle.log")
	}
	if cfg.Logging.MaxSize == 0 {
		cfg.Logging.MaxSize = 100
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 7
	}
	if cfg.Logging.MaxAge == 0 {
		cfg.Logging.MaxAge = 30
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SETTLE_OVERRIDES_FILE"); v != "" {
		cfg.Data.OverridesFile = v
	}
	if v := os.Getenv("SETTLE_CALENDAR_DB"); v != "" {
		cfg.Data.CalendarDB = v
	}
	if v := os.Getenv("SETTLE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SETTLE_MARKET_A"); v != "" {
		cfg.Defaults.MarketA = v
	}
	if v := os.Getenv("SETTLE_MARKET_B"); v != "" {
		cfg.Defaults.MarketB = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	if c.Logging.MaxSize < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAge < 0 {
		return fmt.Errorf("logging rotation settings must be non-negative")
	}

	return nil
}

// MarketsFilePath returns the path of the market registry file.
func (c *Config) MarketsFilePath() string {
	return filepath.Join(c.ConfigDir, "markets.toml")
}
