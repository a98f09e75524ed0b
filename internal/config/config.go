// Package config provides YAML-based configuration loading for BirthdayOS.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"

	"svw.info/birthdayos/internal/generator"
)

// Config is the top-level configuration, loaded from birthdayos.yaml.
type Config struct {
	Grid     GridConfig    `yaml:"grid"`
	Storage  StorageConfig `yaml:"storage"`
	Server   ServerConfig  `yaml:"server"`
	Sound    bool          `yaml:"sound"`
	LogLevel string        `yaml:"log_level"`
}

// GridConfig sizes the candle game.
type GridConfig struct {
	Size    int   `yaml:"size"`
	Candles int   `yaml:"candles"`
	Seed    int64 `yaml:"seed"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Driver    string `yaml:"driver"`
	Path      string `yaml:"path"`
	DSN       string `yaml:"dsn"`
	Namespace string `yaml:"namespace"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOptional behaves like Load but returns defaults when path does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Grid.Size == 0 {
		c.Grid.Size = 8
	}
	if c.Grid.Candles == 0 && c.Grid.Size > 0 {
		// same density as the 8x8 board with 10 candles
		c.Grid.Candles = max(1, c.Grid.Size*c.Grid.Size*10/64)
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "file"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "./data"
	}
	if c.Storage.Namespace == "" {
		c.Storage.Namespace = "birthdayos"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// validate checks that all fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Grid.Size < 1 || c.Grid.Size > generator.MaxSize {
		errs = append(errs, fmt.Sprintf("grid.size must be between 1 and %d", generator.MaxSize))
	}
	if c.Grid.Candles < 0 || c.Grid.Candles > c.Grid.Size*c.Grid.Size {
		errs = append(errs, fmt.Sprintf("grid.candles must be between 0 and %d", c.Grid.Size*c.Grid.Size))
	}
	switch c.Storage.Driver {
	case "file", "memory", "sqlite":
	case "mysql":
		if c.Storage.DSN == "" {
			errs = append(errs, "storage.dsn is required for mysql")
		} else if _, err := mysql.ParseDSN(c.Storage.DSN); err != nil {
			errs = append(errs, fmt.Sprintf("storage.dsn: %v", err))
		}
	default:
		errs = append(errs, fmt.Sprintf("storage.driver %q is not one of file|memory|sqlite|mysql", c.Storage.Driver))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level %q is not one of debug|info|warn|error", s)
}
