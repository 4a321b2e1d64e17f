// SPDX-License-Identifier: MIT

// Package config loads heatscan settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/heatscan/geometry"
)

// Config contains all heatscan settings.
type Config struct {
	// Server configures the HTTP transport.
	Server ServerConfig `json:"server" yaml:"server"`

	// Logging configures operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Game bounds the boards hosts will build.
	Game GameConfig `json:"game" yaml:"game"`

	// Material overrides the physical constants of the plate.
	Material geometry.Material `json:"material" yaml:"material"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigin is echoed in Access-Control-Allow-Origin. Empty
	// disables the header.
	AllowedOrigin string `json:"allowed_origin" yaml:"allowed_origin"`
}

// LoggingConfig configures log verbosity.
type LoggingConfig struct {
	// Level is "info" (default), "debug" or "trace".
	Level string `json:"level" yaml:"level"`
}

// GameConfig bounds board sizes.
type GameConfig struct {
	// DefaultSize is used when a host does not ask for a size.
	DefaultSize int `json:"default_size" yaml:"default_size"`

	// MaxSize caps the size accepted from network callers. The pass
	// operator is dense in the fine cells, so its memory grows with the
	// eighth power of the size.
	MaxSize int `json:"max_size" yaml:"max_size"`

	// MaxSessions caps the named sessions a server keeps. 0 means
	// unlimited.
	MaxSessions int `json:"max_sessions" yaml:"max_sessions"`
}

// Default returns a Config with the literal game parameters.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          ":8000",
			AllowedOrigin: "*",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Game: GameConfig{
			DefaultSize: 3,
			MaxSize:     6,
			MaxSessions: 64,
		},
		Material: geometry.DefaultMaterial(),
	}
}

// Load returns defaults, overlaid with the YAML file at path when path is
// non-empty, then with environment variables.
// Order: defaults -> file -> HEATSCAN_* variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Game.DefaultSize < 1 {
		return fmt.Errorf("default_size must be at least 1, got %d", c.Game.DefaultSize)
	}
	if c.Game.MaxSize < c.Game.DefaultSize {
		return fmt.Errorf("max_size %d is below default_size %d", c.Game.MaxSize, c.Game.DefaultSize)
	}
	if c.Game.MaxSessions < 0 {
		return fmt.Errorf("max_sessions must be >= 0, got %d", c.Game.MaxSessions)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	if err := c.Material.Validate(); err != nil {
		return err
	}

	return nil
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HEATSCAN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}

	if v := os.Getenv("HEATSCAN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("HEATSCAN_DEFAULT_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HEATSCAN_DEFAULT_SIZE: %w", err)
		}
		cfg.Game.DefaultSize = n
	}

	return nil
}
