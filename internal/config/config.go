// Package config loads and exposes application configuration (TOML).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath = "config.toml"
	DefaultHTTPAddr   = ":4566"
	DefaultAccountID  = "123456789012"
	DefaultRegion     = "us-east-1"
)

// Config is the root application configuration loaded from TOML.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Emulator EmulatorConfig `toml:"emulator"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServerConfig holds the HTTP listen address and the per-client request
// rate limit (requests per second, 0 disables it).
type ServerConfig struct {
	Addr      string  `toml:"addr"`
	RateLimit float64 `toml:"rate_limit"`
}

// EmulatorConfig holds the account and region requests are scoped to when the
// caller does not say otherwise, plus an optional fixture file loaded at
// startup.
type EmulatorConfig struct {
	AccountID     string `toml:"account_id"`
	DefaultRegion string `toml:"default_region"`
	SeedFile      string `toml:"seed_file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Emulator: EmulatorConfig{
			AccountID:     DefaultAccountID,
			DefaultRegion: DefaultRegion,
		},
	}
}

// Load reads and parses the TOML config file at path and applies default
// values for missing fields. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Emulator.AccountID) == "" {
		return errors.New("emulator.account_id must not be empty")
	}
	if strings.TrimSpace(c.Emulator.DefaultRegion) == "" {
		return errors.New("emulator.default_region must not be empty")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative, got %v", c.Server.RateLimit)
	}
	return nil
}
