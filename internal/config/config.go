// Package config provides configuration management for sellerstore.
//
// Configuration comes from three layers, later ones winning:
//  1. built-in defaults
//  2. a YAML config file, if one is found
//  3. SELLERSTORE_* environment variables (a .env file is loaded first)
//
// Config file locations (priority order):
//  1. $SELLERSTORE_CONFIG
//  2. ./sellerstore.yaml
//  3. ~/.config/sellerstore/config.yaml
//  4. /etc/sellerstore/config.yaml
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
// SELLERSTORE_DATABASE.DSN maps to database.dsn.
const EnvPrefix = "SELLERSTORE_"

// Config is the root configuration object
type Config struct {
	Version  int            `yaml:"version" koanf:"version"`
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Database DatabaseConfig `yaml:"database" koanf:"database"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
	// Seed is an optional YAML file of departments and sellers imported
	// at startup
	Seed string `yaml:"seed,omitempty" koanf:"seed"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr string `yaml:"addr" koanf:"addr" validate:"required"`
}

// DatabaseConfig selects the driver and data source
type DatabaseConfig struct {
	Driver string `yaml:"driver" koanf:"driver" validate:"required,oneof=sqlite pgx"`
	DSN    string `yaml:"dsn" koanf:"dsn" validate:"required"`
}

// LogConfig configures zerolog output
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level" validate:"required,oneof=trace debug info warn error"`
	Format string `yaml:"format" koanf:"format" validate:"required,oneof=console json"`
}

// Load finds and loads the config file, or starts from defaults if none is
// found, then applies environment overrides
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		if err := cfg.finish(); err != nil {
			return nil, "", err
		}
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}

	if err := cfg.finish(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Parse decodes YAML config bytes and fills in defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Server:   ServerConfig{Addr: ":3000"},
		Database: DatabaseConfig{Driver: "sqlite", DSN: "./sellerstore.db"},
		Log:      LogConfig{Level: "info", Format: "console"},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.DSN == "" {
		c.Database.DSN = def.Database.DSN
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

func (c *Config) finish() error {
	if err := c.applyEnv(); err != nil {
		return err
	}
	return c.Validate()
}

// applyEnv overlays SELLERSTORE_* variables onto c.
// Keys absent from the environment keep their current value.
func (c *Config) applyEnv() error {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", c); err != nil {
		return fmt.Errorf("apply env: %w", err)
	}
	return nil
}

// Validate checks required values and enumerations
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	return fmt.Sprintf("Server: %s, Database: %s (%s), Log: %s/%s",
		c.Server.Addr, c.Database.Driver, redactDSN(c.Database.DSN), c.Log.Level, c.Log.Format)
}

// redactDSN hides a password embedded in a URL-style DSN
func redactDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	user, _, hasPass := strings.Cut(userinfo, ":")
	if !hasPass {
		return dsn
	}
	return scheme + "://" + user + ":***@" + host
}
