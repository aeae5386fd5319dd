// Package config loads the TOML-based configuration file read by both the
// CLI driver and the parse service.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full set of settings a config file may specify. Every field
// has a workable zero value, so an absent config file is equivalent to an
// empty one.
type Config struct {
	// Server holds the HTTP parse service's settings.
	Server ServerConfig `toml:"server"`

	// Cache holds the on-disk parse cache's settings.
	Cache CacheConfig `toml:"cache"`
}

// ServerConfig configures the parse service's listener and auth.
type ServerConfig struct {
	// Address is the host:port the service listens on.
	Address string `toml:"address"`

	// TokenSecret signs the bearer tokens the service issues on login. When
	// it is empty and no secret is given by flag or environment, the service
	// generates a random secret at startup.
	TokenSecret string `toml:"token_secret"`
}

// CacheConfig configures the sqlite-backed parse result cache.
type CacheConfig struct {
	// Enabled turns the cache on for the parse service. Off by default. The
	// CLI does not read it; its --cache flag turns the cache on instead.
	Enabled bool `toml:"enabled"`

	// File is the path to the sqlite database file backing the cache.
	File string `toml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{Address: "localhost:8080"},
		Cache:  CacheConfig{File: "smtparse-cache.db"},
	}
}

// Load reads and parses the TOML config file at path, starting from
// Default() so any field the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
