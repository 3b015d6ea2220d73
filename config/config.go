// Package config loads the marketplace configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	Store   StoreConfig   `yaml:"store"`
	Payment PaymentConfig `yaml:"payment"`

	// Seed populates empty collections with demo data on startup.
	Seed bool `yaml:"seed"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string `yaml:"backend"` // memory, file, postgres
	Dir     string `yaml:"dir"`     // file backend
	DSN     string `yaml:"dsn"`     // postgres backend
}

// PaymentConfig tunes the simulated providers. Delay is a duration
// string, e.g. "1s".
type PaymentConfig struct {
	Delay string `yaml:"delay"`
}

// DelayDuration parses Delay; Validate guarantees it parses.
func (p PaymentConfig) DelayDuration() time.Duration {
	d, err := time.ParseDuration(p.Delay)
	if err != nil {
		return time.Second
	}
	return d
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen: ":8082",
		Store: StoreConfig{
			Backend: "file",
			Dir:     "data",
		},
		Payment: PaymentConfig{
			Delay: "1s",
		},
		Seed: true,
	}
}

// Load reads a YAML config file, filling unset fields with defaults. An
// empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate rejects unusable configurations early.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory":
	case "file":
		if c.Store.Dir == "" {
			return fmt.Errorf("store.dir is required for the file backend")
		}
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if _, err := time.ParseDuration(c.Payment.Delay); err != nil {
		return fmt.Errorf("payment.delay: %w", err)
	}
	return nil
}
