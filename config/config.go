// Package config loads server configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Rescue   RescueConfig   `yaml:"rescue"`
	Resolver ResolverConfig `yaml:"resolver"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `yaml:"addr"`
	// AllowOrigins lists the dashboard origins permitted by CORS.
	// Empty means allow all, which suits local development.
	AllowOrigins []string `yaml:"allowOrigins"`
}

// StorageConfig configures durable storage.
type StorageConfig struct {
	// SensorDB is the SQLite file holding sensor report history.
	SensorDB string `yaml:"sensorDb"`
}

// RescueConfig configures the dispatch queue.
type RescueConfig struct {
	// QueueCapacity bounds the number of pending rescue requests.
	QueueCapacity int `yaml:"queueCapacity"`
}

// ResolverConfig configures the nearest-shelter search.
type ResolverConfig struct {
	// CandidateLimit caps path-checked shelters per query (0 = no cap).
	CandidateLimit int `yaml:"candidateLimit"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":8080"},
		Storage:  StorageConfig{SensorDB: "sensor_reports.db"},
		Rescue:   RescueConfig{QueueCapacity: 50},
		Resolver: ResolverConfig{CandidateLimit: 0},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// any), then environment variables. A .env file in the working directory is
// honoured the same way the other services in this deployment do it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DRS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DRS_SENSOR_DB"); v != "" {
		c.Storage.SensorDB = v
	}
	if v := os.Getenv("DRS_QUEUE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Rescue.QueueCapacity = n
		}
	}
	if v := os.Getenv("DRS_CANDIDATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Resolver.CandidateLimit = n
		}
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Storage.SensorDB == "" {
		return fmt.Errorf("storage.sensorDb is required")
	}
	if c.Rescue.QueueCapacity <= 0 {
		return fmt.Errorf("rescue.queueCapacity must be positive")
	}
	if c.Resolver.CandidateLimit < 0 {
		return fmt.Errorf("resolver.candidateLimit must not be negative")
	}
	return nil
}
