// Package config loads the lakereflect configuration file.
//
// Configuration is a single YAML document with sections for logging, the
// reflection backend, the snapshot store and the HTTP server. Every field
// has a default; a missing file or empty section yields a usable config.
package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Config is the root of the lakereflect configuration.
type Config struct {
	Log      Log      `yaml:"log"`
	Database Database `yaml:"database"`
	Snapshot Snapshot `yaml:"snapshot"`
	Server   Server   `yaml:"server"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Database configures the reflection backend.
type Database struct {
	// Driver selects the backend: warehouse, postgres or mysql.
	Driver string `yaml:"driver"`

	// DSN is the full connection string for the chosen driver.
	DSN string `yaml:"dsn"`

	// Catalog is the default catalog for warehouse reflection.
	Catalog string `yaml:"catalog"`

	// Schema is the default schema used when a request names none.
	Schema string `yaml:"schema"`

	// Pool tuning.
	MaxConns int32 `yaml:"max_conns"`
	MinConns int32 `yaml:"min_conns"`

	// Timeouts, in seconds.
	ConnectTimeoutSeconds int `yaml:"connect_timeout_seconds"`
	QueryTimeoutSeconds   int `yaml:"query_timeout_seconds"`
}

// ConnectTimeout returns the connect timeout as a duration.
func (d Database) ConnectTimeout() time.Duration {
	return time.Duration(d.ConnectTimeoutSeconds) * time.Second
}

// QueryTimeout returns the per-query deadline as a duration.
func (d Database) QueryTimeout() time.Duration {
	return time.Duration(d.QueryTimeoutSeconds) * time.Second
}

// Snapshot configures the schema snapshot store.
type Snapshot struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"` // host:port of the object store
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr                string `yaml:"addr"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: Log{
			Level:  "info",
			Format: "json",
		},
		Database: Database{
			Driver:                "warehouse",
			Schema:                "default",
			MaxConns:              10,
			MinConns:              2,
			ConnectTimeoutSeconds: 10,
			QueryTimeoutSeconds:   30,
		},
		Snapshot: Snapshot{
			Bucket: "lakereflect-snapshots",
		},
		Server: Server{
			Addr:                ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
		},
	}
}

// Load reads the YAML file at path into a Config. Values not present in
// the file keep their defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
