// Package database holds the connection configuration shared by the
// reflection backends. The backends themselves live in subpackages
// (warehouse, postgres, mysql); callers pick one and hand it a *Config.
package database

import "time"

// Driver identifies the reflection backend.
type Driver string

const (
	DriverWarehouse Driver = "warehouse" // Databricks-style SQL warehouse
	DriverPostgres  Driver = "postgres"
	DriverMySQL     Driver = "mysql"
)

// Config holds all settings needed to connect to and pool a backend.
type Config struct {
	// Driver is the backend engine (e.g. DriverWarehouse).
	Driver Driver

	// DSN is the full data source name / connection string.
	// Example: "token:dapi…@dbc-1234.cloud.databricks.com:443/sql/1.0/warehouses/abc"
	DSN string

	// Catalog is the default catalog for warehouse reflection.
	// Ignored by the postgres and mysql backends.
	Catalog string

	// Schema is the default schema used when a reflection call names none.
	Schema string

	// Pool tuning
	MaxConns        int32         // maximum number of connections in the pool
	MinConns        int32         // minimum number of idle connections kept alive
	MaxConnLifetime time.Duration // maximum time a connection may be reused
	MaxConnIdleTime time.Duration // maximum time a connection may sit idle

	// Timeouts
	ConnectTimeout time.Duration // time limit for establishing a new connection
	QueryTimeout   time.Duration // default per-statement deadline (applied by callers)
}

// DefaultConfig returns production-ready pool settings for the given DSN.
// Reflection is read-only and bursty, so the pool is kept small.
func DefaultConfig(driver Driver, dsn string) *Config {
	return &Config{
		Driver:          driver,
		DSN:             dsn,
		Schema:          "default",
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
		ConnectTimeout:  10 * time.Second,
		QueryTimeout:    30 * time.Second,
	}
}
