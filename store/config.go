// Package store manages connections to the relational store that holds
// the loaded retail data: an embedded SQLite file or a networked
// PostgreSQL database, selected by configuration.
package store

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Driver names accepted in configuration.
const (
	// DriverSQLite selects the embedded SQLite store.
	DriverSQLite = "sqlite"
	// DriverPostgres selects a networked PostgreSQL store.
	DriverPostgres = "postgres"
)

// Defaults applied when the environment does not say otherwise.
const (
	defaultSQLitePath = "martsql.db"
	defaultDataDir    = "data"
	defaultPGPort     = "5432"
	defaultPGSSLMode  = "disable"
)

// Config holds connection parameters for the store and the location of
// source data files.
type Config struct {
	// Driver is DriverSQLite or DriverPostgres.
	Driver string
	// SQLitePath is the database file path for the embedded store.
	SQLitePath string
	// Host, Port, User, Password, DBName, SSLMode configure the
	// networked store.
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// DataDir is the directory holding the source data files.
	DataDir string
}

// FromEnv builds a Config from environment variables, reading an optional
// .env file first. Unset variables fall back to the embedded-store defaults.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Config{
		Driver:     envOr("MARTSQL_DRIVER", DriverSQLite),
		SQLitePath: envOr("MARTSQL_SQLITE_PATH", defaultSQLitePath),
		Host:       envOr("MARTSQL_DB_HOST", "localhost"),
		Port:       envOr("MARTSQL_DB_PORT", defaultPGPort),
		User:       os.Getenv("MARTSQL_DB_USER"),
		Password:   os.Getenv("MARTSQL_DB_PASSWORD"),
		DBName:     os.Getenv("MARTSQL_DB_NAME"),
		SSLMode:    envOr("MARTSQL_DB_SSLMODE", defaultPGSSLMode),
		DataDir:    envOr("MARTSQL_DATA_DIR", defaultDataDir),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration selects a known driver and
// carries the parameters that driver needs.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite database path is empty", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.DBName == "" {
			return fmt.Errorf("%w: postgres database name is empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
