package store

import (
	"context"
	"database/sql"
	"fmt"

	// Register the database/sql drivers for both supported stores.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Open opens a connection to the configured store and verifies it with a
// ping. The caller owns the returned handle and must close it; the dialect
// matches the engine behind it.
func Open(ctx context.Context, cfg Config) (*sql.DB, Dialect, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		db      *sql.DB
		dialect Dialect
		err     error
	)
	switch cfg.Driver {
	case DriverSQLite:
		// Foreign keys are off by default in SQLite; turn them on so both
		// engines enforce the schema's constraints.
		db, err = sql.Open("sqlite", "file:"+cfg.SQLitePath+"?_pragma=foreign_keys(1)")
		dialect = SQLite{}
	case DriverPostgres:
		db, err = sql.Open("pgx", cfg.postgresDSN())
		dialect = Postgres{}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.Driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, nil, fmt.Errorf("failed to connect to %s store: %w (close: %v)", cfg.Driver, err, closeErr)
		}
		return nil, nil, fmt.Errorf("failed to connect to %s store: %w", cfg.Driver, err)
	}

	return db, dialect, nil
}

// postgresDSN renders the connection string for the networked store.
func (c Config) postgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
