// Package martsql loads retail data files into a relational store and
// runs a fixed catalog of analytical queries against it.
//
// The store is either an embedded SQLite database or a networked
// PostgreSQL database, selected by configuration. Data files are CSV, TSV,
// XLSX, or Parquet, with gzip/bzip2/xz/zstd compression supported on the
// text formats. Each file feeds the table named after it; the file-to-table
// mapping is fixed (customers, orders, products, order_products, sales,
// plus optional delivery and payments).
//
// Example usage:
//
//	cfg, err := store.FromEnv()
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := martsql.Load(ctx, cfg, "./data"); err != nil {
//		log.Fatal(err)
//	}
//	if err := martsql.Report(ctx, cfg, os.Stdout); err != nil {
//		log.Fatal(err)
//	}
package martsql

import (
	"context"
	"fmt"
	"io"

	"github.com/martsql/martsql/loader"
	"github.com/martsql/martsql/report"
	"github.com/martsql/martsql/store"
)

// Load opens the configured store, ensures the canonical retail schema,
// and replaces table contents from the data files in dir. The connection
// is closed before returning.
func Load(ctx context.Context, cfg store.Config, dir string) error {
	db, dialect, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.EnsureSchema(ctx, db, dialect); err != nil {
		return err
	}
	return loader.Dir(ctx, db, dialect, dir)
}

// Report opens the configured store, runs the full query catalog in order,
// and writes every result to out. The connection is closed before
// returning.
func Report(ctx context.Context, cfg store.Config, out io.Writer) error {
	db, dialect, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := report.NewRunner(db, dialect, out).Run(ctx); err != nil {
		return fmt.Errorf("report failed: %w", err)
	}
	return nil
}
