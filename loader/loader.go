// Package loader reads data files into memory and replaces the contents
// of the matching store tables. Loads are wholesale: a directory load
// rewrites every table inside one transaction, with no incremental update
// path.
package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/martsql/martsql/domain/model"
	"github.com/martsql/martsql/store"
)

// requiredTables are the logical tables every data directory must provide.
// The order follows the foreign key graph so parents load first.
var requiredTables = []string{"customers", "orders", "products", "order_products", "sales"}

// optionalTables are loaded when a matching file is present.
var optionalTables = []string{"delivery", "payments"}

// TableNames returns the fixed file-to-table mapping: required tables in
// load order followed by the optional ones.
func TableNames() (required, optional []string) {
	return append([]string(nil), requiredTables...), append([]string(nil), optionalTables...)
}

// File parses the file at path and replaces the contents of the table
// named after it. The file's format and compression are detected from its
// extension.
func File(ctx context.Context, db *sql.DB, dialect store.Dialect, path string) error {
	table, err := model.NewFile(path).ToTable()
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return Table(ctx, db, dialect, table)
}

// Table replaces the contents of the store table matching t. The target
// table is created from the inferred column types when it does not exist;
// existing rows are deleted and the new rows inserted, all in one
// transaction, so a failed load leaves the previous contents intact.
func Table(ctx context.Context, db *sql.DB, dialect store.Dialect, t *model.Table) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for table %s: %w", t.Name(), err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := replaceTables(ctx, tx, dialect, []*model.Table{t}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load of table %s: %w", t.Name(), err)
	}
	return nil
}

// replaceTables rewrites the given tables inside an open transaction.
// Every target is created first, then all are cleared with children before
// parents and refilled with parents before children, so neither the deletes
// nor the inserts can break a foreign key between mapped tables.
func replaceTables(ctx context.Context, tx *sql.Tx, dialect store.Dialect, tables []*model.Table) error {
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, createTableSQL(t, dialect)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name(), err)
		}
	}

	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+dialect.QuoteIdent(tables[i].Name())); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", tables[i].Name(), err)
		}
	}

	for _, t := range tables {
		if err := insertRecords(ctx, tx, dialect, t); err != nil {
			return err
		}
	}
	return nil
}

// Dir loads the fixed table mapping from a data directory. Every required
// table must have exactly one source file; optional tables are loaded when
// present, and files outside the mapping are ignored. The whole load runs
// in one transaction, so a reload over a populated store never leaves the
// store half-replaced and never trips a foreign key mid-load.
func Dir(ctx context.Context, db *sql.DB, dialect store.Dialect, dir string) error {
	sources, err := collectSources(dir)
	if err != nil {
		return err
	}

	var missing []string
	for _, name := range requiredTables {
		if _, ok := sources[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s in %s", ErrMissingSourceFile, strings.Join(missing, ", "), dir)
	}

	order := append([]string(nil), requiredTables...)
	for _, name := range optionalTables {
		if _, ok := sources[name]; ok {
			order = append(order, name)
		}
	}

	tables := make([]*model.Table, 0, len(order))
	for _, name := range order {
		table, err := model.NewFile(sources[name]).ToTable()
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", sources[name], err)
		}
		tables = append(tables, table)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", dir, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := replaceTables(ctx, tx, dialect, tables); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load of %s: %w", dir, err)
	}
	return nil
}

// collectSources maps logical table names to source files in dir. When two
// files would feed the same table, the less compressed one wins; a tie is
// an error.
func collectSources(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	known := make(map[string]struct{}, len(requiredTables)+len(optionalTables))
	for _, name := range append(append([]string(nil), requiredTables...), optionalTables...) {
		known[name] = struct{}{}
	}

	sources := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !model.IsSupportedFile(entry.Name()) {
			continue
		}

		tableName := model.TableFromFilePath(entry.Name())
		if _, ok := known[tableName]; !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		existing, ok := sources[tableName]
		if !ok {
			sources[tableName] = path
			continue
		}

		switch {
		case compressionCount(path) < compressionCount(existing):
			sources[tableName] = path
		case compressionCount(path) > compressionCount(existing):
			// keep existing
		default:
			return nil, fmt.Errorf("%w: table %q from files %s and %s",
				ErrDuplicateTableName, tableName, existing, path)
		}
	}

	return sources, nil
}

// compressionCount counts compression suffixes on a file name.
func compressionCount(fileName string) int {
	lower := strings.ToLower(fileName)
	count := 0
	for _, ext := range []string{model.ExtGZ, model.ExtBZ2, model.ExtXZ, model.ExtZSTD} {
		if strings.HasSuffix(lower, ext) {
			count++
		}
	}
	return count
}

// createTableSQL renders a CREATE TABLE IF NOT EXISTS statement from the
// table's inferred column types.
func createTableSQL(t *model.Table, dialect store.Dialect) string {
	defs := make([]string, 0, len(t.ColumnInfo()))
	for _, col := range t.ColumnInfo() {
		defs = append(defs, dialect.QuoteIdent(col.Name)+" "+dialect.ColumnType(col.Type))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		dialect.QuoteIdent(t.Name()), strings.Join(defs, ", "))
}

// insertRecords bulk-inserts all rows through one prepared statement.
// Empty fields become SQL NULL.
func insertRecords(ctx context.Context, tx *sql.Tx, dialect store.Dialect, t *model.Table) error {
	if len(t.Records()) == 0 {
		return nil
	}

	columns := make([]string, len(t.Header()))
	placeholders := make([]string, len(t.Header()))
	for i, col := range t.Header() {
		columns[i] = dialect.QuoteIdent(col)
		placeholders[i] = dialect.Placeholder(i + 1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		dialect.QuoteIdent(t.Name()),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert for table %s: %w", t.Name(), err)
	}
	defer stmt.Close()

	args := make([]any, len(t.Header()))
	for _, record := range t.Records() {
		for i := range args {
			if i < len(record) && record[i] != "" {
				args[i] = record[i]
			} else {
				args[i] = nil
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert into table %s: %w", t.Name(), err)
		}
	}
	return nil
}
