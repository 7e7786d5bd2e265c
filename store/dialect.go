package store

import (
	"fmt"
	"strings"

	"github.com/martsql/martsql/domain/model"
)

// Dialect supplies the engine-specific SQL fragments the loader and the
// query catalog need. Both engines share standard SQL for everything else,
// so the surface stays small: identifier quoting, placeholders, column
// types, and date handling.
type Dialect interface {
	// Name returns the driver name the dialect belongs to.
	Name() string
	// Placeholder returns the parameter placeholder for 1-based position n.
	Placeholder(n int) string
	// QuoteIdent quotes a table or column identifier.
	QuoteIdent(name string) string
	// ColumnType maps an inferred column type to an engine column type.
	ColumnType(t model.ColumnType) string
	// Year returns an expression extracting the year of expr as an integer.
	Year(expr string) string
	// Month returns an expression extracting the month of expr as an integer.
	Month(expr string) string
	// YearMonth returns an expression formatting expr as 'YYYY-MM'.
	YearMonth(expr string) string
	// AddMonths returns an expression advancing expr by n months.
	AddMonths(expr string, n int) string
}

// SQLite is the dialect of the embedded store.
type SQLite struct{}

// Name implements Dialect.
func (SQLite) Name() string { return DriverSQLite }

// Placeholder implements Dialect.
func (SQLite) Placeholder(_ int) string { return "?" }

// QuoteIdent implements Dialect.
func (SQLite) QuoteIdent(name string) string { return quoteIdent(name) }

// ColumnType implements Dialect. SQLite stores datetimes as ISO8601 text.
func (SQLite) ColumnType(t model.ColumnType) string {
	switch t {
	case model.ColumnTypeInteger:
		return "INTEGER"
	case model.ColumnTypeReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

// Year implements Dialect.
func (SQLite) Year(expr string) string {
	return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", expr)
}

// Month implements Dialect.
func (SQLite) Month(expr string) string {
	return fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", expr)
}

// YearMonth implements Dialect.
func (SQLite) YearMonth(expr string) string {
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", expr)
}

// AddMonths implements Dialect.
func (SQLite) AddMonths(expr string, n int) string {
	return fmt.Sprintf("date(%s, '+%d months')", expr, n)
}

// Postgres is the dialect of the networked store.
type Postgres struct{}

// Name implements Dialect.
func (Postgres) Name() string { return DriverPostgres }

// Placeholder implements Dialect.
func (Postgres) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

// QuoteIdent implements Dialect.
func (Postgres) QuoteIdent(name string) string { return quoteIdent(name) }

// ColumnType implements Dialect.
func (Postgres) ColumnType(t model.ColumnType) string {
	switch t {
	case model.ColumnTypeInteger:
		return "BIGINT"
	case model.ColumnTypeReal:
		return "DOUBLE PRECISION"
	case model.ColumnTypeDatetime:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

// Year implements Dialect.
func (Postgres) Year(expr string) string {
	return fmt.Sprintf("EXTRACT(YEAR FROM %s)::int", expr)
}

// Month implements Dialect.
func (Postgres) Month(expr string) string {
	return fmt.Sprintf("EXTRACT(MONTH FROM %s)::int", expr)
}

// YearMonth implements Dialect.
func (Postgres) YearMonth(expr string) string {
	return fmt.Sprintf("to_char(%s, 'YYYY-MM')", expr)
}

// AddMonths implements Dialect.
func (Postgres) AddMonths(expr string, n int) string {
	return fmt.Sprintf("(%s + INTERVAL '%d months')", expr, n)
}

// quoteIdent double-quotes an identifier, escaping embedded quotes. Both
// engines accept the SQL standard form.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
