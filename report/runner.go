package report

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/martsql/martsql/store"
)

// Runner executes the query catalog in order against one store handle and
// renders every result to a writer.
type Runner struct {
	db      *sql.DB
	dialect store.Dialect
	out     io.Writer
}

// NewRunner creates a Runner writing to out.
func NewRunner(db *sql.DB, dialect store.Dialect, out io.Writer) *Runner {
	return &Runner{db: db, dialect: dialect, out: out}
}

var (
	tierColor  = color.New(color.FgYellow, color.Bold)
	labelColor = color.New(color.FgCyan)
)

// Run executes the full catalog sequentially. The first failing query
// aborts the run; queries do not depend on each other, so nothing needs
// unwinding.
func (r *Runner) Run(ctx context.Context) error {
	var currentTier Tier = -1
	for i, q := range Catalog() {
		if q.Tier != currentTier {
			currentTier = q.Tier
			if _, err := tierColor.Fprintf(r.out, "=== %s queries ===\n\n", q.Tier); err != nil {
				return err
			}
		}

		if _, err := labelColor.Fprintf(r.out, "%d. %s\n", i+1, q.Name); err != nil {
			return err
		}
		if err := r.renderQuery(ctx, q); err != nil {
			return fmt.Errorf("query %q failed: %w", q.Name, err)
		}
		if _, err := fmt.Fprintln(r.out); err != nil {
			return err
		}
	}
	return nil
}

// renderQuery executes one query and renders its rows as an ASCII table.
func (r *Runner) renderQuery(ctx context.Context, q Query) error {
	rows, err := r.db.QueryContext(ctx, q.SQL(r.dialect))
	if err != nil {
		return err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(r.out)
	table.SetHeader(columns)

	values := make([]any, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return err
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = formatValue(v)
		}
		table.Append(record)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	table.Render()
	return nil
}

// formatValue renders one result cell. NULL stays visible as text rather
// than an empty cell so absent values are distinguishable from empty
// strings.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", val)
	}
}
