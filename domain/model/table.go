package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Table represents file contents as a database table: a normalized header,
// the data rows, and the per-column type information inferred from them.
type Table struct {
	// name is the table name derived from the file path.
	name string
	// header holds normalized column names.
	header Header
	// records holds the data rows.
	records []Record
	// columnInfo contains inferred type information for each column.
	columnInfo []ColumnInfo
}

// NewTable creates a new Table. Column names in header are normalized and
// checked for duplicates; types are inferred from records.
func NewTable(name string, header Header, records []Record) (*Table, error) {
	normalized := make(Header, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, col := range header {
		col = NormalizeColumnName(col)
		if _, ok := seen[col]; ok {
			return nil, fmt.Errorf("%w: %q in table %q", ErrDuplicateColumnName, col, name)
		}
		seen[col] = struct{}{}
		normalized[i] = col
	}

	return &Table{
		name:       name,
		header:     normalized,
		records:    records,
		columnInfo: InferColumnsInfo(normalized, records),
	}, nil
}

// Name return table name.
func (t *Table) Name() string {
	return t.name
}

// Header return table header.
func (t *Table) Header() Header {
	return t.header
}

// Records return table records.
func (t *Table) Records() []Record {
	return t.records
}

// ColumnInfo returns column information with inferred types.
func (t *Table) ColumnInfo() []ColumnInfo {
	return t.columnInfo
}

// Equal compare Table.
func (t *Table) Equal(t2 *Table) bool {
	if t.Name() != t2.Name() {
		return false
	}
	if !t.header.Equal(t2.header) {
		return false
	}
	if len(t.Records()) != len(t2.Records()) {
		return false
	}
	for i, record := range t.Records() {
		if !record.Equal(t2.Records()[i]) {
			return false
		}
	}
	return true
}

// columnNameReplacer rewrites characters that are awkward in SQL
// identifiers. The replacement set mirrors what the store accepts
// unquoted: spaces, dashes, and dots all become underscores.
var columnNameReplacer = strings.NewReplacer(" ", "_", "-", "_", ".", "_")

// NormalizeColumnName returns a column name safe to use as an SQL
// identifier without quoting.
func NormalizeColumnName(name string) string {
	return columnNameReplacer.Replace(strings.TrimSpace(name))
}

// TableFromFilePath derives a table name from a file path by stripping
// any compression extension and then the format extension. Extensions are
// matched ignoring case; the name keeps the file's own casing.
func TableFromFilePath(filePath string) string {
	fileName := filepath.Base(filePath)
	for _, ext := range []string{ExtGZ, ExtBZ2, ExtXZ, ExtZSTD} {
		if strings.HasSuffix(strings.ToLower(fileName), ext) {
			fileName = fileName[:len(fileName)-len(ext)]
			break
		}
	}
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
