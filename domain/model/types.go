// Package model provides the domain model for martsql: file contents
// represented as relational tables ready to be loaded into a store.
package model

// Header is the list of column names read from a file's header row.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Record is a single data row.
type Record []string

// NewRecord create new Record.
func NewRecord(r []string) Record {
	return Record(r)
}

// Equal compare Record.
func (r Record) Equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// ColumnType represents the inferred column type, independent of engine.
type ColumnType int

const (
	// ColumnTypeText represents a text column
	ColumnTypeText ColumnType = iota
	// ColumnTypeInteger represents an integer column
	ColumnTypeInteger
	// ColumnTypeReal represents a floating point column
	ColumnTypeReal
	// ColumnTypeDatetime represents a date or timestamp column
	ColumnTypeDatetime
)

// String returns a readable name for the column type.
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeInteger:
		return "INTEGER"
	case ColumnTypeReal:
		return "REAL"
	case ColumnTypeDatetime:
		return "DATETIME"
	default:
		return "TEXT"
	}
}

// ColumnInfo represents a column with its normalized name and inferred type.
type ColumnInfo struct {
	Name string
	Type ColumnType
}
