package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/martsql/martsql/domain/model"
)

// schemaColumn is one column of a schema table definition.
type schemaColumn struct {
	name       string
	typ        model.ColumnType
	primaryKey bool
	references string // "table(column)" when the column is a foreign key
}

// schemaTable is one table of the canonical retail schema.
type schemaTable struct {
	name    string
	columns []schemaColumn
}

// retailSchema is the canonical schema: customers own orders, orders link
// to products through order_products, and sales stands alone.
var retailSchema = []schemaTable{
	{
		name: "customers",
		columns: []schemaColumn{
			{name: "customer_id", typ: model.ColumnTypeInteger, primaryKey: true},
			{name: "name", typ: model.ColumnTypeText},
			{name: "city", typ: model.ColumnTypeText},
			{name: "state", typ: model.ColumnTypeText},
		},
	},
	{
		name: "orders",
		columns: []schemaColumn{
			{name: "order_id", typ: model.ColumnTypeInteger, primaryKey: true},
			{name: "customer_id", typ: model.ColumnTypeInteger, references: "customers(customer_id)"},
			{name: "order_date", typ: model.ColumnTypeDatetime},
			{name: "amount", typ: model.ColumnTypeReal},
			{name: "payment_type", typ: model.ColumnTypeText},
		},
	},
	{
		name: "products",
		columns: []schemaColumn{
			{name: "product_id", typ: model.ColumnTypeInteger, primaryKey: true},
			{name: "category", typ: model.ColumnTypeText},
			{name: "price", typ: model.ColumnTypeReal},
		},
	},
	{
		name: "order_products",
		columns: []schemaColumn{
			{name: "order_id", typ: model.ColumnTypeInteger, references: "orders(order_id)"},
			{name: "product_id", typ: model.ColumnTypeInteger, references: "products(product_id)"},
		},
	},
	{
		name: "sales",
		columns: []schemaColumn{
			{name: "seller_id", typ: model.ColumnTypeInteger},
			{name: "amount", typ: model.ColumnTypeReal},
		},
	},
}

// EnsureSchema creates the canonical retail tables if they do not exist.
// It is idempotent and has no side effects beyond DDL.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	for _, table := range retailSchema {
		if _, err := db.ExecContext(ctx, createTableDDL(table, dialect)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// SchemaTableNames returns the names of the canonical tables in creation order.
func SchemaTableNames() []string {
	names := make([]string, len(retailSchema))
	for i, table := range retailSchema {
		names[i] = table.name
	}
	return names
}

// createTableDDL renders the CREATE TABLE statement for one schema table.
func createTableDDL(table schemaTable, dialect Dialect) string {
	defs := make([]string, 0, len(table.columns))
	for _, col := range table.columns {
		def := dialect.QuoteIdent(col.name) + " " + dialect.ColumnType(col.typ)
		if col.primaryKey {
			def += " PRIMARY KEY"
		}
		if col.references != "" {
			def += " REFERENCES " + col.references
		}
		defs = append(defs, def)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		dialect.QuoteIdent(table.name), strings.Join(defs, ", "))
}
