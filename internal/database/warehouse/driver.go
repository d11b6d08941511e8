// Package warehouse implements schema.Reflector for Databricks-style SQL
// warehouses.
//
// The warehouse catalog does not expose key constraints as structured
// fields; they arrive as human-readable strings inside DESCRIBE TABLE
// EXTENDED output. This backend runs the introspection statements and
// delegates all string parsing to the describe package.
package warehouse

import (
	"context"
	"database/sql"

	_ "github.com/databricks/databricks-sql-go" // register "databricks" driver

	"github.com/lakereflect/lakereflect/internal/database"
	"github.com/lakereflect/lakereflect/internal/describe"
	"github.com/lakereflect/lakereflect/internal/errs"
	"github.com/lakereflect/lakereflect/internal/schema"
)

// Driver is a SQL warehouse implementation of schema.Reflector backed by
// database/sql. It is safe for concurrent use by multiple goroutines.
type Driver struct {
	db      *sql.DB
	catalog string
	schema  string
}

// New opens a warehouse connection pool using the provided Config and
// returns a Driver. It calls Ping to validate the connection before
// returning.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	db, err := sql.Open("databricks", cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "invalid DSN", err)
	}

	db.SetMaxOpenConns(int(cfg.MaxConns))
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	d := &Driver{db: db, catalog: cfg.Catalog, schema: cfg.Schema}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := d.Ping(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return d, nil
}

// --- schema.Reflector implementation ---

func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

func (d *Driver) Close() {
	_ = d.db.Close()
}

// ListTables returns all table names in the given schema via SHOW TABLES.
func (d *Driver) ListTables(ctx context.Context, schemaName string) ([]string, error) {
	stmt := "SHOW TABLES IN " + d.qualifySchema(schemaName)

	rows, err := d.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, mapError(err, "failed to list tables")
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var dbName, tableName string
		var isTemporary bool
		if err := rows.Scan(&dbName, &tableName, &isTemporary); err != nil {
			return nil, mapError(err, "failed to scan table name")
		}
		if !isTemporary {
			tables = append(tables, tableName)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating tables")
	}
	return tables, nil
}

// TableExists reports whether the table exists. The warehouse has no cheap
// existence query, so it describes the table and classifies the failure.
func (d *Driver) TableExists(ctx context.Context, schemaName, table string) (bool, error) {
	_, err := d.DescribeTableExtended(ctx, schemaName, table)
	if err != nil {
		if errs.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DescribeTableExtended runs DESCRIBE TABLE EXTENDED on the given table and
// returns its tabular output as describe rows, one per output line.
func (d *Driver) DescribeTableExtended(ctx context.Context, schemaName, table string) ([]describe.Row, error) {
	stmt := "DESCRIBE TABLE EXTENDED " + d.qualifyTable(schemaName, table)

	rows, err := d.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, mapError(err, "describe table extended failed")
	}
	defer rows.Close()

	var out []describe.Row
	for rows.Next() {
		// The result has three columns: col_name, data_type, comment.
		// Any of them may be NULL in the section separator lines.
		var colName, dataType, comment sql.NullString
		if err := rows.Scan(&colName, &dataType, &comment); err != nil {
			return nil, mapError(err, "failed to scan describe output")
		}
		out = append(out, describe.Row{
			ColName:  colName.String,
			DataType: dataType.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating describe output")
	}
	return out, nil
}

// PrimaryKey returns the table's primary key, or nil when it has none.
func (d *Driver) PrimaryKey(ctx context.Context, schemaName, table string) (*schema.PrimaryKey, error) {
	rows, err := d.DescribeTableExtended(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	return primaryKeyFromRows(rows), nil
}

// ForeignKeys returns the table's foreign keys in output order. The raw
// schemaName the caller passed — not the resolved default — decides whether
// referred schemas are reported, so that schema-less requests produce
// schema-less references.
func (d *Driver) ForeignKeys(ctx context.Context, schemaName, table string) ([]schema.ForeignKey, error) {
	rows, err := d.DescribeTableExtended(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	return foreignKeysFromRows(rows, schemaName)
}

// ReflectTable returns the full descriptor for one table from a single
// DESCRIBE TABLE EXTENDED round trip.
func (d *Driver) ReflectTable(ctx context.Context, schemaName, table string) (*schema.Table, error) {
	rows, err := d.DescribeTableExtended(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}

	fks, err := foreignKeysFromRows(rows, schemaName)
	if err != nil {
		return nil, err
	}

	return &schema.Table{
		Catalog:     d.catalog,
		Schema:      d.resolveSchema(schemaName),
		Name:        table,
		Columns:     columnsFromRows(rows),
		PrimaryKey:  primaryKeyFromRows(rows),
		ForeignKeys: fks,
	}, nil
}

// --- identifier quoting ---

func (d *Driver) resolveSchema(schemaName string) string {
	if schemaName != "" {
		return schemaName
	}
	return d.schema
}

func (d *Driver) qualifySchema(schemaName string) string {
	sch := quoteIdent(d.resolveSchema(schemaName))
	if d.catalog != "" {
		return quoteIdent(d.catalog) + "." + sch
	}
	return sch
}

func (d *Driver) qualifyTable(schemaName, table string) string {
	return d.qualifySchema(schemaName) + "." + quoteIdent(table)
}

// quoteIdent backtick-quotes an identifier. Backticks cannot appear inside
// warehouse identifiers, so embedded ones are stripped rather than escaped.
func quoteIdent(name string) string {
	out := make([]byte, 0, len(name)+2)
	out = append(out, '`')
	for i := 0; i < len(name); i++ {
		if name[i] != '`' {
			out = append(out, name[i])
		}
	}
	return string(append(out, '`'))
}
