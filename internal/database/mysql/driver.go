// Package mysql implements schema.Reflector for MySQL backed by
// database/sql. MySQL reports key constraints through structured
// information_schema rows, which are grouped into ordered descriptors here.
package mysql

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/go-sql-driver/mysql" // register "mysql" driver

	"github.com/lakereflect/lakereflect/internal/database"
	"github.com/lakereflect/lakereflect/internal/schema"
)

// Driver is a MySQL implementation of schema.Reflector.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	db     *sql.DB
	schema string
}

// New opens a MySQL connection pool using the provided Config and returns
// a Driver. It calls Ping to validate the connection before returning.
// When cfg.Schema is empty the connection's current database is used.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, mapError(err, "invalid DSN")
	}

	db.SetMaxOpenConns(int(cfg.MaxConns))
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	d := &Driver{db: db, schema: cfg.Schema}

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

// schemaExpr returns the SQL expression and arguments selecting the
// effective schema: the explicit name if one was given, otherwise the
// connection's current database.
func (d *Driver) schemaExpr(schemaName string) (string, []any) {
	if s := d.resolveSchema(schemaName); s != "" {
		return "?", []any{s}
	}
	return "DATABASE()", nil
}

// ListTables returns all base table names in the given schema.
func (d *Driver) ListTables(ctx context.Context, schemaName string) ([]string, error) {
	expr, args := d.schemaExpr(schemaName)
	q := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ` + expr + `
		  AND table_type   = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := d.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapError(err, "failed to list tables")
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, mapError(err, "failed to scan table name")
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating tables")
	}
	return tables, nil
}

// TableExists reports whether the table exists in the given schema.
func (d *Driver) TableExists(ctx context.Context, schemaName, table string) (bool, error) {
	expr, args := d.schemaExpr(schemaName)
	q := `
		SELECT 1
		FROM information_schema.tables
		WHERE table_schema = ` + expr + `
		  AND table_type   = 'BASE TABLE'
		  AND table_name   = ?`

	var exists int
	err := d.db.QueryRowContext(ctx, q, append(args, table)...).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, mapError(err, "failed to check table existence")
	}
	return true, nil
}

// PrimaryKey returns the table's primary key, or nil when it has none.
// MySQL names every primary key constraint PRIMARY.
func (d *Driver) PrimaryKey(ctx context.Context, schemaName, table string) (*schema.PrimaryKey, error) {
	expr, args := d.schemaExpr(schemaName)
	q := `
		SELECT column_name
		FROM information_schema.key_column_usage
		WHERE table_schema    = ` + expr + `
		  AND table_name      = ?
		  AND constraint_name = 'PRIMARY'
		ORDER BY ordinal_position`

	rows, err := d.db.QueryContext(ctx, q, append(args, table)...)
	if err != nil {
		return nil, mapError(err, "failed to fetch primary key")
	}
	defer rows.Close()

	var pk *schema.PrimaryKey
	for rows.Next() {
		var column string
		if err := rows.Scan(&column); err != nil {
			return nil, mapError(err, "failed to scan primary key column")
		}
		if pk == nil {
			pk = &schema.PrimaryKey{Name: "PRIMARY", ConstrainedColumns: []string{}}
		}
		pk.ConstrainedColumns = append(pk.ConstrainedColumns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating primary key columns")
	}
	return pk, nil
}

// ForeignKeys returns the table's foreign keys, one descriptor per
// constraint with columns in ordinal order. schemaName controls whether
// referred schemas are reported, matching the warehouse backend.
func (d *Driver) ForeignKeys(ctx context.Context, schemaName, table string) ([]schema.ForeignKey, error) {
	expr, args := d.schemaExpr(schemaName)
	q := `
		SELECT constraint_name,
		       column_name,
		       referenced_table_schema,
		       referenced_table_name,
		       referenced_column_name
		FROM information_schema.key_column_usage
		WHERE table_schema           = ` + expr + `
		  AND table_name             = ?
		  AND referenced_table_name IS NOT NULL
		ORDER BY constraint_name, ordinal_position`

	rows, err := d.db.QueryContext(ctx, q, append(args, table)...)
	if err != nil {
		return nil, mapError(err, "failed to fetch foreign keys")
	}
	defer rows.Close()

	var scanned []fkRow
	for rows.Next() {
		var row fkRow
		if err := rows.Scan(&row.Name, &row.Column, &row.ReferredSchema, &row.ReferredTable, &row.ReferredColumn); err != nil {
			return nil, mapError(err, "failed to scan foreign key column")
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating foreign key columns")
	}
	return groupForeignKeys(scanned, schemaName), nil
}

// fkRow is one scanned row of the foreign key query: one constrained
// column paired with the referenced column at the same ordinal position.
// key_column_usage carries the referenced column on every row, so no
// extra join is needed on this engine.
type fkRow struct {
	Name           string
	Column         string
	ReferredSchema string
	ReferredTable  string
	ReferredColumn string
}

// groupForeignKeys folds ordered per-column rows into one descriptor per
// constraint. Rows must arrive sorted by constraint name, then position.
// schemaName controls whether referred schemas are reported.
func groupForeignKeys(rows []fkRow, schemaName string) []schema.ForeignKey {
	fks := []schema.ForeignKey{}
	for _, row := range rows {
		if n := len(fks); n == 0 || fks[n-1].Name != row.Name {
			fk := schema.ForeignKey{
				Name:               row.Name,
				ConstrainedColumns: []string{},
				ReferredTable:      row.ReferredTable,
				ReferredColumns:    []string{},
			}
			if schemaName != "" {
				referred := row.ReferredSchema
				fk.ReferredSchema = &referred
			}
			fks = append(fks, fk)
		}
		last := &fks[len(fks)-1]
		last.ConstrainedColumns = append(last.ConstrainedColumns, row.Column)
		last.ReferredColumns = append(last.ReferredColumns, row.ReferredColumn)
	}
	return fks
}

// ReflectTable returns the full descriptor for one table.
func (d *Driver) ReflectTable(ctx context.Context, schemaName, table string) (*schema.Table, error) {
	cols, err := d.fetchColumns(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}

	pk, err := d.PrimaryKey(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}

	fks, err := d.ForeignKeys(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}

	return &schema.Table{
		Schema:      d.resolveSchema(schemaName),
		Name:        table,
		Columns:     cols,
		PrimaryKey:  pk,
		ForeignKeys: fks,
	}, nil
}

func (d *Driver) fetchColumns(ctx context.Context, schemaName, table string) ([]schema.Column, error) {
	expr, args := d.schemaExpr(schemaName)
	q := `
		SELECT column_name,
		       data_type,
		       is_nullable = 'YES',
		       column_default,
		       column_comment
		FROM information_schema.columns
		WHERE table_schema = ` + expr + `
		  AND table_name   = ?
		ORDER BY ordinal_position`

	rows, err := d.db.QueryContext(ctx, q, append(args, table)...)
	if err != nil {
		return nil, mapError(err, "failed to fetch columns")
	}
	defer rows.Close()

	var cols []schema.Column
	for rows.Next() {
		var c schema.Column
		if err := rows.Scan(&c.Name, &c.DataType, &c.Nullable, &c.Default, &c.Comment); err != nil {
			return nil, mapError(err, "failed to scan column info")
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating columns")
	}
	return cols, nil
}

func (d *Driver) resolveSchema(schemaName string) string {
	if schemaName != "" {
		return schemaName
	}
	return d.schema
}
