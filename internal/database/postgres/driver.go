// Package postgres implements schema.Reflector for PostgreSQL backed by
// pgxpool. Unlike the warehouse, Postgres exposes key constraints as
// structured information_schema rows, so no constraint-string parsing is
// involved — the rows are grouped into the same ordered descriptors.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lakereflect/lakereflect/internal/database"
	"github.com/lakereflect/lakereflect/internal/schema"
)

// Driver is a PostgreSQL implementation of schema.Reflector.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	pool   *pgxpool.Pool
	schema string
}

// New connects to PostgreSQL using the provided Config and returns a
// Driver. It calls Ping to validate the connection before returning.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, mapError(err, "invalid DSN")
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, mapError(err, "failed to create connection pool")
	}

	sch := cfg.Schema
	if sch == "" {
		sch = "public"
	}
	d := &Driver{pool: pool, schema: sch}

	if err := d.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return d, nil
}

// --- schema.Reflector implementation ---

func (d *Driver) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

func (d *Driver) Close() {
	d.pool.Close()
}

// ListTables returns all user-defined table names in the given schema.
func (d *Driver) ListTables(ctx context.Context, schemaName string) ([]string, error) {
	const q = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		  AND table_type   = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := d.pool.Query(ctx, q, d.resolveSchema(schemaName))
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
	const q = `
		SELECT 1
		FROM information_schema.tables
		WHERE table_schema = $1
		  AND table_type   = 'BASE TABLE'
		  AND table_name   = $2`

	var exists int
	err := d.pool.QueryRow(ctx, q, d.resolveSchema(schemaName), table).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, mapError(err, "failed to check table existence")
	}
	return true, nil
}

// PrimaryKey returns the table's primary key, or nil when it has none.
func (d *Driver) PrimaryKey(ctx context.Context, schemaName, table string) (*schema.PrimaryKey, error) {
	const q = `
		SELECT tc.constraint_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_schema = $1
		  AND tc.table_name   = $2
		ORDER BY kcu.ordinal_position`

	rows, err := d.pool.Query(ctx, q, d.resolveSchema(schemaName), table)
	if err != nil {
		return nil, mapError(err, "failed to fetch primary key")
	}
	defer rows.Close()

	var pk *schema.PrimaryKey
	for rows.Next() {
		var name, column string
		if err := rows.Scan(&name, &column); err != nil {
			return nil, mapError(err, "failed to scan primary key column")
		}
		if pk == nil {
			pk = &schema.PrimaryKey{Name: name, ConstrainedColumns: []string{}}
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
//
// constraint_column_usage carries no ordinal column, so the referred
// columns are resolved through the unique constraint the foreign key
// targets: position_in_unique_constraint on the referencing side matches
// ordinal_position on the referenced side. Joining the referred side on
// constraint name alone would cross-product composite keys.
func (d *Driver) ForeignKeys(ctx context.Context, schemaName, table string) ([]schema.ForeignKey, error) {
	const q = `
		SELECT tc.constraint_name,
		       kcu.column_name,
		       rcu.table_schema  AS referred_schema,
		       rcu.table_name    AS referred_table,
		       rcu.column_name   AS referred_column
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = tc.constraint_name
			AND kcu.table_schema = tc.table_schema
		JOIN information_schema.referential_constraints rc
			ON rc.constraint_name = tc.constraint_name
			AND rc.constraint_schema = tc.table_schema
		JOIN information_schema.key_column_usage rcu
			ON rcu.constraint_name = rc.unique_constraint_name
			AND rcu.table_schema = rc.unique_constraint_schema
			AND rcu.ordinal_position = kcu.position_in_unique_constraint
		WHERE tc.constraint_type = 'FOREIGN KEY'
		  AND tc.table_schema = $1
		  AND tc.table_name   = $2
		ORDER BY tc.constraint_name, kcu.ordinal_position`

	rows, err := d.pool.Query(ctx, q, d.resolveSchema(schemaName), table)
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
// column paired with the referred column at the same position.
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
	const q = `
		SELECT column_name,
		       data_type,
		       is_nullable = 'YES',
		       column_default
		FROM information_schema.columns
		WHERE table_schema = $1
		  AND table_name   = $2
		ORDER BY ordinal_position`

	rows, err := d.pool.Query(ctx, q, d.resolveSchema(schemaName), table)
	if err != nil {
		return nil, mapError(err, "failed to fetch columns")
	}
	defer rows.Close()

	var cols []schema.Column
	for rows.Next() {
		var c schema.Column
		if err := rows.Scan(&c.Name, &c.DataType, &c.Nullable, &c.Default); err != nil {
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
