package schema

import "context"

// Reflector is the central contract for schema reflection.
// All layers above the backends talk only to this interface — they never
// import the warehouse, postgres or mysql packages directly.
//
// schemaName may be empty; each backend then falls back to its configured
// default schema. Errors are always *errs.Error values so callers can
// classify them without knowing which backend produced them.
type Reflector interface {
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases all resources held by the backend.
	Close()

	// ListTables returns all table names in the given schema.
	ListTables(ctx context.Context, schemaName string) ([]string, error)

	// TableExists reports whether the table exists in the given schema.
	TableExists(ctx context.Context, schemaName, table string) (bool, error)

	// ReflectTable returns the full descriptor for one table:
	// columns, primary key and foreign keys.
	ReflectTable(ctx context.Context, schemaName, table string) (*Table, error)

	// PrimaryKey returns the table's primary key constraint, or nil
	// when the table has none. Absence is not an error.
	PrimaryKey(ctx context.Context, schemaName, table string) (*PrimaryKey, error)

	// ForeignKeys returns the table's foreign key constraints in
	// definition order. A table without foreign keys yields an empty slice.
	ForeignKeys(ctx context.Context, schemaName, table string) ([]ForeignKey, error)
}
