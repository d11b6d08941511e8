// Package schema defines the engine-neutral descriptors produced by every
// reflection backend, and the Reflector contract the backends implement.
package schema

// Column describes a single column in a table.
type Column struct {
	Name     string  `json:"name"`
	DataType string  `json:"data_type"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default,omitempty"` // nil if no default
	Comment  string  `json:"comment,omitempty"`
}

// PrimaryKey describes a table's primary key constraint.
type PrimaryKey struct {
	Name               string   `json:"name"`
	ConstrainedColumns []string `json:"constrained_columns"`
}

// ForeignKey describes one foreign key constraint. Column order is
// significant: ConstrainedColumns[i] references ReferredColumns[i].
//
// ReferredSchema is nil when the reflection was requested without an
// ambient schema, even if the backend knows which schema the constraint
// points at. Downstream consumers rely on that distinction.
type ForeignKey struct {
	Name               string   `json:"name"`
	ConstrainedColumns []string `json:"constrained_columns"`
	ReferredSchema     *string  `json:"referred_schema"`
	ReferredTable      string   `json:"referred_table"`
	ReferredColumns    []string `json:"referred_columns"`
}

// Table is the full reflected description of one table.
type Table struct {
	Catalog     string       `json:"catalog,omitempty"`
	Schema      string       `json:"schema,omitempty"`
	Name        string       `json:"name"`
	Columns     []Column     `json:"columns"`
	PrimaryKey  *PrimaryKey  `json:"primary_key,omitempty"` // nil when the table has none
	ForeignKeys []ForeignKey `json:"foreign_keys"`
}
