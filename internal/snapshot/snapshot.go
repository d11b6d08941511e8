// Package snapshot captures reflected schemas and persists them to object
// storage as JSON documents, so that schema history can be compared across
// time without re-reflecting the source.
//
// All providers (MinIO, or anything S3-compatible) implement the Store
// interface. Callers depend only on this package — never on a provider
// package directly.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/lakereflect/lakereflect/internal/schema"
)

// KeyPrefix is the object key prefix under which all snapshots are stored.
const KeyPrefix = "snapshots"

// Snapshot is one captured schema: every table of one schema at one
// point in time.
type Snapshot struct {
	Catalog string         `json:"catalog,omitempty"`
	Schema  string         `json:"schema"`
	TakenAt time.Time      `json:"taken_at"`
	Tables  []schema.Table `json:"tables"`
}

// Key returns the object key this snapshot is stored under:
// snapshots/<catalog>/<schema>/<RFC3339 timestamp>.json.
// Snapshots without a catalog use "-" as the catalog segment so that the
// key depth stays constant.
func (s *Snapshot) Key() string {
	catalog := s.Catalog
	if catalog == "" {
		catalog = "-"
	}
	return fmt.Sprintf("%s/%s/%s/%s.json",
		KeyPrefix, catalog, s.Schema, s.TakenAt.UTC().Format(time.RFC3339))
}

// Prefix returns the listing prefix for all snapshots of one schema.
func Prefix(catalog, schemaName string) string {
	if catalog == "" {
		catalog = "-"
	}
	return fmt.Sprintf("%s/%s/%s/", KeyPrefix, catalog, schemaName)
}

// Capture reflects every table in schemaName through r and returns the
// resulting snapshot. It does not persist anything; pass the result to a
// Store.
func Capture(ctx context.Context, r schema.Reflector, catalog, schemaName string) (*Snapshot, error) {
	tables, err := r.ListTables(ctx, schemaName)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Catalog: catalog,
		Schema:  schemaName,
		TakenAt: time.Now().UTC(),
		Tables:  make([]schema.Table, 0, len(tables)),
	}
	for _, table := range tables {
		t, err := r.ReflectTable(ctx, schemaName, table)
		if err != nil {
			return nil, err
		}
		snap.Tables = append(snap.Tables, *t)
	}
	return snap, nil
}
