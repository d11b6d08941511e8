// Package describe parses the textual output of DESCRIBE TABLE EXTENDED.
//
// Databricks-style SQL warehouses report key constraints as human-readable
// strings inside the DESCRIBE TABLE EXTENDED result set rather than as
// structured catalog fields. The functions here extract backtick-quoted
// identifiers, parenthesized identifier groups and three-level table
// references from those strings, and assemble them into schema descriptors.
//
// Everything in this package is pure: no I/O, no shared state, safe for
// concurrent use. Absence of a match is a valid result (empty slice or nil),
// never an error; only input that claims to be a constraint but does not
// follow the grammar produces an error.
package describe

import "strings"

// Row is one line of DESCRIBE TABLE EXTENDED output. Constraint rows carry
// the constraint name in ColName and the constraint text in DataType.
type Row struct {
	ColName  string `json:"col_name"`
	DataType string `json:"data_type"`
}

// Markers identifying constraint rows in DESCRIBE TABLE EXTENDED output.
const (
	foreignKeyMarker = "FOREIGN KEY"
	primaryKeyMarker = "PRIMARY KEY"
)

// FilterRows returns the rows whose DataType contains match as a literal,
// case-sensitive substring, in their original order. No match yields an
// empty slice.
//
// The warehouse gives constraint rows no deterministic col_name, so callers
// locate them by substring. A column whose type text happened to contain the
// marker would be misidentified; that trade-off is accepted over making a
// second catalog round trip per table.
func FilterRows(rows []Row, match string) []Row {
	out := []Row{}
	for _, row := range rows {
		if strings.Contains(row.DataType, match) {
			out = append(out, row)
		}
	}
	return out
}

// ForeignKeyRows returns the rows describing foreign key constraints.
func ForeignKeyRows(rows []Row) []Row {
	return FilterRows(rows, foreignKeyMarker)
}

// PrimaryKeyRows returns the rows describing primary key constraints.
// An empty result means the table has no primary key.
func PrimaryKeyRows(rows []Row) []Row {
	return FilterRows(rows, primaryKeyMarker)
}
