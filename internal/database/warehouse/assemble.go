package warehouse

import (
	"strings"

	"github.com/lakereflect/lakereflect/internal/describe"
	"github.com/lakereflect/lakereflect/internal/schema"
)

// columnsFromRows returns the column section of DESCRIBE TABLE EXTENDED
// output: every row up to the first separator (blank or "#"-prefixed
// col_name). Everything after that is partition info, constraint rows and
// detailed table properties.
func columnsFromRows(rows []describe.Row) []schema.Column {
	cols := []schema.Column{}
	for _, row := range rows {
		if row.ColName == "" || strings.HasPrefix(row.ColName, "#") {
			break
		}
		cols = append(cols, schema.Column{
			Name:     row.ColName,
			DataType: row.DataType,
			Nullable: true, // DESCRIBE output does not carry nullability
		})
	}
	return cols
}

// primaryKeyFromRows extracts the primary key descriptor from DESCRIBE
// TABLE EXTENDED output, or nil when the table has none. A table can hold
// only one primary key, so the first matching row wins.
func primaryKeyFromRows(rows []describe.Row) *schema.PrimaryKey {
	pkRows := describe.PrimaryKeyRows(rows)
	if len(pkRows) == 0 {
		return nil
	}
	return describe.ParsePrimaryKey(pkRows[0].ColName, pkRows[0].DataType)
}

// foreignKeysFromRows extracts every foreign key descriptor from DESCRIBE
// TABLE EXTENDED output. schemaName is the ambient schema of the request
// and controls whether referred schemas are reported.
func foreignKeysFromRows(rows []describe.Row, schemaName string) ([]schema.ForeignKey, error) {
	fkRows := describe.ForeignKeyRows(rows)
	fks := make([]schema.ForeignKey, 0, len(fkRows))
	for _, row := range fkRows {
		fk, err := describe.ParseForeignKey(row.ColName, row.DataType, schemaName)
		if err != nil {
			return nil, err
		}
		fks = append(fks, *fk)
	}
	return fks, nil
}
