package describe

import (
	"github.com/lakereflect/lakereflect/internal/errs"
	"github.com/lakereflect/lakereflect/internal/schema"
)

// ParseForeignKey builds a foreign key descriptor from one constraint line
// of the form
//
//	FOREIGN KEY (`pname`, `pid`) REFERENCES `main`.`sales`.`tb1` (`name`, `id`)
//
// The constraint name is not part of the line, so the caller supplies it
// (DESCRIBE TABLE EXTENDED carries it in the row's col_name field).
//
// schemaName is the ambient schema of the reflection request. When it is
// empty, ReferredSchema is nil in the result regardless of the schema
// parsed from the line; reflection consumers expect a schema-less request
// to produce schema-less references.
//
// The input is assumed to already be confirmed as a foreign key row. A line
// without a REFERENCES clause, or without both column lists, is a malformed
// constraint and fails with ErrKindInvalidInput. There are no partial
// results: either the descriptor is fully assembled or an error is returned.
func ParseForeignKey(name, constraint, schemaName string) (*schema.ForeignKey, error) {
	ref, err := ExtractQualifiedName(constraint)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, errs.Newf(errs.ErrKindInvalidInput,
			"malformed foreign key constraint %q: no REFERENCES clause", constraint)
	}

	// The first group follows FOREIGN KEY, the second follows the
	// referenced table name.
	groups := ExtractIdentifierGroups(constraint)
	if len(groups) < 2 {
		return nil, errs.Newf(errs.ErrKindInvalidInput,
			"malformed foreign key constraint %q: want 2 column lists, got %d",
			constraint, len(groups))
	}

	fk := &schema.ForeignKey{
		Name:               name,
		ConstrainedColumns: ExtractIdentifiers(groups[0]),
		ReferredTable:      ref.Table,
		ReferredColumns:    ExtractIdentifiers(groups[1]),
	}
	if schemaName != "" {
		referred := ref.Schema
		fk.ReferredSchema = &referred
	}
	return fk, nil
}

// ParsePrimaryKey builds a primary key descriptor from one constraint line
// of the form
//
//	PRIMARY KEY (`id`, `name`, `email_address`)
//
// As with foreign keys, the caller supplies the constraint name. This never
// fails: a line with zero identifiers yields a descriptor with an empty
// column list. An empty constraint is syntactically odd, but rejecting it
// is not this parser's job.
func ParsePrimaryKey(name, constraint string) *schema.PrimaryKey {
	return &schema.PrimaryKey{
		Name:               name,
		ConstrainedColumns: ExtractIdentifiers(constraint),
	}
}
