package describe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakereflect/lakereflect/internal/errs"
	"github.com/lakereflect/lakereflect/internal/schema"
)

const fkConstraint = "FOREIGN KEY (`pname`, `pid`, `pattr`) REFERENCES `main`.`sales`.`tb1` (`name`, `id`, `attr`)"

func TestExtractIdentifiers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple group",
			input: "(`a`, `b`, `c`)",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "no identifiers",
			input: "PRIMARY KEY ()",
			want:  []string{},
		},
		{
			name:  "empty string",
			input: "",
			want:  []string{},
		},
		{
			name:  "unquoted words are not identifiers",
			input: "FOREIGN KEY REFERENCES main.sales.tb1",
			want:  []string{},
		},
		{
			name:  "duplicates preserved in order",
			input: "(`id`, `id`, `other_id`)",
			want:  []string{"id", "id", "other_id"},
		},
		{
			name:  "full constraint line",
			input: fkConstraint,
			want:  []string{"pname", "pid", "pattr", "main", "sales", "tb1", "name", "id", "attr"},
		},
		{
			name:  "unterminated backtick ignored",
			input: "(`a`, `b)",
			want:  []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractIdentifiers(tt.input))
		})
	}
}

func TestExtractIdentifierGroups(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "two groups in order",
			input: fkConstraint,
			want:  []string{"(`pname`, `pid`, `pattr`)", "(`name`, `id`, `attr`)"},
		},
		{
			name:  "single group",
			input: "PRIMARY KEY (`id`, `name`)",
			want:  []string{"(`id`, `name`)"},
		},
		{
			name:  "empty group",
			input: "()",
			want:  []string{"()"},
		},
		{
			name:  "no groups",
			input: "no parens here",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractIdentifierGroups(tt.input))
		})
	}
}

func TestExtractQualifiedName(t *testing.T) {
	t.Run("three level reference", func(t *testing.T) {
		qn, err := ExtractQualifiedName(fkConstraint)
		require.NoError(t, err)
		require.NotNil(t, qn)
		assert.Equal(t, "main", qn.Catalog)
		assert.Equal(t, "sales", qn.Schema)
		assert.Equal(t, "tb1", qn.Table)
	})

	t.Run("no references clause is absence not error", func(t *testing.T) {
		qn, err := ExtractQualifiedName("PRIMARY KEY (`id`)")
		require.NoError(t, err)
		assert.Nil(t, qn)
	})

	t.Run("first match wins", func(t *testing.T) {
		line := "REFERENCES `a`.`b`.`c` (`x`) REFERENCES `d`.`e`.`f` (`y`)"
		qn, err := ExtractQualifiedName(line)
		require.NoError(t, err)
		require.NotNil(t, qn)
		assert.Equal(t, "a", qn.Catalog)
	})

	t.Run("two part reference is malformed", func(t *testing.T) {
		qn, err := ExtractQualifiedName("FOREIGN KEY (`a`) REFERENCES `sch`.`tbl` (`b`)")
		assert.Nil(t, qn)
		require.Error(t, err)
		assert.True(t, errs.IsInvalidInput(err))
	})
}

func TestParseForeignKey(t *testing.T) {
	t.Run("round trip with ambient schema", func(t *testing.T) {
		fk, err := ParseForeignKey("fk1", "FOREIGN KEY (`p`,`q`) REFERENCES `cat`.`sch`.`tbl` (`x`,`y`)", "sch")
		require.NoError(t, err)

		require.NotNil(t, fk.ReferredSchema)
		assert.Equal(t, &schema.ForeignKey{
			Name:               "fk1",
			ConstrainedColumns: []string{"p", "q"},
			ReferredSchema:     fk.ReferredSchema,
			ReferredTable:      "tbl",
			ReferredColumns:    []string{"x", "y"},
		}, fk)
		assert.Equal(t, "sch", *fk.ReferredSchema)
	})

	t.Run("no ambient schema nils referred schema", func(t *testing.T) {
		fk, err := ParseForeignKey("fk1", "FOREIGN KEY (`p`,`q`) REFERENCES `cat`.`sch`.`tbl` (`x`,`y`)", "")
		require.NoError(t, err)
		assert.Nil(t, fk.ReferredSchema)
		assert.Equal(t, "tbl", fk.ReferredTable)
	})

	t.Run("referred schema comes from the constraint text", func(t *testing.T) {
		// The ambient schema only decides whether a schema is reported,
		// not which one.
		fk, err := ParseForeignKey("fk1", fkConstraint, "somewhere_else")
		require.NoError(t, err)
		require.NotNil(t, fk.ReferredSchema)
		assert.Equal(t, "sales", *fk.ReferredSchema)
	})

	t.Run("line without references clause fails", func(t *testing.T) {
		fk, err := ParseForeignKey("fk1", "PRIMARY KEY (`id`)", "sch")
		assert.Nil(t, fk)
		require.Error(t, err)
		assert.True(t, errs.IsInvalidInput(err))
	})

	t.Run("missing referred column list fails", func(t *testing.T) {
		// The REFERENCES regex requires a trailing paren, so dropping the
		// referred list also drops the qualified name.
		fk, err := ParseForeignKey("fk1", "FOREIGN KEY (`a`) REFERENCES `c`.`s`.`t`", "s")
		assert.Nil(t, fk)
		require.Error(t, err)
		assert.True(t, errs.IsInvalidInput(err))
	})

	t.Run("multi column ordering preserved", func(t *testing.T) {
		fk, err := ParseForeignKey("fk_parent", fkConstraint, "sales")
		require.NoError(t, err)
		assert.Equal(t, []string{"pname", "pid", "pattr"}, fk.ConstrainedColumns)
		assert.Equal(t, []string{"name", "id", "attr"}, fk.ReferredColumns)
	})
}

func TestParsePrimaryKey(t *testing.T) {
	tests := []struct {
		name       string
		pkName     string
		constraint string
		want       *schema.PrimaryKey
	}{
		{
			name:       "two columns",
			pkName:     "pk1",
			constraint: "PRIMARY KEY (`id`, `name`)",
			want:       &schema.PrimaryKey{Name: "pk1", ConstrainedColumns: []string{"id", "name"}},
		},
		{
			name:       "three columns ordered",
			pkName:     "pk_users",
			constraint: "PRIMARY KEY (`id`, `name`, `email_address`)",
			want:       &schema.PrimaryKey{Name: "pk_users", ConstrainedColumns: []string{"id", "name", "email_address"}},
		},
		{
			name:       "empty constraint is permitted",
			pkName:     "pk_empty",
			constraint: "PRIMARY KEY ()",
			want:       &schema.PrimaryKey{Name: "pk_empty", ConstrainedColumns: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrimaryKey(tt.pkName, tt.constraint))
		})
	}
}

func TestFilterRows(t *testing.T) {
	rows := []Row{
		{ColName: "c1", DataType: "FOREIGN KEY (`a`) REFERENCES `m`.`s`.`t` (`b`)"},
		{ColName: "c2", DataType: "int"},
		{ColName: "c3", DataType: "string"},
		{ColName: "pk", DataType: "PRIMARY KEY (`id`)"},
	}

	t.Run("foreign key rows", func(t *testing.T) {
		got := ForeignKeyRows(rows)
		require.Len(t, got, 1)
		assert.Equal(t, "c1", got[0].ColName)
	})

	t.Run("primary key rows", func(t *testing.T) {
		got := PrimaryKeyRows(rows)
		require.Len(t, got, 1)
		assert.Equal(t, "pk", got[0].ColName)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		got := FilterRows(rows, "UNIQUE")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("match is case sensitive", func(t *testing.T) {
		assert.Empty(t, FilterRows(rows, "foreign key"))
	})

	t.Run("order preserved on multiple matches", func(t *testing.T) {
		multi := append(rows, Row{ColName: "c5", DataType: "FOREIGN KEY (`x`) REFERENCES `m`.`s`.`u` (`y`)"})
		got := ForeignKeyRows(multi)
		require.Len(t, got, 2)
		assert.Equal(t, "c1", got[0].ColName)
		assert.Equal(t, "c5", got[1].ColName)
	})
}

func TestIsTableNotFound(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{
			name:    "legacy runtime spelling",
			message: "[42P01] Table or view not found: main.sales.users",
			want:    true,
		},
		{
			name:    "current runtime spelling",
			message: "TABLE_OR_VIEW_NOT_FOUND: the table `users` cannot be found",
			want:    true,
		},
		{
			name:    "unrelated error",
			message: "Syntax error at or near 'SELEC'",
			want:    false,
		},
		{
			name:    "empty message",
			message: "",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTableNotFound(tt.message))
		})
	}
}

func TestParsingIsIdempotent(t *testing.T) {
	first, err := ParseForeignKey("fk1", fkConstraint, "sales")
	require.NoError(t, err)
	second, err := ParseForeignKey("fk1", fkConstraint, "sales")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t,
		ParsePrimaryKey("pk1", "PRIMARY KEY (`id`, `name`)"),
		ParsePrimaryKey("pk1", "PRIMARY KEY (`id`, `name`)"))
}

func BenchmarkExtractIdentifiers(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ExtractIdentifiers(fkConstraint)
	}
}

func BenchmarkParseForeignKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseForeignKey("fk1", fkConstraint, "sales")
	}
}
