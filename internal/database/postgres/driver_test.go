package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakereflect/lakereflect/internal/schema"
)

func TestGroupForeignKeys(t *testing.T) {
	t.Run("empty input yields empty slice", func(t *testing.T) {
		fks := groupForeignKeys(nil, "sales")
		require.NotNil(t, fks)
		assert.Empty(t, fks)
	})

	t.Run("single column constraint", func(t *testing.T) {
		rows := []fkRow{
			{Name: "fk_orders_customer", Column: "customer_id", ReferredSchema: "sales", ReferredTable: "customers", ReferredColumn: "id"},
		}

		fks := groupForeignKeys(rows, "sales")
		require.Len(t, fks, 1)
		assert.Equal(t, "fk_orders_customer", fks[0].Name)
		assert.Equal(t, []string{"customer_id"}, fks[0].ConstrainedColumns)
		assert.Equal(t, "customers", fks[0].ReferredTable)
		assert.Equal(t, []string{"id"}, fks[0].ReferredColumns)
		require.NotNil(t, fks[0].ReferredSchema)
		assert.Equal(t, "sales", *fks[0].ReferredSchema)
	})

	t.Run("composite constraint keeps columns paired by position", func(t *testing.T) {
		rows := []fkRow{
			{Name: "fk_lines_order", Column: "order_id", ReferredSchema: "sales", ReferredTable: "orders", ReferredColumn: "id"},
			{Name: "fk_lines_order", Column: "placed_at", ReferredSchema: "sales", ReferredTable: "orders", ReferredColumn: "created_at"},
		}

		fks := groupForeignKeys(rows, "sales")
		require.Len(t, fks, 1)
		assert.Equal(t, []string{"order_id", "placed_at"}, fks[0].ConstrainedColumns)
		assert.Equal(t, []string{"id", "created_at"}, fks[0].ReferredColumns)
		// Each constrained column maps to exactly one referred column.
		assert.Len(t, fks[0].ConstrainedColumns, len(fks[0].ReferredColumns))
	})

	t.Run("groups multiple constraints in row order", func(t *testing.T) {
		rows := []fkRow{
			{Name: "fk_lines_order", Column: "order_id", ReferredSchema: "sales", ReferredTable: "orders", ReferredColumn: "id"},
			{Name: "fk_lines_order", Column: "placed_at", ReferredSchema: "sales", ReferredTable: "orders", ReferredColumn: "created_at"},
			{Name: "fk_lines_product", Column: "product_id", ReferredSchema: "catalog", ReferredTable: "products", ReferredColumn: "id"},
		}

		fks := groupForeignKeys(rows, "sales")
		require.Len(t, fks, 2)

		assert.Equal(t, "fk_lines_order", fks[0].Name)
		assert.Equal(t, []string{"order_id", "placed_at"}, fks[0].ConstrainedColumns)
		assert.Equal(t, []string{"id", "created_at"}, fks[0].ReferredColumns)

		assert.Equal(t, "fk_lines_product", fks[1].Name)
		assert.Equal(t, []string{"product_id"}, fks[1].ConstrainedColumns)
		assert.Equal(t, []string{"id"}, fks[1].ReferredColumns)
		require.NotNil(t, fks[1].ReferredSchema)
		assert.Equal(t, "catalog", *fks[1].ReferredSchema)
	})

	t.Run("empty schema name suppresses referred schema", func(t *testing.T) {
		rows := []fkRow{
			{Name: "fk_orders_customer", Column: "customer_id", ReferredSchema: "sales", ReferredTable: "customers", ReferredColumn: "id"},
		}

		fks := groupForeignKeys(rows, "")
		require.Len(t, fks, 1)
		assert.Nil(t, fks[0].ReferredSchema)
	})

	t.Run("constrained and referred columns never cross-multiply", func(t *testing.T) {
		// A two-column constraint arrives as exactly two rows, one per
		// ordinal position. The grouped descriptor must keep that width.
		rows := []fkRow{
			{Name: "fk_wide", Column: "a", ReferredSchema: "s", ReferredTable: "t", ReferredColumn: "x"},
			{Name: "fk_wide", Column: "b", ReferredSchema: "s", ReferredTable: "t", ReferredColumn: "y"},
		}

		fks := groupForeignKeys(rows, "s")
		require.Len(t, fks, 1)
		want := schema.ForeignKey{
			Name:               "fk_wide",
			ConstrainedColumns: []string{"a", "b"},
			ReferredSchema:     fks[0].ReferredSchema,
			ReferredTable:      "t",
			ReferredColumns:    []string{"x", "y"},
		}
		assert.Equal(t, want, fks[0])
	})
}
