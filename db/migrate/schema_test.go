package migrate

import (
	"testing"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-ledger/constants"
)

func TestTableFor(t *testing.T) {
	seen := map[string]bool{}
	for _, kind := range constants.ClearOrder {
		table, ok := TableFor(kind)
		require.True(t, ok, kind)
		seen[table] = true
	}
	assert.Len(t, seen, len(Tables))

	_, ok := TableFor("unknown")
	assert.False(t, ok)
}

func TestForeignKeysResolved(t *testing.T) {
	for _, table := range Tables {
		for _, fk := range table.ForeignKeys {
			require.NotNil(t, fk.RefTable, fk.Symbol)
			assert.Equal(t, fk.RefTable.PrimaryKey[0], fk.RefColumns[0], fk.Symbol)
		}
	}
	assert.Equal(t, "vendor_id", InvoicesTable.ForeignKeys[0].Columns[0].Name)
	assert.Equal(t, "customer_id", InvoicesTable.ForeignKeys[1].Columns[0].Name)
	assert.Equal(t, "invoice_id", LineItemsTable.ForeignKeys[0].Columns[0].Name)
	assert.Equal(t, "invoice_id", PaymentsTable.ForeignKeys[0].Columns[0].Name)
}

func TestNumericColumnsKeepFourDecimals(t *testing.T) {
	columns := map[string]*schema.Column{}
	for _, c := range InvoicesColumns {
		columns["invoices."+c.Name] = c
	}
	for _, c := range LineItemsColumns {
		columns["line_items."+c.Name] = c
	}
	for _, c := range PaymentsColumns {
		columns["payments."+c.Name] = c
	}

	for _, name := range []string{
		"invoices.subtotal", "invoices.tax_amount", "invoices.discount_amount", "invoices.total_amount",
		"invoices.discounted_total", "line_items.quantity", "line_items.unit_price", "line_items.amount",
		"payments.amount",
	} {
		require.Contains(t, columns, name)
		assert.Equal(t, "numeric(18,4)", columns[name].SchemaType[dialect.Postgres], name)
	}
	assert.Equal(t, "numeric(9,4)", columns["line_items.tax_rate"].SchemaType[dialect.Postgres])
}
