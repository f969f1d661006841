package migrate

import (
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/joseph-ayodele/invoice-ledger/constants"
)

// Table names.
const (
	VendorsTableName   = "vendors"
	CustomersTableName = "customers"
	InvoicesTableName  = "invoices"
	LineItemsTableName = "line_items"
	PaymentsTableName  = "payments"
)

var (
	// Postgres numeric precision: amounts up to 10^14 with 4 decimals, rates up to 99999.9999.
	money = map[string]string{dialect.Postgres: "numeric(18,4)"}
	rate  = map[string]string{dialect.Postgres: "numeric(9,4)"}
	text  = map[string]string{dialect.Postgres: "text"}
	date  = map[string]string{dialect.Postgres: "date"}

	// VendorsColumns holds the columns for the "vendors" table.
	VendorsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "name", Type: field.TypeString},
		{Name: "party_number", Type: field.TypeString, Nullable: true},
		{Name: "tax_id", Type: field.TypeString, Nullable: true},
		{Name: "email", Type: field.TypeString, Nullable: true},
		{Name: "phone", Type: field.TypeString, Nullable: true},
		{Name: "address", Type: field.TypeString, Nullable: true, SchemaType: text},
		{Name: "city", Type: field.TypeString, Nullable: true},
		{Name: "state", Type: field.TypeString, Nullable: true},
		{Name: "country", Type: field.TypeString, Nullable: true},
		{Name: "postal_code", Type: field.TypeString, Nullable: true},
		{Name: "bank_account_number", Type: field.TypeString, Nullable: true},
		{Name: "bic", Type: field.TypeString, Nullable: true},
		{Name: "account_name", Type: field.TypeString, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	// VendorsTable holds the schema information for the "vendors" table.
	VendorsTable = &schema.Table{
		Name:       VendorsTableName,
		Columns:    VendorsColumns,
		PrimaryKey: []*schema.Column{VendorsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "vendor_tax_id", Columns: []*schema.Column{VendorsColumns[3]}},
			{Name: "vendor_name", Columns: []*schema.Column{VendorsColumns[1]}},
		},
	}

	// CustomersColumns holds the columns for the "customers" table.
	CustomersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "name", Type: field.TypeString},
		{Name: "tax_id", Type: field.TypeString, Nullable: true},
		{Name: "email", Type: field.TypeString, Nullable: true},
		{Name: "phone", Type: field.TypeString, Nullable: true},
		{Name: "address", Type: field.TypeString, Nullable: true, SchemaType: text},
		{Name: "city", Type: field.TypeString, Nullable: true},
		{Name: "state", Type: field.TypeString, Nullable: true},
		{Name: "country", Type: field.TypeString, Nullable: true},
		{Name: "postal_code", Type: field.TypeString, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	// CustomersTable holds the schema information for the "customers" table.
	CustomersTable = &schema.Table{
		Name:       CustomersTableName,
		Columns:    CustomersColumns,
		PrimaryKey: []*schema.Column{CustomersColumns[0]},
		Indexes: []*schema.Index{
			{Name: "customer_tax_id", Columns: []*schema.Column{CustomersColumns[2]}},
			{Name: "customer_name", Columns: []*schema.Column{CustomersColumns[1]}},
		},
	}

	// InvoicesColumns holds the columns for the "invoices" table.
	InvoicesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "invoice_number", Type: field.TypeString},
		{Name: "invoice_date", Type: field.TypeTime},
		{Name: "delivery_date", Type: field.TypeTime, Nullable: true},
		{Name: "due_date", Type: field.TypeTime, Nullable: true},
		{Name: "status", Type: field.TypeEnum, Enums: constants.InvoiceStatuses(), Default: string(constants.InvoiceStatusPending)},
		{Name: "subtotal", Type: field.TypeFloat64, SchemaType: money},
		{Name: "tax_amount", Type: field.TypeFloat64, SchemaType: money},
		{Name: "discount_amount", Type: field.TypeFloat64, SchemaType: money},
		{Name: "total_amount", Type: field.TypeFloat64, SchemaType: money},
		{Name: "currency", Type: field.TypeString},
		{Name: "currency_symbol", Type: field.TypeString, Nullable: true},
		{Name: "document_type", Type: field.TypeString, Nullable: true},
		{Name: "notes", Type: field.TypeString, Nullable: true, SchemaType: text},
		{Name: "payment_terms", Type: field.TypeString, Nullable: true, SchemaType: text},
		{Name: "net_days", Type: field.TypeInt, Nullable: true},
		{Name: "discount_percentage", Type: field.TypeFloat64, Nullable: true},
		{Name: "discount_days", Type: field.TypeInt, Nullable: true},
		{Name: "discount_due_date", Type: field.TypeTime, Nullable: true},
		{Name: "discounted_total", Type: field.TypeFloat64, Nullable: true, SchemaType: money},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "vendor_id", Type: field.TypeUUID},
		{Name: "customer_id", Type: field.TypeUUID},
	}
	// InvoicesTable holds the schema information for the "invoices" table.
	InvoicesTable = &schema.Table{
		Name:       InvoicesTableName,
		Columns:    InvoicesColumns,
		PrimaryKey: []*schema.Column{InvoicesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "invoices_vendors_invoices",
				Columns:    []*schema.Column{InvoicesColumns[21]},
				RefColumns: []*schema.Column{VendorsColumns[0]},
				OnDelete:   schema.NoAction,
			},
			{
				Symbol:     "invoices_customers_invoices",
				Columns:    []*schema.Column{InvoicesColumns[22]},
				RefColumns: []*schema.Column{CustomersColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{Name: "invoice_vendor_id", Columns: []*schema.Column{InvoicesColumns[21]}},
			{Name: "invoice_customer_id", Columns: []*schema.Column{InvoicesColumns[22]}},
			{Name: "invoice_invoice_date", Columns: []*schema.Column{InvoicesColumns[2]}},
			{Name: "invoice_status", Columns: []*schema.Column{InvoicesColumns[5]}},
		},
	}

	// LineItemsColumns holds the columns for the "line_items" table.
	LineItemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "sr_no", Type: field.TypeInt, Nullable: true},
		{Name: "description", Type: field.TypeString, SchemaType: text},
		{Name: "quantity", Type: field.TypeFloat64, SchemaType: money},
		{Name: "unit_price", Type: field.TypeFloat64, SchemaType: money},
		{Name: "amount", Type: field.TypeFloat64, SchemaType: money},
		{Name: "tax_rate", Type: field.TypeFloat64, SchemaType: rate},
		{Name: "sachkonto", Type: field.TypeString, Nullable: true},
		{Name: "bu_schluessel", Type: field.TypeString, Nullable: true},
		{Name: "invoice_id", Type: field.TypeUUID},
	}
	// LineItemsTable holds the schema information for the "line_items" table.
	LineItemsTable = &schema.Table{
		Name:       LineItemsTableName,
		Columns:    LineItemsColumns,
		PrimaryKey: []*schema.Column{LineItemsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "line_items_invoices_line_items",
				Columns:    []*schema.Column{LineItemsColumns[9]},
				RefColumns: []*schema.Column{InvoicesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "lineitem_invoice_id", Columns: []*schema.Column{LineItemsColumns[9]}},
		},
	}

	// PaymentsColumns holds the columns for the "payments" table.
	PaymentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "amount", Type: field.TypeFloat64, SchemaType: money},
		{Name: "payment_date", Type: field.TypeTime, SchemaType: date},
		{Name: "method", Type: field.TypeString, Nullable: true},
		{Name: "reference", Type: field.TypeString, Nullable: true},
		{Name: "invoice_id", Type: field.TypeUUID},
	}
	// PaymentsTable holds the schema information for the "payments" table.
	PaymentsTable = &schema.Table{
		Name:       PaymentsTableName,
		Columns:    PaymentsColumns,
		PrimaryKey: []*schema.Column{PaymentsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "payments_invoices_payments",
				Columns:    []*schema.Column{PaymentsColumns[5]},
				RefColumns: []*schema.Column{InvoicesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		VendorsTable,
		CustomersTable,
		InvoicesTable,
		LineItemsTable,
		PaymentsTable,
	}
)

func init() {
	InvoicesTable.ForeignKeys[0].RefTable = VendorsTable
	InvoicesTable.ForeignKeys[1].RefTable = CustomersTable
	LineItemsTable.ForeignKeys[0].RefTable = InvoicesTable
	PaymentsTable.ForeignKeys[0].RefTable = InvoicesTable
}

// TableFor maps an entity kind to its table name.
func TableFor(kind constants.EntityKind) (string, bool) {
	switch kind {
	case constants.EntityVendor:
		return VendorsTableName, true
	case constants.EntityCustomer:
		return CustomersTableName, true
	case constants.EntityInvoice:
		return InvoicesTableName, true
	case constants.EntityLineItem:
		return LineItemsTableName, true
	case constants.EntityPayment:
		return PaymentsTableName, true
	default:
		return "", false
	}
}
