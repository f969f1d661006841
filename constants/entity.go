package constants

// EntityKind names one of the tables the pipeline clears and counts.
type EntityKind string

const (
	EntityVendor   EntityKind = "vendor"
	EntityCustomer EntityKind = "customer"
	EntityInvoice  EntityKind = "invoice"
	EntityLineItem EntityKind = "line_item"
	EntityPayment  EntityKind = "payment"
)

// ClearOrder lists entity kinds children first, so deleting in this order never violates a foreign key.
var ClearOrder = []EntityKind{
	EntityPayment,
	EntityLineItem,
	EntityInvoice,
	EntityVendor,
	EntityCustomer,
}

// SummaryOrder is the order kinds are reported in run summaries.
var SummaryOrder = []EntityKind{
	EntityVendor,
	EntityCustomer,
	EntityInvoice,
	EntityLineItem,
	EntityPayment,
}

// Label returns the human readable plural used in summaries.
func (k EntityKind) Label() string {
	switch k {
	case EntityVendor:
		return "Vendors"
	case EntityCustomer:
		return "Customers"
	case EntityInvoice:
		return "Invoices"
	case EntityLineItem:
		return "Line Items"
	case EntityPayment:
		return "Payments"
	default:
		return string(k)
	}
}
