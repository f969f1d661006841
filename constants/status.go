package constants

import "strings"

// InvoiceStatus is the canonical status stored on invoices.status.
type InvoiceStatus string

// Stable values (store these exact strings in DB).
const (
	InvoiceStatusPending       InvoiceStatus = "PENDING"
	InvoiceStatusSent          InvoiceStatus = "SENT"
	InvoiceStatusPaid          InvoiceStatus = "PAID"           // set by reconciliation, never at ingestion
	InvoiceStatusOverdue       InvoiceStatus = "OVERDUE"        // set by reconciliation, never at ingestion
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID" // set by reconciliation, never at ingestion
)

var allInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusPending,
	InvoiceStatusSent,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusPartiallyPaid,
}

// InvoiceStatuses returns every status value as strings, e.g. for enum columns.
func InvoiceStatuses() []string {
	result := make([]string, len(allInvoiceStatuses))
	for i, s := range allInvoiceStatuses {
		result[i] = string(s)
	}
	return result
}

// DocumentStatusProcessed is the source-side processing status that makes an invoice eligible for SENT.
const DocumentStatusProcessed = "processed"

// IsProcessed compares a document processing status case-insensitively.
func IsProcessed(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), DocumentStatusProcessed)
}
