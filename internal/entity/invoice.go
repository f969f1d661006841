package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-ledger/constants"
)

// Invoice represents an invoice header for data transfer between layers.
// LineItems are owned by the invoice and written with it.
type Invoice struct {
	ID                 uuid.UUID               `json:"id"`
	InvoiceNumber      string                  `json:"invoice_number"`
	InvoiceDate        time.Time               `json:"invoice_date"`
	DeliveryDate       *time.Time              `json:"delivery_date,omitempty"`
	DueDate            *time.Time              `json:"due_date,omitempty"`
	Status             constants.InvoiceStatus `json:"status"`
	Subtotal           decimal.Decimal         `json:"subtotal"`
	TaxAmount          decimal.Decimal         `json:"tax_amount"`
	DiscountAmount     decimal.Decimal         `json:"discount_amount"`
	TotalAmount        decimal.Decimal         `json:"total_amount"`
	Currency           string                  `json:"currency"`
	CurrencySymbol     *string                 `json:"currency_symbol,omitempty"`
	DocumentType       *string                 `json:"document_type,omitempty"`
	Notes              *string                 `json:"notes,omitempty"`
	PaymentTerms       *string                 `json:"payment_terms,omitempty"`
	NetDays            *int                    `json:"net_days,omitempty"`
	DiscountPercentage *float64                `json:"discount_percentage,omitempty"`
	DiscountDays       *int                    `json:"discount_days,omitempty"`
	DiscountDueDate    *time.Time              `json:"discount_due_date,omitempty"`
	DiscountedTotal    *float64                `json:"discounted_total,omitempty"`
	VendorID           uuid.UUID               `json:"vendor_id"`
	CustomerID         uuid.UUID               `json:"customer_id"`
	LineItems          []*LineItem             `json:"line_items,omitempty"`
}

// LineItem represents one invoice line.
type LineItem struct {
	ID           uuid.UUID       `json:"id"`
	InvoiceID    uuid.UUID       `json:"invoice_id"`
	SrNo         *int            `json:"sr_no,omitempty"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Amount       decimal.Decimal `json:"amount"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Sachkonto    *string         `json:"sachkonto,omitempty"`
	BUSchluessel *string         `json:"bu_schluessel,omitempty"`
}

// Payment is a payment recorded against an invoice by downstream collaborators.
type Payment struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      *string         `json:"method,omitempty"`
	Reference   *string         `json:"reference,omitempty"`
}

// InvoiceRow is a flattened invoice with party names, used for reports.
type InvoiceRow struct {
	ID            uuid.UUID               `json:"id"`
	InvoiceNumber string                  `json:"invoice_number"`
	InvoiceDate   time.Time               `json:"invoice_date"`
	DueDate       *time.Time              `json:"due_date,omitempty"`
	Status        constants.InvoiceStatus `json:"status"`
	Subtotal      decimal.Decimal         `json:"subtotal"`
	TaxAmount     decimal.Decimal         `json:"tax_amount"`
	TotalAmount   decimal.Decimal         `json:"total_amount"`
	Currency      string                  `json:"currency"`
	VendorName    string                  `json:"vendor_name"`
	CustomerName  string                  `json:"customer_name"`
	LineItems     int                     `json:"line_items"`
}
