// Package invoices builds invoice records and their line items from extracted documents.
package invoices

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
	"github.com/joseph-ayodele/invoice-ledger/internal/extract"
	"github.com/joseph-ayodele/invoice-ledger/internal/normalize"
	"github.com/joseph-ayodele/invoice-ledger/internal/utils"
)

// Store is the subset of the entity store an invoice is written to.
type Store interface {
	CreateInvoice(ctx context.Context, inv *entity.Invoice) (uuid.UUID, error)
	CreateLineItem(ctx context.Context, li *entity.LineItem) (uuid.UUID, error)
}

// Assembler derives invoices from documents using the field fallback rules.
type Assembler struct {
	currency string
	runStart time.Time
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithClock replaces the processing-time clock.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// WithDefaultCurrency sets the currency used when a document has none.
func WithDefaultCurrency(code string) Option {
	return func(a *Assembler) {
		if code = strings.TrimSpace(code); code != "" {
			a.currency = code
		}
	}
}

// NewAssembler returns an Assembler. The run start time seeds synthesized invoice numbers
// for documents without an id.
func NewAssembler(logger *slog.Logger, opts ...Option) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Assembler{
		currency: constants.DefaultCurrency,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.runStart = a.now()
	return a
}

// Assemble builds the invoice for one document. docIndex is the document's position in the run.
// It performs no writes and never fails: every absent field resolves through its fallback chain.
func (a *Assembler) Assemble(doc *extract.Document, env *extract.LLMData, docIndex int, vendorID, customerID uuid.UUID) *entity.Invoice {
	ib := extract.Unwrap(env.Invoice, extract.InvoiceBlock{})
	sb := extract.Unwrap(env.Summary, extract.SummaryBlock{})
	pb := extract.Unwrap(env.Payment, extract.PaymentBlock{})

	deliveryDate := normalize.ParseDate(ib.DeliveryDate)
	now := a.now().UTC()
	invoiceDate := normalize.FirstDate(
		normalize.ParseDate(ib.InvoiceDate),
		normalize.ParseDate(doc.CreatedAt),
		&now,
	)

	symbol := strings.TrimSpace(extract.Unwrap(sb.CurrencySymbol, ""))
	currency := utils.FirstNonEmpty(symbol, a.currency)

	inv := &entity.Invoice{
		InvoiceNumber:      a.invoiceNumber(doc, ib, docIndex),
		InvoiceDate:        *invoiceDate,
		DeliveryDate:       deliveryDate,
		DueDate:            normalize.FirstDate(normalize.ParseDate(pb.DueDate), deliveryDate),
		Status:             DeriveStatus(string(doc.Status), bool(doc.IsValidatedByHuman)),
		Subtotal:           amount(sb.SubTotal, decimal.Zero),
		TaxAmount:          amount(sb.TotalTax, decimal.Zero),
		DiscountAmount:     decimal.Zero,
		TotalAmount:        amount(sb.InvoiceTotal, decimal.Zero),
		Currency:           currency,
		CurrencySymbol:     utils.NilIfEmpty(symbol),
		DocumentType:       utils.NilIfEmpty(extract.Unwrap(sb.DocumentType, "")),
		PaymentTerms:       utils.NilIfEmpty(extract.Unwrap(pb.PaymentTerms, "")),
		NetDays:            nonZero(pb.NetDays),
		DiscountPercentage: parseFloat(pb.DiscountPercentage),
		DiscountDays:       nonZero(pb.DiscountDays),
		DiscountDueDate:    normalize.ParseDate(pb.DiscountDueDate),
		DiscountedTotal:    parseFloat(pb.DiscountedTotal),
		VendorID:           vendorID,
		CustomerID:         customerID,
	}
	if doc.Metadata != nil {
		inv.Notes = utils.NilIfEmpty(string(doc.Metadata.Description))
	}

	items := extract.Unwrap(env.LineItems, extract.LineItemsBlock{})
	for _, item := range extract.Unwrap(items.Items, nil) {
		if !item.IsObject() {
			a.logger.Debug("invoices.line_item.dropped", "invoice_number", inv.InvoiceNumber, "reason", "not an object")
			continue
		}
		inv.LineItems = append(inv.LineItems, assembleLineItem(item))
	}
	return inv
}

// Save writes the invoice and then its line items in order. Callers wanting all-or-nothing
// semantics pass a transaction-scoped store.
func (a *Assembler) Save(ctx context.Context, store Store, inv *entity.Invoice) error {
	id, err := store.CreateInvoice(ctx, inv)
	if err != nil {
		return fmt.Errorf("create invoice %s: %w", inv.InvoiceNumber, err)
	}
	for i, li := range inv.LineItems {
		li.InvoiceID = id
		if _, err := store.CreateLineItem(ctx, li); err != nil {
			return fmt.Errorf("create line item %d of invoice %s: %w", i+1, inv.InvoiceNumber, err)
		}
	}
	a.logger.Debug("invoices.created",
		"invoice_number", inv.InvoiceNumber,
		"total", inv.TotalAmount.StringFixed(2),
		"currency", inv.Currency,
		"line_items", len(inv.LineItems))
	return nil
}

// DeriveStatus maps a document's processing state to an invoice status.
// Only PENDING and SENT are produced here.
func DeriveStatus(processingStatus string, validatedByHuman bool) constants.InvoiceStatus {
	if constants.IsProcessed(processingStatus) && validatedByHuman {
		return constants.InvoiceStatusSent
	}
	return constants.InvoiceStatusPending
}

func (a *Assembler) invoiceNumber(doc *extract.Document, ib extract.InvoiceBlock, docIndex int) string {
	if n := strings.TrimSpace(extract.Unwrap(ib.InvoiceID, "")); n != "" {
		return n
	}
	seed := doc.ID.String()
	if seed == "" {
		seed = strconv.FormatInt(a.runStart.UnixMilli(), 10)
	}
	return fmt.Sprintf("%s-%s-%d", constants.InvoiceNumberPrefix, seed, docIndex)
}

func assembleLineItem(b extract.LineItemBlock) *entity.LineItem {
	return &entity.LineItem{
		SrNo:         extract.Ptr(b.SrNo),
		Description:  utils.FirstNonEmpty(extract.Unwrap(b.Description, ""), constants.DefaultLineDescription),
		Quantity:     amount(b.Quantity, decimal.NewFromInt(1)),
		UnitPrice:    amount(b.UnitPrice, decimal.Zero),
		Amount:       amount(b.TotalPrice, decimal.Zero),
		TaxRate:      extract.Unwrap(b.TaxRate, decimal.Zero),
		Sachkonto:    utils.NilIfEmpty(extract.Unwrap(b.Sachkonto, "")),
		BUSchluessel: utils.NilIfEmpty(extract.Unwrap(b.BUSchluessel, "")),
	}
}

// amount unwraps a monetary field and drops its sign.
func amount(f extract.Field[decimal.Decimal], def decimal.Decimal) decimal.Decimal {
	return extract.Unwrap(f, def).Abs()
}

func nonZero(f extract.Field[int]) *int {
	if v, ok := f.Get(); ok && v != 0 {
		return &v
	}
	return nil
}

func parseFloat(f extract.Field[string]) *float64 {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(extract.Unwrap(f, "")), "%"))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &v
}
