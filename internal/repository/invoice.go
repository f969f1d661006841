package repository

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/db/migrate"
	"github.com/joseph-ayodele/invoice-ledger/internal/common"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
)

var invoiceColumns = []string{
	"id", "invoice_number", "invoice_date", "delivery_date", "due_date", "status",
	"subtotal", "tax_amount", "discount_amount", "total_amount",
	"currency", "currency_symbol", "document_type", "notes", "payment_terms",
	"net_days", "discount_percentage", "discount_days", "discount_due_date", "discounted_total",
	"created_at", "vendor_id", "customer_id",
}

var lineItemColumns = []string{
	"id", "sr_no", "description", "quantity", "unit_price", "amount", "tax_rate",
	"sachkonto", "bu_schluessel", "invoice_id",
}

var paymentColumns = []string{"id", "amount", "payment_date", "method", "reference", "invoice_id"}

func validateInvoice(inv *entity.Invoice) error {
	return common.NewValidator().
		Field("invoice_number", inv.InvoiceNumber, common.Required).
		Field("currency", inv.Currency, common.Required).
		Field("status", string(inv.Status), common.OneOf(constants.InvoiceStatuses()...)).
		Field("subtotal", inv.Subtotal, common.NonNegative).
		Field("tax_amount", inv.TaxAmount, common.NonNegative).
		Field("discount_amount", inv.DiscountAmount, common.NonNegative).
		Field("total_amount", inv.TotalAmount, common.NonNegative).
		Error()
}

func (s *SQLStore) CreateInvoice(ctx context.Context, inv *entity.Invoice) (uuid.UUID, error) {
	if err := validateInvoice(inv); err != nil {
		return uuid.Nil, err
	}
	if inv.VendorID == uuid.Nil || inv.CustomerID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: invoice %s has no vendor or customer", common.ErrInvalidInput, inv.InvoiceNumber)
	}
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	err := s.insert(ctx, migrate.InvoicesTableName, invoiceColumns, []any{
		inv.ID.String(), inv.InvoiceNumber, inv.InvoiceDate.UTC(), nullable(inv.DeliveryDate), nullable(inv.DueDate), string(inv.Status),
		money(inv.Subtotal), money(inv.TaxAmount), money(inv.DiscountAmount), money(inv.TotalAmount),
		inv.Currency, nullable(inv.CurrencySymbol), nullable(inv.DocumentType), nullable(inv.Notes), nullable(inv.PaymentTerms),
		nullable(inv.NetDays), nullable(inv.DiscountPercentage), nullable(inv.DiscountDays), nullable(inv.DiscountDueDate), nullableMoney(inv.DiscountedTotal),
		s.now().UTC(), inv.VendorID.String(), inv.CustomerID.String(),
	})
	if err != nil {
		s.logger.Error("failed to create invoice", "invoice_number", inv.InvoiceNumber, "error", err)
		return uuid.Nil, err
	}
	return inv.ID, nil
}

func (s *SQLStore) CreateLineItem(ctx context.Context, li *entity.LineItem) (uuid.UUID, error) {
	err := common.NewValidator().
		Field("description", li.Description, common.Required).
		Field("quantity", li.Quantity, common.NonNegative).
		Field("unit_price", li.UnitPrice, common.NonNegative).
		Field("amount", li.Amount, common.NonNegative).
		Error()
	if err != nil {
		return uuid.Nil, err
	}
	if li.InvoiceID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: line item has no invoice", common.ErrInvalidInput)
	}
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	err = s.insert(ctx, migrate.LineItemsTableName, lineItemColumns, []any{
		li.ID.String(), nullable(li.SrNo), li.Description,
		li.Quantity.String(), money(li.UnitPrice), money(li.Amount), li.TaxRate.String(),
		nullable(li.Sachkonto), nullable(li.BUSchluessel), li.InvoiceID.String(),
	})
	if err != nil {
		s.logger.Error("failed to create line item", "invoice_id", li.InvoiceID, "error", err)
		return uuid.Nil, err
	}
	return li.ID, nil
}

// CreatePayment records a payment against an invoice. The seed pipeline never calls it;
// payments are only cleared and counted there.
func (s *SQLStore) CreatePayment(ctx context.Context, p *entity.Payment) (uuid.UUID, error) {
	if err := common.NewValidator().Field("amount", p.Amount, common.NonNegative).Error(); err != nil {
		return uuid.Nil, err
	}
	if p.InvoiceID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: payment has no invoice", common.ErrInvalidInput)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	err := s.insert(ctx, migrate.PaymentsTableName, paymentColumns, []any{
		p.ID.String(), money(p.Amount), p.PaymentDate.UTC(), nullable(p.Method), nullable(p.Reference), p.InvoiceID.String(),
	})
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}

// ListInvoices returns every invoice joined with its parties, ordered by invoice date.
func (s *SQLStore) ListInvoices(ctx context.Context) ([]*entity.InvoiceRow, error) {
	b := s.builder()
	inv := b.Table(migrate.InvoicesTableName).As("i")
	ven := b.Table(migrate.VendorsTableName).As("v")
	cus := b.Table(migrate.CustomersTableName).As("c")
	items := b.Select(entsql.As(entsql.Count("*"), "n"), "invoice_id").
		From(b.Table(migrate.LineItemsTableName)).
		GroupBy("invoice_id").
		As("li")

	query, args := b.Select(
		inv.C("id"), inv.C("invoice_number"), inv.C("invoice_date"), inv.C("due_date"), inv.C("status"),
		inv.C("subtotal"), inv.C("tax_amount"), inv.C("total_amount"), inv.C("currency"),
		ven.C("name"), cus.C("name"), "COALESCE("+items.C("n")+", 0)",
	).
		From(inv).
		Join(ven).On(inv.C("vendor_id"), ven.C("id")).
		Join(cus).On(inv.C("customer_id"), cus.C("id")).
		LeftJoin(items).On(inv.C("id"), items.C("invoice_id")).
		OrderBy(inv.C("invoice_date"), inv.C("invoice_number")).
		Query()

	rows := &entsql.Rows{}
	if err := s.conn.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("%w: list invoices: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []*entity.InvoiceRow
	for rows.Next() {
		var (
			r       entity.InvoiceRow
			id      string
			status  string
			invDate timeValue
			dueDate timeValue
		)
		if err := rows.Scan(&id, &r.InvoiceNumber, &invDate, &dueDate, &status,
			&r.Subtotal, &r.TaxAmount, &r.TotalAmount, &r.Currency,
			&r.VendorName, &r.CustomerName, &r.LineItems); err != nil {
			return nil, fmt.Errorf("%w: scan invoice: %v", common.ErrDatabase, err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("%w: invoice id %q: %v", common.ErrDatabase, id, err)
		}
		r.ID = parsed
		r.Status = constants.InvoiceStatus(status)
		if invDate.Valid {
			r.InvoiceDate = invDate.Time
		}
		if dueDate.Valid {
			t := dueDate.Time
			r.DueDate = &t
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list invoices: %v", common.ErrDatabase, err)
	}
	return out, nil
}
