package invoices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
	"github.com/joseph-ayodele/invoice-ledger/internal/extract"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestAssembler() *Assembler {
	return NewAssembler(nil, WithClock(func() time.Time { return fixedNow }))
}

func parse(t *testing.T, raw string) (*extract.Document, *extract.LLMData) {
	t.Helper()
	doc, err := extract.ParseDocument([]byte(raw))
	require.NoError(t, err)
	env := doc.Envelope()
	require.NotNil(t, env)
	return doc, env
}

func TestAssemble_FullDocument(t *testing.T) {
	doc, env := parse(t, `{
		"_id": {"$oid": "65a1"},
		"status": "Processed",
		"isValidatedByHuman": true,
		"metadata": {"description": "March delivery"},
		"extractedData": {"llmData": {
			"invoice": {"value": {
				"invoiceId": {"value": "RE-2024-001"},
				"invoiceDate": {"value": "2024-01-15"},
				"deliveryDate": {"value": "2024-01-10"}
			}},
			"summary": {"value": {
				"subTotal": {"value": -100.00},
				"totalTax": {"value": "19.00"},
				"invoiceTotal": {"value": -119.00},
				"currencySymbol": {"value": "€"},
				"documentType": {"value": "invoice"}
			}},
			"payment": {"value": {
				"dueDate": {"value": "2024-02-14"},
				"paymentTerms": {"value": "30 days net"},
				"netDays": {"value": 30},
				"discountPercentage": {"value": "2"},
				"discountedTotal": {"value": "116.62"}
			}},
			"lineItems": {"value": {"items": {"value": [
				{"srNo": {"value": 1}, "description": {"value": "Widget"}, "quantity": {"value": -2},
				 "unitPrice": {"value": -50}, "totalPrice": {"value": -100}, "taxRate": {"value": 19},
				 "Sachkonto": {"value": "3400"}},
				{}
			]}}}
		}}
	}`)
	vid, cid := uuid.New(), uuid.New()

	inv := newTestAssembler().Assemble(doc, env, 1, vid, cid)

	assert.Equal(t, "RE-2024-001", inv.InvoiceNumber)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), inv.InvoiceDate)
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), *inv.DueDate)
	assert.Equal(t, constants.InvoiceStatusSent, inv.Status)
	assert.Equal(t, "100", inv.Subtotal.String())
	assert.Equal(t, "19", inv.TaxAmount.String())
	assert.Equal(t, "119", inv.TotalAmount.String())
	assert.True(t, inv.DiscountAmount.IsZero())
	assert.Equal(t, "€", inv.Currency)
	assert.Equal(t, "€", *inv.CurrencySymbol)
	assert.Equal(t, "invoice", *inv.DocumentType)
	assert.Equal(t, "March delivery", *inv.Notes)
	assert.Equal(t, "30 days net", *inv.PaymentTerms)
	assert.Equal(t, 30, *inv.NetDays)
	assert.InDelta(t, 2.0, *inv.DiscountPercentage, 1e-9)
	assert.InDelta(t, 116.62, *inv.DiscountedTotal, 1e-9)
	assert.Equal(t, vid, inv.VendorID)
	assert.Equal(t, cid, inv.CustomerID)

	require.Len(t, inv.LineItems, 2)
	li := inv.LineItems[0]
	assert.Equal(t, 1, *li.SrNo)
	assert.Equal(t, "Widget", li.Description)
	assert.Equal(t, "2", li.Quantity.String())
	assert.Equal(t, "50", li.UnitPrice.String())
	assert.Equal(t, "100", li.Amount.String())
	assert.Equal(t, "19", li.TaxRate.String())
	assert.Equal(t, "3400", *li.Sachkonto)
	assert.Nil(t, li.BUSchluessel)

	empty := inv.LineItems[1]
	assert.Nil(t, empty.SrNo)
	assert.Equal(t, "No description", empty.Description)
	assert.Equal(t, "1", empty.Quantity.String())
	assert.True(t, empty.UnitPrice.IsZero())
	assert.True(t, empty.Amount.IsZero())
}

func TestAssemble_Defaults(t *testing.T) {
	doc, env := parse(t, `{"_id": "doc-9", "extractedData": {"llmData": {}}}`)

	inv := newTestAssembler().Assemble(doc, env, 4, uuid.New(), uuid.New())

	assert.Equal(t, "INV-doc-9-4", inv.InvoiceNumber)
	assert.Equal(t, fixedNow, inv.InvoiceDate)
	assert.Nil(t, inv.DueDate)
	assert.Nil(t, inv.DeliveryDate)
	assert.Equal(t, constants.InvoiceStatusPending, inv.Status)
	assert.True(t, inv.TotalAmount.IsZero())
	assert.Equal(t, "EUR", inv.Currency)
	assert.Nil(t, inv.CurrencySymbol)
	assert.Nil(t, inv.DiscountPercentage)
	assert.Nil(t, inv.DiscountedTotal)
	assert.Nil(t, inv.Notes)
	assert.Empty(t, inv.LineItems)
}

func TestAssemble_InvoiceNumberWithoutDocumentID(t *testing.T) {
	doc, env := parse(t, `{"extractedData": {"llmData": {}}}`)

	inv := newTestAssembler().Assemble(doc, env, 2, uuid.New(), uuid.New())

	assert.Equal(t, "INV-1740830400000-2", inv.InvoiceNumber)
}

func TestAssemble_DateFallbacks(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantInvoice time.Time
		wantDue     *time.Time
	}{
		{
			name:        "creation date when invoice date missing",
			raw:         `{"createdAt": {"$date": "2024-05-01T08:00:00Z"}, "extractedData": {"llmData": {}}}`,
			wantInvoice: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:        "creation date as numberLong",
			raw:         `{"createdAt": {"$date": {"$numberLong": "1704067200000"}}, "extractedData": {"llmData": {}}}`,
			wantInvoice: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "unparseable invoice date falls through",
			raw:         `{"createdAt": {"$date": 1704067200000}, "extractedData": {"llmData": {"invoice": {"value": {"invoiceDate": {"value": "soon"}}}}}}`,
			wantInvoice: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "due date from delivery date",
			raw:         `{"extractedData": {"llmData": {"invoice": {"value": {"invoiceDate": {"value": "15.01.2024"}, "deliveryDate": {"value": "2024-01-20"}}}}}}`,
			wantInvoice: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantDue:     ptrTime(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, env := parse(t, tt.raw)
			inv := newTestAssembler().Assemble(doc, env, 1, uuid.New(), uuid.New())
			assert.Equal(t, tt.wantInvoice, inv.InvoiceDate)
			assert.Equal(t, tt.wantDue, inv.DueDate)
		})
	}
}

func TestAssemble_LineItemsNotASequence(t *testing.T) {
	doc, env := parse(t, `{"extractedData": {"llmData": {"lineItems": {"value": {"items": {"value": "none"}}}}}}`)

	inv := newTestAssembler().Assemble(doc, env, 1, uuid.New(), uuid.New())

	assert.Empty(t, inv.LineItems)
}

func TestAssemble_MalformedLineEntriesAndIntegers(t *testing.T) {
	doc, env := parse(t, `{"extractedData": {"llmData": {
		"payment": {"value": {"netDays": {"value": 1e19}, "discountDays": {"value": 9223372036854775808}}},
		"lineItems": {"value": {"items": {"value": [
			null,
			"junk",
			{"srNo": {"value": 9223372036854775808}, "description": {"value": "kept"}, "totalPrice": {"value": 5}}
		]}}}
	}}}`)

	inv := newTestAssembler().Assemble(doc, env, 1, uuid.New(), uuid.New())

	assert.Nil(t, inv.NetDays)
	assert.Nil(t, inv.DiscountDays)
	require.Len(t, inv.LineItems, 1)
	assert.Equal(t, "kept", inv.LineItems[0].Description)
	assert.Nil(t, inv.LineItems[0].SrNo)
	assert.Equal(t, "5", inv.LineItems[0].Amount.String())
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		status    string
		validated bool
		want      constants.InvoiceStatus
	}{
		{"processed", true, constants.InvoiceStatusSent},
		{"PROCESSED", true, constants.InvoiceStatusSent},
		{"processed", false, constants.InvoiceStatusPending},
		{"pending", true, constants.InvoiceStatusPending},
		{"", true, constants.InvoiceStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.status, tt.validated))
		})
	}
}

type recordingStore struct {
	invoices  []*entity.Invoice
	lineItems []*entity.LineItem
	failAt    int
}

func (r *recordingStore) CreateInvoice(_ context.Context, inv *entity.Invoice) (uuid.UUID, error) {
	inv.ID = uuid.New()
	r.invoices = append(r.invoices, inv)
	return inv.ID, nil
}

func (r *recordingStore) CreateLineItem(_ context.Context, li *entity.LineItem) (uuid.UUID, error) {
	if r.failAt > 0 && len(r.lineItems)+1 == r.failAt {
		return uuid.Nil, errors.New("line item rejected")
	}
	li.ID = uuid.New()
	r.lineItems = append(r.lineItems, li)
	return li.ID, nil
}

func TestSave(t *testing.T) {
	a := newTestAssembler()
	inv := &entity.Invoice{
		InvoiceNumber: "A-1",
		LineItems: []*entity.LineItem{
			{Description: "one", Amount: decimal.NewFromInt(1)},
			{Description: "two", Amount: decimal.NewFromInt(2)},
		},
	}

	store := &recordingStore{}
	require.NoError(t, a.Save(context.Background(), store, inv))
	require.Len(t, store.lineItems, 2)
	assert.Equal(t, "one", store.lineItems[0].Description)
	assert.Equal(t, inv.ID, store.lineItems[1].InvoiceID)

	failing := &recordingStore{failAt: 2}
	err := a.Save(context.Background(), failing, inv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line item 2 of invoice A-1")
}

func ptrTime(t time.Time) *time.Time { return &t }
