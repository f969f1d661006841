package extract

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Document is one raw input record. Only the parts the pipeline reads are modelled;
// everything else in the source record is ignored.
type Document struct {
	ID                 DocumentID     `json:"_id"`
	Name               LooseString    `json:"name"`
	Status             LooseString    `json:"status"`
	IsValidatedByHuman LooseBool      `json:"isValidatedByHuman"`
	CreatedAt          DateField      `json:"createdAt"`
	Metadata           *Metadata      `json:"metadata"`
	ExtractedData      *ExtractedData `json:"extractedData"`
}

// Metadata holds free-form document metadata.
type Metadata struct {
	Description LooseString `json:"description"`
}

// ExtractedData is the outer half of the extraction envelope.
type ExtractedData struct {
	LLMData *LLMData `json:"llmData"`
}

// LLMData holds the per-block wrappers produced by the extraction model.
type LLMData struct {
	Vendor    Field[VendorBlock]    `json:"vendor"`
	Customer  Field[CustomerBlock]  `json:"customer"`
	Invoice   Field[InvoiceBlock]   `json:"invoice"`
	Summary   Field[SummaryBlock]   `json:"summary"`
	Payment   Field[PaymentBlock]   `json:"payment"`
	LineItems Field[LineItemsBlock] `json:"lineItems"`
}

// Envelope returns the extraction envelope, or nil when the document has none.
func (d *Document) Envelope() *LLMData {
	if d == nil || d.ExtractedData == nil {
		return nil
	}
	return d.ExtractedData.LLMData
}

// Label returns the most useful human identifier for logs: the name, else the id.
func (d *Document) Label() string {
	if n := strings.TrimSpace(string(d.Name)); n != "" {
		return n
	}
	return d.ID.String()
}

// VendorBlock holds vendor fields.
type VendorBlock struct {
	VendorName        Field[string] `json:"vendorName"`
	VendorPartyNumber Field[string] `json:"vendorPartyNumber"`
	VendorTaxID       Field[string] `json:"vendorTaxId"`
	VendorAddress     Field[string] `json:"vendorAddress"`
	VendorEmail       Field[string] `json:"vendorEmail"`
	VendorPhone       Field[string] `json:"vendorPhone"`
}

// CustomerBlock holds customer fields.
type CustomerBlock struct {
	CustomerName    Field[string] `json:"customerName"`
	CustomerTaxID   Field[string] `json:"customerTaxId"`
	CustomerAddress Field[string] `json:"customerAddress"`
	CustomerEmail   Field[string] `json:"customerEmail"`
	CustomerPhone   Field[string] `json:"customerPhone"`
}

// InvoiceBlock holds invoice header fields.
type InvoiceBlock struct {
	InvoiceID    Field[string] `json:"invoiceId"`
	InvoiceDate  DateField     `json:"invoiceDate"`
	DeliveryDate DateField     `json:"deliveryDate"`
}

// SummaryBlock holds the invoice totals.
type SummaryBlock struct {
	SubTotal       Field[decimal.Decimal] `json:"subTotal"`
	TotalTax       Field[decimal.Decimal] `json:"totalTax"`
	InvoiceTotal   Field[decimal.Decimal] `json:"invoiceTotal"`
	CurrencySymbol Field[string]          `json:"currencySymbol"`
	DocumentType   Field[string]          `json:"documentType"`
}

// PaymentBlock holds payment and bank details.
type PaymentBlock struct {
	DueDate            DateField     `json:"dueDate"`
	PaymentTerms       Field[string] `json:"paymentTerms"`
	NetDays            Field[int]    `json:"netDays"`
	DiscountPercentage Field[string] `json:"discountPercentage"`
	DiscountDays       Field[int]    `json:"discountDays"`
	DiscountDueDate    DateField     `json:"discountDueDate"`
	DiscountedTotal    Field[string] `json:"discountedTotal"`
	BankAccountNumber  Field[string] `json:"bankAccountNumber"`
	BIC                Field[string] `json:"BIC"`
	AccountName        Field[string] `json:"accountName"`
}

// LineItemsBlock wraps the items sequence. Items that are not a JSON array decode as unset.
type LineItemsBlock struct {
	Items Field[[]LineItemBlock] `json:"items"`
}

// LineItemBlock holds one extracted line.
type LineItemBlock struct {
	SrNo         Field[int]             `json:"srNo"`
	Description  Field[string]          `json:"description"`
	Quantity     Field[decimal.Decimal] `json:"quantity"`
	UnitPrice    Field[decimal.Decimal] `json:"unitPrice"`
	TotalPrice   Field[decimal.Decimal] `json:"totalPrice"`
	TaxRate      Field[decimal.Decimal] `json:"taxRate"`
	Sachkonto    Field[string]          `json:"Sachkonto"`
	BUSchluessel Field[string]          `json:"BUSchluessel"`

	object bool
}

// IsObject reports whether the item was a JSON object. Null and scalar entries are not items.
func (b LineItemBlock) IsObject() bool { return b.object }

// DateField captures both date representations found in source documents:
// an explicit `{ "$date": ... }` wrapper and a generic `{ "value": ... }` wrapper.
// The raw parts are kept; normalize.ParseDate turns them into a time.
type DateField struct {
	Epoch json.RawMessage
	Value json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler. Non-object input leaves the field empty.
func (d *DateField) UnmarshalJSON(data []byte) error {
	*d = DateField{}
	var parts struct {
		Epoch json.RawMessage `json:"$date"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil
	}
	if !isNull(parts.Epoch) {
		d.Epoch = parts.Epoch
	}
	if !isNull(parts.Value) {
		d.Value = parts.Value
	}
	return nil
}

// Empty reports whether neither representation is present.
func (d DateField) Empty() bool {
	return len(d.Epoch) == 0 && len(d.Value) == 0
}

// DocumentID accepts a string, a number, or a `{ "$oid": "..." }` object.
type DocumentID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *DocumentID) UnmarshalJSON(data []byte) error {
	*id = ""
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var oid struct {
			OID json.RawMessage `json:"$oid"`
		}
		if err := json.Unmarshal(trimmed, &oid); err != nil {
			return nil
		}
		trimmed = oid.OID
	}
	if s, ok := looseString(trimmed); ok {
		*id = DocumentID(strings.TrimSpace(s))
	}
	return nil
}

func (id DocumentID) String() string { return string(id) }

// LooseString decodes strings, numbers, and booleans as text; anything else decodes as "".
type LooseString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	v, _ := looseString(data)
	*s = LooseString(v)
	return nil
}

// LooseBool decodes booleans, "true"/"false" strings, and numbers; anything else decodes as false.
type LooseBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *LooseBool) UnmarshalJSON(data []byte) error {
	v, _ := looseBool(data)
	*b = LooseBool(v)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Non-object metadata decodes as empty.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	type plain Metadata
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*m = Metadata{}
		return nil
	}
	*m = Metadata(p)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. An llmData that is not an object is treated as missing.
func (e *ExtractedData) UnmarshalJSON(data []byte) error {
	*e = ExtractedData{}
	var parts struct {
		LLMData json.RawMessage `json:"llmData"`
	}
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil
	}
	trimmed := bytes.TrimSpace(parts.LLMData)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var llm LLMData
	if err := json.Unmarshal(trimmed, &llm); err != nil {
		return nil
	}
	e.LLMData = &llm
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. A non-object item decodes with every field unset
// and IsObject false.
func (b *LineItemBlock) UnmarshalJSON(data []byte) error {
	*b = LineItemBlock{}
	if !IsObject(data) {
		return nil
	}
	type plain LineItemBlock
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	*b = LineItemBlock(p)
	b.object = true
	return nil
}

// ParseDocument decodes one raw input record. Only input that is not a JSON object fails.
func ParseDocument(raw json.RawMessage) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// IsObject reports whether raw holds a JSON object.
func IsObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
