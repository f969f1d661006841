package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
	"github.com/joseph-ayodele/invoice-ledger/internal/utils"
)

const (
	invoicesSheet = "Invoices"
	summarySheet  = "Summary"
)

// Source is what the report reads from the store.
type Source interface {
	ListInvoices(ctx context.Context) ([]*entity.InvoiceRow, error)
	Count(ctx context.Context, kind constants.EntityKind) (int, error)
}

// Service produces XLSX reports of the normalized store.
type Service struct {
	source Source
	logger *slog.Logger
}

func NewService(source Source, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, logger: logger}
}

// InvoicesXLSX returns a workbook with one row per invoice and a per-kind row count summary.
func (s *Service) InvoicesXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	rows, err := s.source.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", invoicesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(invoicesSheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Invoice Number",
		"Invoice Date",
		"Due Date",
		"Status",
		"Vendor",
		"Customer",
		"Subtotal",
		"Tax",
		"Total",
		"Currency",
		"Line Items",
	}
	writeRow(f, invoicesSheet, 1, toAny(headers)...)

	for i, r := range rows {
		writeRow(f, invoicesSheet, i+2,
			r.InvoiceNumber,
			utils.FormatDate(&r.InvoiceDate),
			utils.FormatDate(r.DueDate),
			string(r.Status),
			r.VendorName,
			r.CustomerName,
			r.Subtotal.InexactFloat64(),
			r.TaxAmount.InexactFloat64(),
			r.TotalAmount.InexactFloat64(),
			r.Currency,
			r.LineItems,
		)
	}

	_ = f.SetColWidth(invoicesSheet, "A", "A", 22) // number
	_ = f.SetColWidth(invoicesSheet, "B", "C", 14) // dates
	_ = f.SetColWidth(invoicesSheet, "D", "D", 16) // status
	_ = f.SetColWidth(invoicesSheet, "E", "F", 32) // parties
	_ = f.SetColWidth(invoicesSheet, "G", "I", 14) // amounts

	writeRow(f, summarySheet, 1, "Entity", "Rows")
	for i, kind := range constants.SummaryOrder {
		n, err := s.source.Count(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", kind, err)
		}
		writeRow(f, summarySheet, i+2, kind.Label(), n)
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
