// Package pipeline runs the clear-then-load normalization of a document batch into the store.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/common"
	"github.com/joseph-ayodele/invoice-ledger/internal/extract"
	"github.com/joseph-ayodele/invoice-ledger/internal/invoices"
	"github.com/joseph-ayodele/invoice-ledger/internal/parties"
	"github.com/joseph-ayodele/invoice-ledger/internal/repository"
)

// Driver processes a document batch strictly in input order.
//
// A run is destructive: every downstream table is emptied before the first document is read.
// Re-running the same input reproduces the same row set; this is not an incremental upsert.
type Driver struct {
	store  repository.Store
	logger *slog.Logger
	opts   []invoices.Option
}

// NewDriver returns a Driver writing to store. opts configure the invoice assembler of each run.
func NewDriver(store repository.Store, logger *slog.Logger, opts ...invoices.Option) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{store: store, logger: logger, opts: opts}
}

type outcome int

const (
	outcomeSucceeded outcome = iota
	outcomeSkipped
	outcomeFailed
)

// run holds the state owned by a single Run call.
type run struct {
	store     repository.Store
	logger    *slog.Logger
	resolver  *parties.Resolver
	assembler *invoices.Assembler
	result    *Result
}

// Run clears the store, processes docs one at a time, and reads back per-kind counts.
// A failure while clearing aborts before any document is processed. A failing document is
// logged and skipped over. Cancellation is honoured between documents.
func (d *Driver) Run(ctx context.Context, docs []json.RawMessage) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = common.WithRunID(ctx, runID)
	logger := common.LoggerFromContext(ctx, d.logger).With("run_id", runID)

	res := &Result{RunID: runID, Documents: len(docs)}
	logger.Info("pipeline.run.started", "documents", len(docs))

	if err := d.clear(ctx, logger); err != nil {
		return res, err
	}

	r := &run{
		store:     d.store,
		logger:    logger,
		resolver:  parties.NewResolver(d.store, logger),
		assembler: invoices.NewAssembler(logger, d.opts...),
		result:    res,
	}
	for i, raw := range docs {
		if err := ctx.Err(); err != nil {
			logger.Warn("pipeline.run.cancelled", "processed", i, "error", err)
			return res, err
		}
		switch r.process(ctx, i+1, raw) {
		case outcomeSucceeded:
			res.Succeeded++
		case outcomeSkipped:
			res.Skipped++
		case outcomeFailed:
			res.Failed++
		}
	}

	counts, err := d.counts(ctx)
	if err != nil {
		return res, err
	}
	res.Counts = counts
	res.Duration = time.Since(start)

	logger.Info("pipeline.run.completed",
		"documents", res.Documents,
		"succeeded", res.Succeeded,
		"skipped", res.Skipped,
		"failed", res.Failed,
		"invoices_created", res.InvoicesCreated,
		"line_items_created", res.LineItemsCreated,
		"duration_ms", res.Duration.Milliseconds())

	if res.Attempted() > 0 && res.Failed == res.Attempted() {
		return res, ErrAllDocumentsFailed
	}
	return res, nil
}

func (d *Driver) clear(ctx context.Context, logger *slog.Logger) error {
	for _, kind := range constants.ClearOrder {
		if err := d.store.DeleteAll(ctx, kind); err != nil {
			logger.Error("pipeline.clear.failed", "kind", kind, "error", err)
			return common.NewAppError(common.CodeClear, fmt.Sprintf("clear %s", kind.Label()), err)
		}
	}
	logger.Info("pipeline.clear.ok")
	return nil
}

func (d *Driver) counts(ctx context.Context) (map[constants.EntityKind]int, error) {
	counts := make(map[constants.EntityKind]int, len(constants.SummaryOrder))
	for _, kind := range constants.SummaryOrder {
		n, err := d.store.Count(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", kind.Label(), err)
		}
		counts[kind] = n
	}
	return counts, nil
}

// process handles the document at 1-based position pos.
func (r *run) process(ctx context.Context, pos int, raw json.RawMessage) (out outcome) {
	var doc *extract.Document
	defer func() {
		if p := recover(); p != nil {
			r.fail(pos, doc, fmt.Errorf("%w: panic: %v", common.ErrInternal, p))
			out = outcomeFailed
		}
	}()

	if !extract.IsObject(raw) {
		r.logger.Info("pipeline.document.skipped", "doc_index", pos, "reason", "not an object")
		return outcomeSkipped
	}
	doc, err := extract.ParseDocument(raw)
	if err != nil {
		r.fail(pos, nil, err)
		return outcomeFailed
	}
	env := doc.Envelope()
	if env == nil {
		r.logger.Info("pipeline.document.skipped", "doc_index", pos, "doc_id", doc.ID.String(), "reason", "no extraction envelope")
		return outcomeSkipped
	}

	if err := r.load(ctx, pos, doc, env); err != nil {
		r.fail(pos, doc, err)
		return outcomeFailed
	}
	return outcomeSucceeded
}

func (r *run) load(ctx context.Context, pos int, doc *extract.Document, env *extract.LLMData) error {
	vb := extract.Unwrap(env.Vendor, extract.VendorBlock{})
	cb := extract.Unwrap(env.Customer, extract.CustomerBlock{})
	pb := extract.Unwrap(env.Payment, extract.PaymentBlock{})

	vendorID, created, err := r.resolver.ResolveVendor(ctx, pos, vb, pb)
	if err != nil {
		return err
	}
	if created {
		r.result.VendorsCreated++
	} else {
		r.result.VendorsReused++
	}

	customerID, created, err := r.resolver.ResolveCustomer(ctx, pos, cb)
	if err != nil {
		return err
	}
	if created {
		r.result.CustomersCreated++
	} else {
		r.result.CustomersReused++
	}

	inv := r.assembler.Assemble(doc, env, pos, vendorID, customerID)
	err = r.store.WithTx(ctx, func(tx repository.Store) error {
		return r.assembler.Save(ctx, tx, inv)
	})
	if err != nil {
		return err
	}
	r.result.InvoicesCreated++
	r.result.LineItemsCreated += len(inv.LineItems)

	r.logger.Info("pipeline.document.ok",
		"doc_index", pos,
		"doc_id", doc.ID.String(),
		"invoice_number", inv.InvoiceNumber,
		"line_items", len(inv.LineItems))
	return nil
}

func (r *run) fail(pos int, doc *extract.Document, err error) {
	attrs := []any{"doc_index", pos}
	if doc != nil {
		attrs = append(attrs, "doc_id", doc.ID.String(), "doc_name", doc.Label())
	}
	attrs = append(attrs, "error", err)
	r.logger.Error("pipeline.document.failed", attrs...)
}
