package pipeline

import (
	"errors"
	"time"

	"github.com/joseph-ayodele/invoice-ledger/constants"
)

// ErrAllDocumentsFailed is returned when documents were attempted and none of them succeeded.
var ErrAllDocumentsFailed = errors.New("every document failed")

// Result summarizes one run.
type Result struct {
	RunID     string
	Documents int
	Skipped   int
	Failed    int
	Succeeded int

	VendorsCreated   int
	VendorsReused    int
	CustomersCreated int
	CustomersReused  int
	InvoicesCreated  int
	LineItemsCreated int

	// Counts holds the row counts read back from the store after the run.
	Counts   map[constants.EntityKind]int
	Duration time.Duration
}

// Attempted is the number of documents that carried an extraction envelope.
func (r *Result) Attempted() int {
	return r.Documents - r.Skipped
}
