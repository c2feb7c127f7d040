// Package rfm implements the customer segmentation core: aggregation of
// normalized transactions into per-customer Recency/Frequency/Monetary
// metrics, quartile scoring of each metric over the full population, and
// classification of the score tuples into tiers.
//
// The pipeline is a two-phase batch computation. Phase one materializes an
// immutable Snapshot of every customer's metrics; phase two scores the
// snapshot as a whole, because quartile boundaries depend on the entire
// population. Nothing here performs I/O, logs, or mutates its inputs.
package rfm

import (
	"fmt"
	"sort"
	"time"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/models"
)

const day = 24 * time.Hour

// Options controls a pipeline run.
type Options struct {
	// ReferenceDate is the fixed "now" that recency is measured against.
	// When zero it is derived as the latest invoice date in the input plus
	// one day. When set it must be strictly after every invoice date.
	ReferenceDate time.Time
}

// Snapshot is the immutable output of the aggregation phase: the full
// CustomerMetrics population, sorted by customer id, plus the reference date
// it was computed against. Scoring consumes whole snapshots only.
type Snapshot struct {
	ReferenceDate time.Time
	Metrics       []models.CustomerMetrics
}

// Aggregate reduces a transaction sequence into one CustomerMetrics record
// per distinct customer. Recency is whole days between the reference date
// and the customer's most recent invoice; frequency counts distinct invoice
// ids (repeated line items within an invoice count once); monetary sums line
// totals.
//
// Fails with ErrEmptyInput on an empty sequence and ErrInvalidReferenceDate
// when an explicit reference date is not strictly after the latest invoice.
func Aggregate(txns []models.TransactionRecord, opts Options) (*Snapshot, error) {
	if len(txns) == 0 {
		return nil, fmt.Errorf("aggregate: %w", ErrEmptyInput)
	}

	type acc struct {
		lastInvoice time.Time
		invoices    map[string]struct{}
		monetary    float64
	}

	byCustomer := make(map[string]*acc)
	var maxInvoice time.Time
	for _, t := range txns {
		a := byCustomer[t.CustomerID]
		if a == nil {
			a = &acc{invoices: make(map[string]struct{})}
			byCustomer[t.CustomerID] = a
		}
		if t.InvoiceDate.After(a.lastInvoice) {
			a.lastInvoice = t.InvoiceDate
		}
		a.invoices[t.InvoiceID] = struct{}{}
		a.monetary += t.LineTotal()

		if t.InvoiceDate.After(maxInvoice) {
			maxInvoice = t.InvoiceDate
		}
	}

	ref := opts.ReferenceDate
	if ref.IsZero() {
		ref = maxInvoice.Add(day)
	} else if !ref.After(maxInvoice) {
		return nil, fmt.Errorf("aggregate: reference date %s is not after the latest invoice %s: %w",
			ref.Format(time.RFC3339), maxInvoice.Format(time.RFC3339), ErrInvalidReferenceDate)
	}

	ids := make([]string, 0, len(byCustomer))
	for id := range byCustomer {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	metrics := make([]models.CustomerMetrics, 0, len(ids))
	for _, id := range ids {
		a := byCustomer[id]
		metrics = append(metrics, models.CustomerMetrics{
			CustomerID:  id,
			RecencyDays: int(ref.Sub(a.lastInvoice) / day),
			Frequency:   len(a.invoices),
			Monetary:    a.monetary,
		})
	}

	return &Snapshot{ReferenceDate: ref, Metrics: metrics}, nil
}
