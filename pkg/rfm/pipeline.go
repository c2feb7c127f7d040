package rfm

import (
	"time"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/models"
)

// Result is the complete output of one pipeline run. The three slices are
// parallel: index i of each refers to the same customer, and the order is
// the snapshot order (customer id ascending).
type Result struct {
	ReferenceDate time.Time
	Metrics       []models.CustomerMetrics
	Scores        []models.RFMScore
	Segments      []models.Segment
}

// Run executes the full pipeline: aggregate, score, classify. Either the
// whole result is produced or an error is returned with no partial output.
//
// Segmentation is a function of the entire population, not of any customer
// in isolation: re-running on the same input yields identical segments, but
// appending customers may move every quartile boundary and therefore every
// score. Callers comparing runs across growing populations should expect
// that; it is not drift.
func Run(txns []models.TransactionRecord, opts Options) (*Result, error) {
	snap, err := Aggregate(txns, opts)
	if err != nil {
		return nil, err
	}

	scores, err := Score(snap)
	if err != nil {
		return nil, err
	}

	return &Result{
		ReferenceDate: snap.ReferenceDate,
		Metrics:       snap.Metrics,
		Scores:        scores,
		Segments:      Classify(scores),
	}, nil
}
