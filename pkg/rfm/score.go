package rfm

import (
	"fmt"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/models"
)

// minPopulation is the smallest population four quartile bins can be cut
// from: four distinguishable ranks.
const minPopulation = 4

// Score converts a metrics snapshot into one RFMScore per customer, in
// snapshot order. Each metric is scored independently over the whole
// population:
//
//   - Recency is quartile-binned on raw values and inverted (the most recent
//     quartile scores 4, the least recent 1).
//   - Frequency is ranked first (stable ascending ranks, ties keeping
//     snapshot order, i.e. customer-id order) and the ranks are binned, so
//     equal invoice counts can never straddle a cut point ambiguously.
//   - Monetary is quartile-binned on raw values; a value sitting exactly on
//     an interior cut point falls to the lower bin.
//
// Fails with ErrEmptyInput on an empty snapshot and ErrDegenerateDistribution
// when the population is smaller than four or a metric's cut points collapse.
func Score(snap *Snapshot) ([]models.RFMScore, error) {
	if snap == nil || len(snap.Metrics) == 0 {
		return nil, fmt.Errorf("score: %w", ErrEmptyInput)
	}
	n := len(snap.Metrics)
	if n < minPopulation {
		return nil, fmt.Errorf("score: population of %d cannot fill four quartile bins: %w",
			n, ErrDegenerateDistribution)
	}

	recency := make([]float64, n)
	frequency := make([]float64, n)
	monetary := make([]float64, n)
	for i, m := range snap.Metrics {
		recency[i] = float64(m.RecencyDays)
		frequency[i] = float64(m.Frequency)
		monetary[i] = m.Monetary
	}

	rBins, err := quartileBins(recency)
	if err != nil {
		return nil, fmt.Errorf("score recency: %w", err)
	}
	fBins, err := quartileBins(stableRanks(frequency))
	if err != nil {
		return nil, fmt.Errorf("score frequency: %w", err)
	}
	mBins, err := quartileBins(monetary)
	if err != nil {
		return nil, fmt.Errorf("score monetary: %w", err)
	}

	scores := make([]models.RFMScore, n)
	for i, m := range snap.Metrics {
		scores[i] = models.RFMScore{
			CustomerID: m.CustomerID,
			RScore:     5 - rBins[i], // fewer days since last purchase is better
			FScore:     fBins[i],
			MScore:     mBins[i],
		}
	}
	return scores, nil
}
