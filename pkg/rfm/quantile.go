package rfm

import (
	"fmt"
	"math"
	"sort"
)

// Quartile machinery. Everything in this file is pure and deterministic:
// the same values always produce the same cut points, ranks and bins.

// quantile returns the q-th quantile (0 <= q <= 1) of an ascending-sorted
// slice using linear interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * q
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// quartileCuts computes the 0/25/50/75/100th percentile cut points over the
// population.
func quartileCuts(values []float64) [5]float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var cuts [5]float64
	for i, q := range [5]float64{0, 0.25, 0.5, 0.75, 1} {
		cuts[i] = quantile(sorted, q)
	}
	return cuts
}

// binOf places v into one of four right-closed quartile bins. A value equal
// to an interior cut point falls to the lower-indexed bin; the population
// maximum belongs to the top bin.
func binOf(v float64, cuts [5]float64) int {
	switch {
	case v <= cuts[1]:
		return 1
	case v <= cuts[2]:
		return 2
	case v <= cuts[3]:
		return 3
	default:
		return 4
	}
}

// quartileBins assigns every value to its quartile bin, failing when the cut
// points are not strictly increasing (the strict degenerate-distribution
// policy: no fallback score is ever emitted).
func quartileBins(values []float64) ([]int, error) {
	cuts := quartileCuts(values)
	for i := 1; i < len(cuts); i++ {
		if cuts[i] <= cuts[i-1] {
			return nil, fmt.Errorf("quartile cut points %v collapse: %w", cuts, ErrDegenerateDistribution)
		}
	}

	bins := make([]int, len(values))
	for i, v := range values {
		bins[i] = binOf(v, cuts)
	}
	return bins, nil
}

// stableRanks assigns ascending 1-based ranks to values. Equal values keep
// their input order, so the caller's ordering is the tie-break rule. Ranking
// before binning is what keeps tie-heavy metrics (invoice counts, typically)
// out of the degenerate case: ranks are always N distinct values.
func stableRanks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	ranks := make([]float64, len(values))
	for r, i := range idx {
		ranks[i] = float64(r + 1)
	}
	return ranks
}
