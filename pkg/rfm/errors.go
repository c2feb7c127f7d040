package rfm

import "errors"

// Error kinds raised by the pipeline stages. Stages wrap these with context
// via fmt.Errorf("...: %w", ...); callers match with errors.Is. A failed
// stage returns no partial output.
var (
	// ErrEmptyInput means the population to aggregate or score has no
	// records. Quantile binning is undefined on an empty population.
	ErrEmptyInput = errors.New("empty input population")

	// ErrDegenerateDistribution means a metric cannot support four distinct
	// quartile bins: either the population is smaller than four, or its
	// values are so concentrated that the quartile cut points collapse.
	ErrDegenerateDistribution = errors.New("degenerate distribution")

	// ErrInvalidReferenceDate means an explicit reference date is not
	// strictly after every invoice date in the input.
	ErrInvalidReferenceDate = errors.New("invalid reference date")
)
