package rfm

import (
	"fmt"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/models"
)

// Classify maps scores to segments 1:1, in input order. It is a pure
// function of the score tuples; no other input is consulted.
func Classify(scores []models.RFMScore) []models.Segment {
	segments := make([]models.Segment, len(scores))
	for i, s := range scores {
		segments[i] = models.Segment{
			CustomerID: s.CustomerID,
			Code:       fmt.Sprintf("%d%d%d", s.RScore, s.FScore, s.MScore),
			Tier:       tierOf(s),
		}
	}
	return segments
}

// tierOf applies the tier precedence to a score tuple; first match wins.
// The decision works on the scores themselves, never on the composite code.
func tierOf(s models.RFMScore) models.Tier {
	switch {
	case s.RScore == 4 && s.FScore == 4 && s.MScore == 4:
		return models.TierChampions
	case s.RScore == 4:
		return models.TierLoyal
	case s.RScore == 1:
		return models.TierAtRisk
	default:
		return models.TierOthers
	}
}
