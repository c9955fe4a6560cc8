package analysis

import (
	"math"

	"github.com/aristath/productpulse/pkg/formulas"
)

// CompletenessWeight scales the data completeness ratio into the confidence score
const CompletenessWeight = 0.2

// ScoreConfidence blends seller count, volatility, price clarity and data
// completeness into a score in [0, 1], rounded to two decimals.
func ScoreConfidence(sellerCount int, volatility Volatility, position Position, completeness float64) float64 {
	score := sellerCountTerm(sellerCount) +
		volatilityTerm(volatility) +
		clarityTerm(position) +
		completenessTerm(completeness)

	return formulas.Round(math.Min(score, 1.0), 2)
}

func sellerCountTerm(sellerCount int) float64 {
	switch {
	case sellerCount >= 5:
		return 0.3
	case sellerCount >= 3:
		return 0.2
	case sellerCount == 2:
		return 0.1
	default:
		return 0
	}
}

func volatilityTerm(volatility Volatility) float64 {
	switch volatility {
	case VolatilityLow:
		return 0.3
	case VolatilityModerate:
		return 0.2
	default:
		return 0.05
	}
}

func clarityTerm(position Position) float64 {
	if position == PositionBelow || position == PositionAbove {
		return 0.2
	}
	return 0.1
}

// completenessTerm clamps the ratio to [0, 1]; NaN counts as no data
func completenessTerm(ratio float64) float64 {
	if math.IsNaN(ratio) {
		return 0
	}
	return formulas.Round(formulas.Clamp(ratio, 0, 1)*CompletenessWeight, 2)
}
