package analysis

import (
	"errors"

	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/pkg/formulas"
)

const (
	// PositionTolerancePercent is the band around the average treated as at-market
	PositionTolerancePercent = 2.0

	// Volatility tier upper bounds, as spread percent of the average
	LowVolatilityMaxSpread      = 5.0
	ModerateVolatilityMaxSpread = 15.0
)

var (
	// ErrVolatilityInputs is recorded when highest, lowest or average price is missing
	ErrVolatilityInputs = errors.New("volatility requires highest, lowest and average price")
	// ErrGapOutOfRange is recorded when the gap overflows the float range
	ErrGapOutOfRange = errors.New("price gap out of range")
	// ErrSpreadOutOfRange is recorded when the spread overflows the float range
	ErrSpreadOutOfRange = errors.New("price spread out of range")
)

// usable treats nil, zero and non-finite values as missing, so no stage
// divides by a zero average or carries an infinity into the output
func usable(v *float64) bool {
	return v != nil && *v != 0 && formulas.IsFinite(*v)
}

// present is usable without the zero check, for values that are never divisors
func present(v *float64) bool {
	return v != nil && formulas.IsFinite(*v)
}

// EvaluatePrice classifies the current price against the market statistics.
// Missing inputs degrade the result to unknown values instead of failing.
func EvaluatePrice(stats domain.PriceStatistics) PriceEvaluation {
	eval := PriceEvaluation{
		CurrentPrice: stats.Current,
		AveragePrice: stats.Average,
		LowestPrice:  stats.Lowest,
		HighestPrice: stats.Highest,
		Position:     PricePosition(stats.Current, stats.Average, stats.SellerCount),
	}

	if usable(stats.Current) && usable(stats.Average) {
		gap := formulas.Round(formulas.PercentDiff(*stats.Current, *stats.Average), 2)
		if formulas.IsFinite(gap) {
			eval.GapPercent = domain.Float(gap)
		} else {
			eval.Errors = append(eval.Errors, ErrGapOutOfRange.Error())
		}
	} else {
		eval.Errors = append(eval.Errors, "price gap requires current and average price")
	}

	volatility, _, err := PriceVolatility(stats.Highest, stats.Lowest, stats.Average)
	eval.Volatility = volatility
	if err != nil {
		eval.Errors = append(eval.Errors, err.Error())
	}

	return eval
}

// PricePosition places current against average with a symmetric tolerance band.
// A single seller is always at its own market average.
func PricePosition(current, average *float64, sellerCount int) Position {
	if !usable(current) || !usable(average) {
		return PositionUnknown
	}
	if sellerCount == 1 {
		return PositionAt
	}

	diff := formulas.PercentDiff(*current, *average)
	switch {
	case !formulas.IsFinite(diff):
		return PositionUnknown
	case diff < -PositionTolerancePercent:
		return PositionBelow
	case diff > PositionTolerancePercent:
		return PositionAbove
	default:
		return PositionAt
	}
}

// PriceVolatility buckets the spread (highest-lowest)/average*100 into tiers.
// The rounded spread is returned alongside the tier.
func PriceVolatility(highest, lowest, average *float64) (Volatility, float64, error) {
	if !present(highest) || !present(lowest) || !usable(average) {
		return VolatilityUnknown, 0, ErrVolatilityInputs
	}

	spread := formulas.Round(formulas.SpreadPercent(*highest, *lowest, *average), 2)
	if !formulas.IsFinite(spread) {
		return VolatilityUnknown, 0, ErrSpreadOutOfRange
	}
	return VolatilityForSpread(spread), spread, nil
}

// VolatilityForSpread maps a spread percent to its tier
func VolatilityForSpread(spread float64) Volatility {
	switch {
	case spread <= LowVolatilityMaxSpread:
		return VolatilityLow
	case spread <= ModerateVolatilityMaxSpread:
		return VolatilityModerate
	default:
		return VolatilityHigh
	}
}
