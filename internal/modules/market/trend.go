package market

import (
	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/pkg/formulas"
)

// TrendSignal is the coarse buy/wait hint attached to fetched listings.
// It compares only the current price with the average and is informational;
// the analysis stages derive their own position with a tolerance band.
type TrendSignal struct {
	Signal               string  `json:"signal"`
	Reason               string  `json:"reason"`
	PercentageDifference float64 `json:"percentage_difference,omitempty"`
}

// TrendSignalFor returns nil when the current or average price is missing or zero
func TrendSignalFor(stats domain.PriceStatistics) *TrendSignal {
	if stats.Current == nil || stats.Average == nil || *stats.Current == 0 || *stats.Average == 0 {
		return nil
	}

	current, average := *stats.Current, *stats.Average
	switch {
	case current < average:
		return &TrendSignal{
			Signal:               "buy",
			Reason:               "below_market_average",
			PercentageDifference: formulas.Round((average-current)/average*100, 2),
		}
	case current > average:
		return &TrendSignal{
			Signal:               "wait",
			Reason:               "above_market_average",
			PercentageDifference: formulas.Round((current-average)/average*100, 2),
		}
	default:
		return &TrendSignal{Signal: "neutral", Reason: "at_market_average"}
	}
}
