package analysis

import (
	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/pkg/formulas"
)

// AnalyzeMarket derives competition level and pricing health.
// Seller count, lowest, highest and average must all be present and non-zero.
func AnalyzeMarket(stats domain.PriceStatistics) MarketAnalysis {
	if stats.SellerCount == 0 || !usable(stats.Lowest) || !usable(stats.Highest) || !usable(stats.Average) {
		return MarketAnalysis{Status: MarketStatusInsufficientData}
	}

	spread := formulas.Round(formulas.SpreadPercent(*stats.Highest, *stats.Lowest, *stats.Average), 2)
	if !formulas.IsFinite(spread) {
		return MarketAnalysis{Status: MarketStatusInsufficientData}
	}

	return MarketAnalysis{
		Status:             MarketStatusOK,
		SellerCount:        stats.SellerCount,
		CompetitionLevel:   CompetitionLevel(stats.SellerCount),
		PricingHealth:      PricingHealthForSpread(spread),
		PriceSpreadPercent: domain.Float(spread),
	}
}

// CompetitionLevel buckets seller count: 5+ high, 2-4 moderate, otherwise low
func CompetitionLevel(sellerCount int) Level {
	switch {
	case sellerCount >= 5:
		return LevelHigh
	case sellerCount >= 2:
		return LevelModerate
	default:
		return LevelLow
	}
}

// PricingHealthForSpread buckets spread: up to 10 stable, up to 20 moderate variation
func PricingHealthForSpread(spread float64) PricingHealth {
	switch {
	case spread <= 10:
		return PricingStable
	case spread <= 20:
		return PricingModerateVariation
	default:
		return PricingFragmented
	}
}
