package market

import (
	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/pkg/formulas"
)

// Aggregate derives PriceStatistics from the observations that carry a price
// and returns those observations in source order.
//
// The current price is the first valid price, matching how the fetch
// collaborator ranks listings. When no observation is valid every price
// statistic is nil and SellerCount is zero.
func Aggregate(observations []domain.PriceObservation) (domain.PriceStatistics, []domain.PriceObservation) {
	valid := make([]domain.PriceObservation, 0, len(observations))
	for _, o := range observations {
		if o.HasPrice() {
			valid = append(valid, o)
		}
	}

	prices := ValidPrices(valid)
	if len(prices) == 0 {
		return domain.PriceStatistics{}, valid
	}

	return domain.PriceStatistics{
		Current:     domain.Float(prices[0]),
		Average:     domain.Float(formulas.Mean(prices)),
		Lowest:      domain.Float(formulas.Min(prices)),
		Highest:     domain.Float(formulas.Max(prices)),
		SellerCount: len(prices),
	}, valid
}

// ValidPrices returns the non-nil prices in source order
func ValidPrices(observations []domain.PriceObservation) []float64 {
	prices := make([]float64, 0, len(observations))
	for _, o := range observations {
		if o.HasPrice() {
			prices = append(prices, *o.Price)
		}
	}
	return prices
}
