package testing

import (
	"github.com/aristath/productpulse/internal/domain"
)

// Observations builds observations named Seller 1..n in order.
// A nil entry produces an observation without a price.
func Observations(prices ...*float64) []domain.PriceObservation {
	obs := make([]domain.PriceObservation, len(prices))
	for i, p := range prices {
		obs[i] = domain.PriceObservation{Seller: sellerName(i), Price: p}
	}
	return obs
}

// Prices is Observations for a list of known prices
func Prices(prices ...float64) []domain.PriceObservation {
	ptrs := make([]*float64, len(prices))
	for i := range prices {
		ptrs[i] = floatPtr(prices[i])
	}
	return Observations(ptrs...)
}

// NewStableMarketFixture is five sellers around an average of 100:
// spread 10%, moderate volatility, stable pricing, high competition.
func NewStableMarketFixture() []domain.PriceObservation {
	return []domain.PriceObservation{
		{Seller: "Amazon", Price: floatPtr(95)},
		{Seller: "Walmart", Price: floatPtr(100)},
		{Seller: "BestBuy", Price: floatPtr(105)},
		{Seller: "Target", Price: floatPtr(98)},
		{Seller: "Newegg", Price: floatPtr(102)},
	}
}

// NewSingleSellerFixture is one seller at 120
func NewSingleSellerFixture() []domain.PriceObservation {
	return []domain.PriceObservation{{Seller: "Lone Shop", Price: floatPtr(120)}}
}

// NewProductFixture returns valid product metadata
func NewProductFixture() domain.ProductInfo {
	return domain.ProductInfo{
		ProductName:  "Pixel 8",
		Brand:        "Google",
		Model:        "GKWS6",
		Category:     "smartphone",
		MarketRegion: "us",
		Currency:     "USD",
	}
}

func sellerName(i int) string {
	return "Seller " + string(rune('1'+i%9))
}

func floatPtr(f float64) *float64 {
	return &f
}
