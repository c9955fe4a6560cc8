// Package domain provides the value objects shared by the market, analysis and prediction modules.
package domain

import "strings"

// DefaultCurrency is used when the fetch collaborator does not report one
const DefaultCurrency = "USD"

// PriceObservation is a single (seller, price) pair produced from a raw listing.
// Price is nil when the listing had no parsable price.
type PriceObservation struct {
	Seller string   `json:"seller"`
	Price  *float64 `json:"price"`
}

// HasPrice reports whether the observation carries a parsed price
func (o PriceObservation) HasPrice() bool {
	return o.Price != nil
}

// PriceStatistics aggregates the valid observations of one pipeline run.
// Nil prices mean the statistic could not be derived.
type PriceStatistics struct {
	Current     *float64 `json:"current_price"`
	Average     *float64 `json:"average_price"`
	Lowest      *float64 `json:"lowest_price"`
	Highest     *float64 `json:"highest_price"`
	SellerCount int      `json:"seller_count"`
}

// CompletenessRatio is the fraction of the five core statistics that are present.
// SellerCount is always derived, so it always counts as present.
func (s PriceStatistics) CompletenessRatio() float64 {
	present := 1
	for _, v := range []*float64{s.Current, s.Average, s.Lowest, s.Highest} {
		if v != nil {
			present++
		}
	}
	return float64(present) / 5
}

// ProductInfo is the product metadata supplied alongside the raw listings
type ProductInfo struct {
	ProductName       string         `json:"product_name" validate:"required"`
	Brand             string         `json:"brand,omitempty"`
	Model             string         `json:"model,omitempty"`
	Category          string         `json:"category,omitempty"`
	Condition         string         `json:"condition,omitempty"`
	MarketRegion      string         `json:"market_region,omitempty" validate:"omitempty,len=2"`
	Currency          string         `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	Attributes        map[string]any `json:"attributes,omitempty"`
	AdditionalContext string         `json:"additional_context,omitempty"`
	SearchKeywords    []string       `json:"search_keywords,omitempty"`
}

// WithDefaults returns a copy with the currency defaulted and normalized
func (p ProductInfo) WithDefaults() ProductInfo {
	p.ProductName = strings.TrimSpace(p.ProductName)
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	p.MarketRegion = strings.ToLower(strings.TrimSpace(p.MarketRegion))
	return p
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}
