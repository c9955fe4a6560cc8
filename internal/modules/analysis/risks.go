package analysis

// Risk messages in evaluation order
const (
	RiskSingleSeller   = "Single seller detected: limited competition"
	RiskHighVolatility = "High price volatility: prices may fluctuate rapidly"
	RiskOverpriced     = "Current listing is significantly overpriced"
	RiskNone           = "No significant risk indicators detected"

	// OverpricedRiskRatio flags the current price above this multiple of the average
	OverpricedRiskRatio = 1.15
)

// DetectRisks evaluates every risk independently and returns them in fixed order.
// Exactly one RiskNone entry is returned when nothing triggers.
func DetectRisks(sellerCount int, volatility Volatility, current, average *float64) []string {
	var risks []string

	if sellerCount == 1 {
		risks = append(risks, RiskSingleSeller)
	}
	if volatility == VolatilityHigh {
		risks = append(risks, RiskHighVolatility)
	}
	if IsOverpriced(current, average) {
		risks = append(risks, RiskOverpriced)
	}

	if len(risks) == 0 {
		risks = append(risks, RiskNone)
	}
	return risks
}

// IsOverpriced reports whether current exceeds the average by more than OverpricedRiskRatio
func IsOverpriced(current, average *float64) bool {
	return usable(current) && usable(average) && *current > *average*OverpricedRiskRatio
}
