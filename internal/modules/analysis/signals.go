package analysis

// GenerateSignals maps the price evaluation and seller count to trend indicators
func GenerateSignals(eval PriceEvaluation, sellerCount int) Signals {
	signals := Signals{
		PriceSignal:  "neutral",
		DemandSignal: "neutral",
		SupplySignal: "low",
		Momentum:     "moderate",
	}

	switch eval.Position {
	case PositionBelow:
		signals.PriceSignal = "bullish"
	case PositionAbove:
		signals.PriceSignal = "bearish"
	}

	if sellerCount >= 3 {
		signals.DemandSignal = "increasing"
		signals.SupplySignal = "healthy"
	}

	switch eval.Volatility {
	case VolatilityLow:
		signals.Momentum = "stable"
	case VolatilityHigh:
		signals.Momentum = "volatile"
	}

	return signals
}
