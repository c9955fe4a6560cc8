package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectRisks(t *testing.T) {
	tests := []struct {
		name       string
		sellers    int
		volatility Volatility
		current    *float64
		average    *float64
		expected   []string
	}{
		{"none", 5, VolatilityLow, f(100), f(100), []string{RiskNone}},
		{"single seller", 1, VolatilityLow, f(100), f(100), []string{RiskSingleSeller}},
		{"all in order", 1, VolatilityHigh, f(120), f(100), []string{RiskSingleSeller, RiskHighVolatility, RiskOverpriced}},
		{"overpriced boundary", 3, VolatilityModerate, f(115), f(100), []string{RiskNone}},
		{"overpriced", 3, VolatilityModerate, f(115.01), f(100), []string{RiskOverpriced}},
		{"missing prices", 3, VolatilityUnknown, nil, nil, []string{RiskNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectRisks(tt.sellers, tt.volatility, tt.current, tt.average))
		})
	}
}

func TestGenerateSignals(t *testing.T) {
	tests := []struct {
		name     string
		eval     PriceEvaluation
		sellers  int
		expected Signals
	}{
		{
			name:     "below, many sellers, low volatility",
			eval:     PriceEvaluation{Position: PositionBelow, Volatility: VolatilityLow},
			sellers:  5,
			expected: Signals{PriceSignal: "bullish", DemandSignal: "increasing", SupplySignal: "healthy", Momentum: "stable"},
		},
		{
			name:     "above, two sellers, high volatility",
			eval:     PriceEvaluation{Position: PositionAbove, Volatility: VolatilityHigh},
			sellers:  2,
			expected: Signals{PriceSignal: "bearish", DemandSignal: "neutral", SupplySignal: "low", Momentum: "volatile"},
		},
		{
			name:     "unknown everything",
			eval:     PriceEvaluation{Position: PositionUnknown, Volatility: VolatilityUnknown},
			sellers:  0,
			expected: Signals{PriceSignal: "neutral", DemandSignal: "neutral", SupplySignal: "low", Momentum: "moderate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateSignals(tt.eval, tt.sellers))
		})
	}
}
