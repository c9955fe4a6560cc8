package prediction

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/aristath/productpulse/internal/modules/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 {
	return &v
}

func fullAnalysis() analysis.AnalysisOutput {
	return analysis.AnalysisOutput{
		ProductName: "Phone",
		PriceEvaluation: analysis.PriceEvaluation{
			CurrentPrice: f(95),
			AveragePrice: f(100),
			Position:     analysis.PositionBelow,
			GapPercent:   f(-5),
			Volatility:   analysis.VolatilityModerate,
		},
		MarketAnalysis: analysis.MarketAnalysis{
			Status:             analysis.MarketStatusOK,
			SellerCount:        5,
			CompetitionLevel:   analysis.LevelHigh,
			PricingHealth:      analysis.PricingStable,
			PriceSpreadPercent: f(10),
		},
		BuyDecision: analysis.BuyDecision{
			Action:        analysis.ActionBuy,
			Urgency:       analysis.UrgencyHigh,
			RuleTriggered: analysis.RuleBelowMarketStable,
			Outcome:       analysis.OutcomeRuleMatched,
		},
		ConfidenceScore: 0.9,
	}
}

func TestBuildFeatures(t *testing.T) {
	out := fullAnalysis()
	assert.Equal(t, FeatureVector{-5, 10, 5, 1, 2, 0.9}, BuildFeatures(&out))
}

func TestBuildFeatures_Defaults(t *testing.T) {
	assert.Equal(t, FeatureVector{0, 0, 0, 1, 1, 0.5}, BuildFeatures(nil))
	assert.Equal(t, FeatureVector{0, 0, 0, 1, 1, 0.5}, BuildFeatures(&analysis.AnalysisOutput{}))

	out := analysis.AnalysisOutput{
		PriceEvaluation: analysis.PriceEvaluation{Volatility: analysis.VolatilityUnknown},
		MarketAnalysis:  analysis.MarketAnalysis{Status: analysis.MarketStatusInsufficientData},
	}
	assert.Equal(t, FeatureVector{0, 0, 0, 1, 1, 0.5}, BuildFeatures(&out))
}

func TestBuildFeatures_AlwaysFinite(t *testing.T) {
	specials := []*float64{nil, f(math.NaN()), f(math.Inf(1)), f(math.Inf(-1)), f(-12.5)}
	confidences := []float64{0, math.NaN(), 0.3, math.Inf(1)}

	for _, gap := range specials {
		for _, spread := range specials {
			for _, confidence := range confidences {
				out := analysis.AnalysisOutput{
					PriceEvaluation: analysis.PriceEvaluation{GapPercent: gap},
					MarketAnalysis:  analysis.MarketAnalysis{PriceSpreadPercent: spread},
					ConfidenceScore: confidence,
				}
				fv := BuildFeatures(&out)

				require.Len(t, fv.Slice(), FeatureCount)
				for i, v := range fv {
					assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "feature %s is %v", FeatureNames[i], v)
				}
			}
		}
	}
}

func TestFeatureVector_JSON(t *testing.T) {
	fv := FeatureVector{-5, 10, 5, 1, 2, 0.9}

	data, err := json.Marshal(fv)
	require.NoError(t, err)
	assert.Equal(t,
		`{"price_gap_percent":-5,"price_spread_percent":10,"seller_count":5,"volatility_score":1,"competition_score":2,"confidence_score":0.9}`,
		string(data))

	var partial FeatureVector
	require.NoError(t, json.Unmarshal([]byte(`{"seller_count": 3}`), &partial))
	assert.Equal(t, FeatureVector{0, 0, 3, 1, 1, 0.5}, partial)

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &partial))
}
