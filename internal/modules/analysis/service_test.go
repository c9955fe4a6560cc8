package analysis

import (
	"testing"

	"github.com/aristath/productpulse/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultSellerRegistry(), zerolog.Nop())
}

func TestAnalyze_FiveSellerMarket(t *testing.T) {
	observations := []domain.PriceObservation{
		obs("Shop A", f(95)),
		obs("Amazon", f(100)),
		obs("Shop C", f(105)),
		obs("Shop D", f(98)),
		obs("Shop E", f(102)),
	}
	s := stats(f(95), f(100), f(95), f(105), 5)

	out := newTestAnalyzer().Analyze("Phone", s, observations)

	assert.Equal(t, "Phone", out.ProductName)
	assert.Equal(t, PositionBelow, out.PriceEvaluation.Position)
	assert.Equal(t, VolatilityModerate, out.PriceEvaluation.Volatility)
	assert.Equal(t, 10.0, *out.MarketAnalysis.PriceSpreadPercent)
	assert.Equal(t, PricingStable, out.MarketAnalysis.PricingHealth)
	assert.Equal(t, LevelHigh, out.MarketAnalysis.CompetitionLevel)
	assert.Equal(t, RuleBelowMarketStable, out.BuyDecision.RuleTriggered)
	assert.Equal(t, []string{RiskNone}, out.Risks)
	assert.Equal(t, "bullish", out.Signals.PriceSignal)
	assert.Equal(t, 0.9, out.ConfidenceScore)

	require.NotNil(t, out.BestOffer)
	assert.Empty(t, out.OfferError)
	assert.Equal(t, "Shop A", out.BestOffer.Seller)
	assert.Nil(t, out.Summary)
}

func TestAnalyze_SingleSellerAboveAverage(t *testing.T) {
	observations := []domain.PriceObservation{obs("Gadget Shack", f(120))}
	s := stats(f(120), f(100), f(100), f(120), 1)

	out := newTestAnalyzer().Analyze("Phone", s, observations)

	assert.Equal(t, PositionAt, out.PriceEvaluation.Position)
	assert.Contains(t, out.Risks, RiskSingleSeller)
	assert.Equal(t, RiskSingleSeller, out.Risks[0])
	assert.Equal(t, LevelLow, out.MarketAnalysis.CompetitionLevel)
	assert.Equal(t, "low", out.Signals.SupplySignal)
}

func TestAnalyze_AllOffersOverpriced(t *testing.T) {
	observations := []domain.PriceObservation{
		obs("Amazon", f(130.5)),
		obs("Walmart", f(140)),
		obs("Bestbuy", f(150)),
		obs("Joe", f(135)),
		obs("Flipkart", f(160)),
	}
	s := stats(f(130.5), f(100), f(130.5), f(160), 5)

	out := newTestAnalyzer().Analyze("Phone", s, observations)

	assert.Nil(t, out.BestOffer)
	assert.Equal(t, ErrNoValidOffer.Error(), out.OfferError)
	assert.Equal(t, RuleAboveMarket, out.BuyDecision.RuleTriggered)
	assert.Contains(t, out.Risks, RiskOverpriced)
}

func TestAnalyze_NoData(t *testing.T) {
	out := newTestAnalyzer().Analyze("Phone", domain.PriceStatistics{}, nil)

	assert.Equal(t, PositionUnknown, out.PriceEvaluation.Position)
	assert.Equal(t, MarketStatusInsufficientData, out.MarketAnalysis.Status)
	assert.Equal(t, OutcomeInsufficientData, out.BuyDecision.Outcome)
	assert.Nil(t, out.BestOffer)
	assert.Equal(t, []string{RiskNone}, out.Risks)
	assert.GreaterOrEqual(t, out.ConfidenceScore, 0.0)
}

func TestAnalysisOutput_WithSummary(t *testing.T) {
	out := AnalysisOutput{ProductName: "Phone"}
	withSummary := out.WithSummary(AnalysisSummary{Headline: "Buy now"})

	assert.Nil(t, out.Summary)
	require.NotNil(t, withSummary.Summary)
	assert.Equal(t, "Buy now", withSummary.Summary.Headline)
}
