package analysis

import (
	"errors"

	"github.com/aristath/productpulse/internal/domain"
	"github.com/rs/zerolog"
)

// Analyzer runs every analysis stage over one product's statistics
type Analyzer struct {
	ranker *OfferRanker
	log    zerolog.Logger
}

// NewAnalyzer creates an analyzer using the given seller allow-lists
func NewAnalyzer(sellers SellerRegistry, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		ranker: NewOfferRanker(sellers),
		log:    log.With().Str("service", "analysis").Logger(),
	}
}

// Analyze evaluates the statistics and ranks the observations.
// observations keep their source order, including listings without a price,
// so that source rank matches the original listing position. Recoverable
// problems are encoded in the output rather than returned.
func (a *Analyzer) Analyze(productName string, stats domain.PriceStatistics, observations []domain.PriceObservation) AnalysisOutput {
	eval := EvaluatePrice(stats)
	for _, msg := range eval.Errors {
		a.log.Warn().Str("product", productName).Str("reason", msg).Msg("Price evaluation degraded")
	}

	out := AnalysisOutput{
		ProductName:     productName,
		PriceEvaluation: eval,
		MarketAnalysis:  AnalyzeMarket(stats),
		Risks:           DetectRisks(stats.SellerCount, eval.Volatility, stats.Current, stats.Average),
		Signals:         GenerateSignals(eval, stats.SellerCount),
		ConfidenceScore: ScoreConfidence(stats.SellerCount, eval.Volatility, eval.Position, stats.CompletenessRatio()),
		BuyDecision:     DecideBuy(eval, stats.SellerCount),
	}

	if !out.MarketAnalysis.Sufficient() {
		a.log.Warn().Str("product", productName).Msg("Insufficient data for market analysis")
	}

	best, err := a.ranker.SelectBestOffer(observations, stats.Average)
	switch {
	case errors.Is(err, ErrNoValidOffer):
		out.OfferError = err.Error()
		a.log.Warn().Str("product", productName).Int("observations", len(observations)).Msg("No offer survived filtering")
	case err != nil:
		out.OfferError = err.Error()
	default:
		out.BestOffer = best
	}

	if out.BuyDecision.Outcome != OutcomeRuleMatched {
		a.log.Warn().
			Str("product", productName).
			Str("outcome", string(out.BuyDecision.Outcome)).
			Msg("Decision rules did not match")
	}

	return out
}
