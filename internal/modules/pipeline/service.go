// Package pipeline runs the market analysis and decision stages end to end.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/internal/modules/analysis"
	"github.com/aristath/productpulse/internal/modules/market"
	"github.com/aristath/productpulse/internal/modules/prediction"
	"github.com/aristath/productpulse/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Service orchestrates a pipeline run
type Service struct {
	analyzer    *analysis.Analyzer
	summarizer  *analysis.Summarizer
	synthesizer *prediction.Synthesizer
	fetcher     domain.ListingFetcher
	validate    *validator.Validate
	now         func() time.Time
	log         zerolog.Logger
}

// NewService creates a pipeline service. fetcher may be nil, in which case
// Search reports KindFetcherUnavailable.
func NewService(
	analyzer *analysis.Analyzer,
	summarizer *analysis.Summarizer,
	synthesizer *prediction.Synthesizer,
	fetcher domain.ListingFetcher,
	log zerolog.Logger,
) *Service {
	return &Service{
		analyzer:    analyzer,
		summarizer:  summarizer,
		synthesizer: synthesizer,
		fetcher:     fetcher,
		validate:    validator.New(),
		now:         func() time.Time { return time.Now().UTC() },
		log:         log.With().Str("service", "pipeline").Logger(),
	}
}

// SearchEnabled reports whether Search can fetch listings
func (s *Service) SearchEnabled() bool {
	return s.fetcher != nil
}

// Analyze validates req, normalizes its listings and runs the pipeline
func (s *Service) Analyze(ctx context.Context, req Request) (*Report, error) {
	req.Product = req.Product.WithDefaults()
	if err := s.validate.Struct(req); err != nil {
		return nil, newError(KindMalformedInput, fmt.Errorf("%w: %v", ErrMalformedInput, err))
	}
	return s.Run(ctx, req.Product, market.NormalizeListings(req.Observations))
}

// Search fetches listings for product and runs the pipeline over them
func (s *Service) Search(ctx context.Context, product domain.ProductInfo) (*Report, error) {
	if s.fetcher == nil {
		return nil, newError(KindFetcherUnavailable, ErrFetcherUnavailable)
	}
	if err := s.validateProduct(product); err != nil {
		return nil, err
	}

	observations, err := s.fetcher.FetchListings(ctx, product.WithDefaults())
	if err != nil {
		return nil, newError(KindFetchFailed, fmt.Errorf("failed to fetch listings: %w", err))
	}
	return s.Run(ctx, product, observations)
}

// Run executes every stage over already-normalized observations.
// Only malformed input and classifier failures fail the run; every other
// problem is recorded in the report.
func (s *Service) Run(ctx context.Context, product domain.ProductInfo, observations []domain.PriceObservation) (*Report, error) {
	if err := s.validateProduct(product); err != nil {
		return nil, err
	}
	if len(observations) == 0 {
		return nil, newError(KindMalformedInput, fmt.Errorf("%w: no observations", ErrMalformedInput))
	}

	product = product.WithDefaults()
	runID := uuid.New().String()
	log := s.log.With().Str("run_id", runID).Str("product", product.ProductName).Logger()
	timer := utils.NewTimer("pipeline run", log)

	stats, _ := market.Aggregate(observations)
	out := s.analyzer.Analyze(product.ProductName, stats, observations)

	// Summary and reasoning are independent narrator calls
	var (
		summary analysis.AnalysisSummary
		rec     prediction.FinalRecommendation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary = s.summarizer.Summarize(gctx, out)
		return nil
	})
	g.Go(func() error {
		var err error
		rec, err = s.synthesizer.Synthesize(gctx, out)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Prediction failed")
		return nil, classify(err)
	}

	report := &Report{
		RunID:          runID,
		Product:        product,
		FetchedAt:      s.now(),
		Statistics:     stats,
		TrendSignal:    market.TrendSignalFor(stats),
		Analysis:       out.WithSummary(summary),
		Recommendation: rec,
	}

	log.Info().
		Int("seller_count", stats.SellerCount).
		Str("rule", out.BuyDecision.RuleTriggered).
		Str("ml_decision", string(rec.MLDecision)).
		Str("final_decision", string(rec.FinalDecision)).
		Float64("confidence", rec.Confidence).
		Dur("duration", timer.Stop()).
		Msg("Pipeline run completed")

	return report, nil
}

// Features projects an analysis onto the classifier's feature vector
func (s *Service) Features(out analysis.AnalysisOutput) prediction.FeatureVector {
	return prediction.BuildFeatures(&out)
}

func (s *Service) validateProduct(product domain.ProductInfo) error {
	if err := s.validate.Struct(product.WithDefaults()); err != nil {
		return newError(KindMalformedInput, fmt.Errorf("%w: %v", ErrMalformedInput, err))
	}
	return nil
}

func classify(err error) error {
	if errors.Is(err, prediction.ErrClassifierUnavailable) || errors.Is(err, prediction.ErrInvalidProbabilities) {
		return newError(KindClassifierUnavailable, err)
	}
	return newError(KindInternal, err)
}
