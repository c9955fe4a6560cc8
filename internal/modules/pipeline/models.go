package pipeline

import (
	"time"

	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/internal/modules/analysis"
	"github.com/aristath/productpulse/internal/modules/market"
	"github.com/aristath/productpulse/internal/modules/prediction"
)

// Request is a pipeline run over caller-supplied listings
type Request struct {
	Product      domain.ProductInfo  `json:"product"`
	Observations []market.RawListing `json:"observations" validate:"min=1"`
}

// SearchRequest is a pipeline run over listings fetched for the product
type SearchRequest struct {
	Product domain.ProductInfo `json:"product"`
}

// FeaturesRequest asks for the classifier features of an existing analysis
type FeaturesRequest struct {
	Analysis analysis.AnalysisOutput `json:"analysis"`
}

// Report is the complete output of one pipeline run
type Report struct {
	RunID          string                         `json:"run_id"`
	Product        domain.ProductInfo             `json:"product"`
	FetchedAt      time.Time                      `json:"fetched_at"`
	Statistics     domain.PriceStatistics         `json:"statistics"`
	TrendSignal    *market.TrendSignal            `json:"trend_signal"`
	Analysis       analysis.AnalysisOutput        `json:"analysis"`
	Recommendation prediction.FinalRecommendation `json:"recommendation"`
}
