// Package analysis implements the deterministic market analysis stages: price
// evaluation, offer ranking, market health, risk detection, trend signals,
// confidence scoring and the buy-decision rule ladder.
package analysis

// Position is the current price relative to the market average
type Position string

const (
	PositionBelow   Position = "below_market_average"
	PositionAt      Position = "at_market_average"
	PositionAbove   Position = "above_market_average"
	PositionUnknown Position = "unknown"
)

// Volatility is the spread tier of the observed prices
type Volatility string

const (
	VolatilityLow      Volatility = "low"
	VolatilityModerate Volatility = "moderate"
	VolatilityHigh     Volatility = "high"
	VolatilityUnknown  Volatility = "unknown"
)

// Condition of the product offered by the best seller
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionRefurbished Condition = "refurbished"
	ConditionUnknown     Condition = "unknown"
)

// PriceEvaluation classifies the current price against the market.
// Errors collects recoverable problems found while deriving the fields.
type PriceEvaluation struct {
	CurrentPrice *float64   `json:"current_price"`
	AveragePrice *float64   `json:"average_price"`
	LowestPrice  *float64   `json:"lowest_price"`
	HighestPrice *float64   `json:"highest_price"`
	Position     Position   `json:"price_position"`
	GapPercent   *float64   `json:"price_gap_percent"`
	Volatility   Volatility `json:"price_volatility"`
	Errors       []string   `json:"errors,omitempty"`
}

// BestOffer is the single highest scoring listing of a run
type BestOffer struct {
	Seller           string    `json:"seller"`
	Price            float64   `json:"price"`
	Condition        Condition `json:"condition"`
	SellerConfidence float64   `json:"seller_confidence"`
	SourceRank       int       `json:"source_rank"`
	Score            float64   `json:"score"`
}

// MarketStatus tells whether a MarketAnalysis could be derived
type MarketStatus string

const (
	MarketStatusOK               MarketStatus = "ok"
	MarketStatusInsufficientData MarketStatus = "insufficient_data"
)

// Level is a low/moderate/high bucket
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// PricingHealth buckets the price spread across sellers
type PricingHealth string

const (
	PricingStable            PricingHealth = "stable"
	PricingModerateVariation PricingHealth = "moderate_variation"
	PricingFragmented        PricingHealth = "fragmented"
)

// MarketAnalysis describes competition and pricing health.
// Only Status is set when the data is insufficient.
type MarketAnalysis struct {
	Status             MarketStatus  `json:"market_status"`
	SellerCount        int           `json:"seller_count,omitempty"`
	CompetitionLevel   Level         `json:"competition_level,omitempty"`
	PricingHealth      PricingHealth `json:"pricing_health,omitempty"`
	PriceSpreadPercent *float64      `json:"price_spread_percent,omitempty"`
}

// Sufficient reports whether the analysis carries competition and health fields
func (m MarketAnalysis) Sufficient() bool {
	return m.Status == MarketStatusOK
}

// Signals are four independent categorical trend indicators
type Signals struct {
	PriceSignal  string `json:"price_signal"`
	DemandSignal string `json:"demand_signal"`
	SupplySignal string `json:"supply_signal"`
	Momentum     string `json:"momentum"`
}

// Action recommended by the rule ladder
type Action string

const (
	ActionBuy     Action = "Buy"
	ActionWait    Action = "Wait"
	ActionNeutral Action = "Neutral"
)

// Urgency of the recommended action
type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

// Outcome distinguishes a matched rule from the explicit fall-through states
type Outcome string

const (
	OutcomeRuleMatched      Outcome = "rule_matched"
	OutcomeNoRuleTriggered  Outcome = "no_rule_triggered"
	OutcomeInsufficientData Outcome = "insufficient_data"
)

// BuyDecision is the output of the deterministic rule ladder
type BuyDecision struct {
	Action        Action  `json:"action"`
	Urgency       Urgency `json:"urgency"`
	Rationale     string  `json:"rationale"`
	RuleTriggered string  `json:"rule_triggered"`
	Outcome       Outcome `json:"outcome"`
}

// AnalysisSummary is the short narrative attached to an analysis
type AnalysisSummary struct {
	Headline         string   `json:"headline"`
	KeyPoints        []string `json:"key_points"`
	ShortExplanation string   `json:"short_explanation"`
	Source           string   `json:"source"`
}

// AnalysisOutput aggregates every stage of one analysis run
type AnalysisOutput struct {
	ProductName     string           `json:"product_name"`
	Summary         *AnalysisSummary `json:"summary,omitempty"`
	PriceEvaluation PriceEvaluation  `json:"price_evaluation"`
	BuyDecision     BuyDecision      `json:"buy_decision"`
	BestOffer       *BestOffer       `json:"best_offer"`
	OfferError      string           `json:"offer_error,omitempty"`
	MarketAnalysis  MarketAnalysis   `json:"market_analysis"`
	Risks           []string         `json:"risks_and_warnings"`
	Signals         Signals          `json:"signals"`
	ConfidenceScore float64          `json:"confidence_score"`
}

// WithSummary returns a copy of the output carrying the given summary
func (o AnalysisOutput) WithSummary(summary AnalysisSummary) AnalysisOutput {
	o.Summary = &summary
	return o
}
