package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aristath/productpulse/internal/modules/narrative"
	"github.com/rs/zerolog"
)

// Summary sources
const (
	SummarySourceNarrator = "narrator"
	SummarySourceFallback = "fallback"
)

const summaryPromptTemplate = `You are a product market analyst.
Your job is to summarize already-analyzed market data.
Follow all rules strictly and do not add new information.

Generate a concise summary with this structure:
1. headline: a single sentence stating whether this is a good time to buy or wait.
2. key_points: 3 to 5 short points, each directly supported by the data, covering
   pricing position, market stability, seller competition and risks.
3. short_explanation: 2 to 4 sentences explaining why the headline was reached.

Rules:
- Do NOT introduce new insights
- Do NOT contradict the buy decision
- Do NOT speculate about future prices

Respond with JSON only, in the form
{"headline": "...", "key_points": ["..."], "short_explanation": "..."}

Analyzed data:
%s
`

// ErrInvalidSummary is returned when narrator output is not a usable summary
var ErrInvalidSummary = errors.New("invalid summary response")

// Summarizer attaches a narrative summary to analysis outputs
type Summarizer struct {
	runner *narrative.Runner
	log    zerolog.Logger
}

// NewSummarizer creates a summarizer. A nil runner always yields the fallback summary.
func NewSummarizer(runner *narrative.Runner, log zerolog.Logger) *Summarizer {
	return &Summarizer{
		runner: runner,
		log:    log.With().Str("service", "summary").Logger(),
	}
}

// Summarize asks the narrator for a summary and falls back to a deterministic one
// on any failure.
func (s *Summarizer) Summarize(ctx context.Context, out AnalysisOutput) AnalysisSummary {
	if !s.runner.Enabled() {
		return FallbackSummary(out)
	}

	prompt, err := SummaryPrompt(out)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to build summary prompt")
		return FallbackSummary(out)
	}

	text, err := s.runner.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn().Err(err).Str("product", out.ProductName).Msg("Summary generation failed, using fallback")
		return FallbackSummary(out)
	}

	summary, err := ParseSummary(text)
	if err != nil {
		s.log.Warn().Err(err).Str("product", out.ProductName).Msg("Unusable summary response, using fallback")
		return FallbackSummary(out)
	}
	return summary
}

// SummaryPrompt renders the analysis, minus any existing summary, into the prompt
func SummaryPrompt(out AnalysisOutput) (string, error) {
	out.Summary = nil
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis: %w", err)
	}
	return fmt.Sprintf(summaryPromptTemplate, data), nil
}

// ParseSummary extracts the JSON object from narrator text.
// Surrounding prose and markdown fences are ignored.
func ParseSummary(text string) (AnalysisSummary, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return AnalysisSummary{}, fmt.Errorf("%w: no JSON object", ErrInvalidSummary)
	}

	var summary AnalysisSummary
	if err := json.Unmarshal([]byte(text[start:end+1]), &summary); err != nil {
		return AnalysisSummary{}, fmt.Errorf("%w: %v", ErrInvalidSummary, err)
	}

	summary.Headline = strings.TrimSpace(summary.Headline)
	summary.ShortExplanation = strings.TrimSpace(summary.ShortExplanation)
	if summary.Headline == "" {
		return AnalysisSummary{}, fmt.Errorf("%w: empty headline", ErrInvalidSummary)
	}

	points := summary.KeyPoints[:0]
	for _, p := range summary.KeyPoints {
		if p = strings.TrimSpace(p); p != "" {
			points = append(points, p)
		}
	}
	summary.KeyPoints = points
	summary.Source = SummarySourceNarrator
	return summary, nil
}

// FallbackSummary builds a summary from the analysis alone
func FallbackSummary(out AnalysisOutput) AnalysisSummary {
	name := out.ProductName
	if name == "" {
		name = "this product"
	}

	var headline string
	switch {
	case out.BuyDecision.Outcome == OutcomeInsufficientData:
		headline = fmt.Sprintf("There is not enough market data to judge %s yet.", name)
	case out.BuyDecision.Action == ActionBuy:
		headline = fmt.Sprintf("Now looks like a good time to buy %s.", name)
	case out.BuyDecision.Action == ActionWait:
		headline = fmt.Sprintf("Waiting is recommended before buying %s.", name)
	default:
		headline = fmt.Sprintf("%s is priced in line with the market.", name)
	}

	points := []string{positionPoint(out.PriceEvaluation.Position)}
	if out.MarketAnalysis.Sufficient() {
		points = append(points, fmt.Sprintf("%d sellers with %s competition and %s pricing.",
			out.MarketAnalysis.SellerCount,
			out.MarketAnalysis.CompetitionLevel,
			strings.ReplaceAll(string(out.MarketAnalysis.PricingHealth), "_", " ")))
	} else {
		points = append(points, "Market data is insufficient to assess competition.")
	}
	if out.PriceEvaluation.Volatility != VolatilityUnknown && out.PriceEvaluation.Volatility != "" {
		points = append(points, fmt.Sprintf("Price volatility is %s.", out.PriceEvaluation.Volatility))
	}
	if len(out.Risks) > 0 {
		points = append(points, out.Risks[0]+".")
	}

	return AnalysisSummary{
		Headline:         headline,
		KeyPoints:        points,
		ShortExplanation: fmt.Sprintf("%s Overall confidence is %.2f.", out.BuyDecision.Rationale, out.ConfidenceScore),
		Source:           SummarySourceFallback,
	}
}

func positionPoint(position Position) string {
	switch position {
	case PositionBelow:
		return "The current price is below the market average."
	case PositionAbove:
		return "The current price is above the market average."
	case PositionAt:
		return "The current price is at the market average."
	default:
		return "The current price position could not be determined."
	}
}
