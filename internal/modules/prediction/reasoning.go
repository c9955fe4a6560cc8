package prediction

import (
	"fmt"
	"strings"

	"github.com/aristath/productpulse/internal/modules/analysis"
)

// Reasoning sources
const (
	ReasoningSourceNarrator = "narrator"
	ReasoningSourceFallback = "fallback"
)

// DefaultReasoning is used when the narrator answers without any usable line
const DefaultReasoning = "Decision based on ML model analysis"

// ParseReasoning splits narrator text into trimmed, non-empty bullet lines
func ParseReasoning(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return []string{DefaultReasoning}
	}
	return lines
}

// FallbackReasoning is substituted when the narrator cannot be reached
func FallbackReasoning(reason string) []string {
	return []string{
		fmt.Sprintf("Narrative reasoning unavailable: %s", reason),
		"Decision based solely on ML model",
	}
}

const reasoningPromptTemplate = `You are an expert product analyst. The ML model has made a prediction. Provide clear, actionable reasoning.

ML PREDICTION:
- Decision: %s
- Confidence: %.1f%%

MARKET DATA:
- Current Price Position: %s
- Price Gap: %.1f%%
- Price Volatility: %s
- Seller Count: %d
- Competition Level: %s
- Price Spread: %.1f%%

ANALYZER RECOMMENDATION:
- Action: %s
- Urgency: %s
- Rule Triggered: %s

TASK:
Provide 3-5 clear, concise bullet points explaining why the %s decision makes sense (or doesn't). Consider:
1. Price positioning and value
2. Market stability and risk factors
3. Competition and supply dynamics
4. Timing and urgency considerations

Format as bullet points starting with '-'. Be specific and actionable.`

// ReasoningPrompt renders the decision and its analysis context for the narrator
func ReasoningPrompt(decision Decision, confidence float64, out analysis.AnalysisOutput) string {
	competition := string(out.MarketAnalysis.CompetitionLevel)
	if competition == "" {
		competition = "N/A"
	}

	return fmt.Sprintf(reasoningPromptTemplate,
		decision,
		confidence*100,
		out.PriceEvaluation.Position,
		deref(out.PriceEvaluation.GapPercent),
		out.PriceEvaluation.Volatility,
		out.MarketAnalysis.SellerCount,
		competition,
		deref(out.MarketAnalysis.PriceSpreadPercent),
		out.BuyDecision.Action,
		out.BuyDecision.Urgency,
		out.BuyDecision.RuleTriggered,
		decision,
	)
}
