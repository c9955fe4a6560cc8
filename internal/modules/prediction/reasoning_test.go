package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReasoning(t *testing.T) {
	text := "\n- Price is below average\n  * Market is stable  \n• Many sellers\n\n   \nPlain line\n"

	assert.Equal(t, []string{
		"Price is below average",
		"Market is stable",
		"Many sellers",
		"Plain line",
	}, ParseReasoning(text))
}

func TestParseReasoning_Empty(t *testing.T) {
	assert.Equal(t, []string{DefaultReasoning}, ParseReasoning(""))
	assert.Equal(t, []string{DefaultReasoning}, ParseReasoning(" - \n *\n"))
}

func TestFallbackReasoning(t *testing.T) {
	assert.Equal(t, []string{
		"Narrative reasoning unavailable: narrator timed out",
		"Decision based solely on ML model",
	}, FallbackReasoning("narrator timed out"))
}

func TestReasoningPrompt(t *testing.T) {
	prompt := ReasoningPrompt(DecisionBuy, 0.87, fullAnalysis())

	assert.Contains(t, prompt, "- Decision: BUY")
	assert.Contains(t, prompt, "- Confidence: 87.0%")
	assert.Contains(t, prompt, "- Price Gap: -5.0%")
	assert.Contains(t, prompt, "- Seller Count: 5")
	assert.Contains(t, prompt, "- Competition Level: high")
	assert.Contains(t, prompt, "- Rule Triggered: BELOW_MARKET_STABLE_PRICE")
	assert.Contains(t, prompt, "why the BUY decision makes sense")
}
