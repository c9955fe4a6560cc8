package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		in      RuleInput
		rule    string
		action  Action
		urgency Urgency
		outcome Outcome
	}{
		{"deep discount", RuleInput{PositionBelow, -5, VolatilityModerate, 3}, RuleBelowMarketStable, ActionBuy, UrgencyHigh, OutcomeRuleMatched},
		{"deep discount too few sellers", RuleInput{PositionBelow, -6, VolatilityLow, 2}, RuleNoRuleTriggered, ActionNeutral, UrgencyLow, OutcomeNoRuleTriggered},
		{"slight discount", RuleInput{PositionBelow, -3, VolatilityLow, 2}, RuleSlightlyBelowMarket, ActionBuy, UrgencyMedium, OutcomeRuleMatched},
		{"slight discount moderate volatility", RuleInput{PositionBelow, -3, VolatilityModerate, 2}, RuleNoRuleTriggered, ActionNeutral, UrgencyLow, OutcomeNoRuleTriggered},
		{"above market", RuleInput{PositionAbove, 3, VolatilityHigh, 4}, RuleAboveMarket, ActionWait, UrgencyLow, OutcomeRuleMatched},
		{"slightly above market", RuleInput{PositionAbove, 2.5, VolatilityLow, 4}, RuleNoRuleTriggered, ActionNeutral, UrgencyLow, OutcomeNoRuleTriggered},
		{"high volatility", RuleInput{PositionAt, 0, VolatilityHigh, 4}, RuleHighVolatility, ActionWait, UrgencyMedium, OutcomeRuleMatched},
		{"equilibrium", RuleInput{PositionAt, 1, VolatilityLow, 4}, RuleMarketEquilibrium, ActionNeutral, UrgencyLow, OutcomeRuleMatched},
		{"below single seller", RuleInput{PositionBelow, -10, VolatilityLow, 1}, RuleMarketEquilibrium, ActionNeutral, UrgencyLow, OutcomeRuleMatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.in)
			assert.Equal(t, tt.rule, decision.RuleTriggered)
			assert.Equal(t, tt.action, decision.Action)
			assert.Equal(t, tt.urgency, decision.Urgency)
			assert.Equal(t, tt.outcome, decision.Outcome)
			assert.NotEmpty(t, decision.Rationale)
		})
	}
}

func TestDecideBuy_InsufficientData(t *testing.T) {
	tests := []struct {
		name string
		eval PriceEvaluation
	}{
		{"unknown position", PriceEvaluation{Position: PositionUnknown, GapPercent: f(0), Volatility: VolatilityLow}},
		{"missing gap", PriceEvaluation{Position: PositionAt, Volatility: VolatilityLow}},
		{"unknown volatility", PriceEvaluation{Position: PositionAt, GapPercent: f(0), Volatility: VolatilityUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := DecideBuy(tt.eval, 3)
			assert.Equal(t, OutcomeInsufficientData, decision.Outcome)
			assert.Equal(t, RuleInsufficientData, decision.RuleTriggered)
			assert.Equal(t, ActionNeutral, decision.Action)
		})
	}
}

func TestDecideBuy_ZeroGapIsValid(t *testing.T) {
	decision := DecideBuy(PriceEvaluation{Position: PositionAt, GapPercent: f(0), Volatility: VolatilityLow}, 3)
	assert.Equal(t, RuleMarketEquilibrium, decision.RuleTriggered)
}
