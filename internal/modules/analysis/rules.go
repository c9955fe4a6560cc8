package analysis

// Rule names reported in BuyDecision.RuleTriggered
const (
	RuleBelowMarketStable   = "BELOW_MARKET_STABLE_PRICE"
	RuleSlightlyBelowMarket = "SLIGHTLY_BELOW_MARKET_(LOW_VOLATILITY)"
	RuleAboveMarket         = "ABOVE_MARKET_PRICE"
	RuleHighVolatility      = "HIGH_PRICE_VOLATILITY"
	RuleMarketEquilibrium   = "MARKET_EQUILIBRIUM"
	RuleNoRuleTriggered     = "NO_RULE_TRIGGERED"
	RuleInsufficientData    = "INSUFFICIENT_DATA"
)

// RuleInput is what every rule in the ladder sees
type RuleInput struct {
	Position    Position
	GapPercent  float64
	Volatility  Volatility
	SellerCount int
}

// Rule is one rung of the decision ladder
type Rule struct {
	Name      string
	Action    Action
	Urgency   Urgency
	Rationale string
	Matches   func(in RuleInput) bool
}

// DecisionRules is the ordered rule ladder; the first match wins
var DecisionRules = []Rule{
	{
		Name:      RuleBelowMarketStable,
		Action:    ActionBuy,
		Urgency:   UrgencyHigh,
		Rationale: "The current price is significantly below the market average with multiple sellers available.",
		Matches: func(in RuleInput) bool {
			return in.Position == PositionBelow &&
				in.GapPercent <= -5 &&
				(in.Volatility == VolatilityLow || in.Volatility == VolatilityModerate) &&
				in.SellerCount >= 3
		},
	},
	{
		Name:      RuleSlightlyBelowMarket,
		Action:    ActionBuy,
		Urgency:   UrgencyMedium,
		Rationale: "The current price is moderately below the market average with low price volatility.",
		Matches: func(in RuleInput) bool {
			return in.Position == PositionBelow &&
				in.GapPercent > -5 && in.GapPercent < -2 &&
				in.Volatility == VolatilityLow
		},
	},
	{
		Name:      RuleAboveMarket,
		Action:    ActionWait,
		Urgency:   UrgencyLow,
		Rationale: "The current price is above the market average; consider waiting for a better deal.",
		Matches: func(in RuleInput) bool {
			return in.Position == PositionAbove && in.GapPercent >= 3
		},
	},
	{
		Name:      RuleHighVolatility,
		Action:    ActionWait,
		Urgency:   UrgencyMedium,
		Rationale: "High price volatility suggests waiting for a more stable price.",
		Matches: func(in RuleInput) bool {
			return in.Volatility == VolatilityHigh
		},
	},
	{
		Name:      RuleMarketEquilibrium,
		Action:    ActionNeutral,
		Urgency:   UrgencyLow,
		Rationale: "The current price is at the market average; no immediate action needed.",
		Matches: func(in RuleInput) bool {
			return in.Position == PositionAt ||
				(in.Position == PositionBelow && in.SellerCount == 1)
		},
	},
}

// DecideBuy runs the rule ladder over a price evaluation.
// The ladder only runs when position, gap and volatility are all known; the
// fall-through and missing-input cases are reported as explicit outcomes.
func DecideBuy(eval PriceEvaluation, sellerCount int) BuyDecision {
	if eval.Position == PositionUnknown || eval.Position == "" ||
		eval.GapPercent == nil ||
		eval.Volatility == VolatilityUnknown || eval.Volatility == "" {
		return BuyDecision{
			Action:        ActionNeutral,
			Urgency:       UrgencyLow,
			Rationale:     "Not enough price data to apply the decision rules.",
			RuleTriggered: RuleInsufficientData,
			Outcome:       OutcomeInsufficientData,
		}
	}

	return Decide(RuleInput{
		Position:    eval.Position,
		GapPercent:  *eval.GapPercent,
		Volatility:  eval.Volatility,
		SellerCount: sellerCount,
	})
}

// Decide returns the first matching rule, or the no-rule outcome
func Decide(in RuleInput) BuyDecision {
	for _, rule := range DecisionRules {
		if rule.Matches(in) {
			return BuyDecision{
				Action:        rule.Action,
				Urgency:       rule.Urgency,
				Rationale:     rule.Rationale,
				RuleTriggered: rule.Name,
				Outcome:       OutcomeRuleMatched,
			}
		}
	}

	return BuyDecision{
		Action:        ActionNeutral,
		Urgency:       UrgencyLow,
		Rationale:     "No decision rule matched the current market conditions.",
		RuleTriggered: RuleNoRuleTriggered,
		Outcome:       OutcomeNoRuleTriggered,
	}
}
