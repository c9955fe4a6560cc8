package prediction

import (
	"context"
	"fmt"

	"github.com/aristath/productpulse/internal/modules/analysis"
	"github.com/aristath/productpulse/internal/modules/narrative"
	"github.com/aristath/productpulse/pkg/formulas"
	"github.com/rs/zerolog"
)

// Decision is the final presentation-level verdict
type Decision string

const (
	DecisionBuy     Decision = "BUY"
	DecisionWait    Decision = "WAIT"
	DecisionDontBuy Decision = "DONT_BUY"
)

// FinalRecommendation reconciles the classifier verdict with the rule ladder
type FinalRecommendation struct {
	FinalDecision   Decision      `json:"final_decision"`
	Confidence      float64       `json:"confidence"`
	MLDecision      Decision      `json:"ml_decision"`
	Reasoning       []string      `json:"reasoning"`
	ReasoningSource string        `json:"reasoning_source"`
	RuleOverride    string        `json:"rule_override,omitempty"`
	FeatureSnapshot FeatureVector `json:"feature_snapshot"`
}

// Synthesizer produces the final recommendation for an analysis
type Synthesizer struct {
	classifier Classifier
	runner     *narrative.Runner
	log        zerolog.Logger
}

// NewSynthesizer creates a synthesizer. A nil runner always uses fallback reasoning.
func NewSynthesizer(classifier Classifier, runner *narrative.Runner, log zerolog.Logger) *Synthesizer {
	return &Synthesizer{
		classifier: classifier,
		runner:     runner,
		log:        log.With().Str("service", "prediction").Logger(),
	}
}

// Predict runs the classifier over the analysis features.
// It is the only step that can fail; the error wraps ErrClassifierUnavailable
// or ErrInvalidProbabilities.
func (s *Synthesizer) Predict(out analysis.AnalysisOutput) (FeatureVector, Decision, float64, error) {
	features := BuildFeatures(&out)
	if s.classifier == nil {
		return features, "", 0, ErrClassifierUnavailable
	}

	probs, err := s.classifier.PredictProba(features)
	if err != nil {
		return features, "", 0, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	if err := ValidateProbabilities(probs); err != nil {
		return features, "", 0, err
	}

	decision, confidence := DecisionFromProbabilities(probs)
	return features, decision, confidence, nil
}

// Synthesize predicts, reconciles with the rule ladder and attaches reasoning.
// Narrator failures never fail the call.
func (s *Synthesizer) Synthesize(ctx context.Context, out analysis.AnalysisOutput) (FinalRecommendation, error) {
	features, mlDecision, confidence, err := s.Predict(out)
	if err != nil {
		return FinalRecommendation{}, err
	}

	final, override := Reconcile(mlDecision, out)
	rec := FinalRecommendation{
		FinalDecision:   final,
		Confidence:      confidence,
		MLDecision:      mlDecision,
		RuleOverride:    override,
		FeatureSnapshot: features,
	}
	rec.Reasoning, rec.ReasoningSource = s.reasoning(ctx, mlDecision, confidence, out)

	return rec, nil
}

func (s *Synthesizer) reasoning(ctx context.Context, decision Decision, confidence float64, out analysis.AnalysisOutput) ([]string, string) {
	text, err := s.runner.Generate(ctx, ReasoningPrompt(decision, confidence, out))
	if err != nil {
		s.log.Warn().Err(err).Str("product", out.ProductName).Msg("Reasoning generation failed, using fallback")
		return FallbackReasoning(narrative.Describe(err)), ReasoningSourceFallback
	}
	return ParseReasoning(text), ReasoningSourceNarrator
}

// DecisionFromProbabilities picks the argmax class; ties go to WAIT.
// Confidence is the winning probability rounded to two decimals.
func DecisionFromProbabilities(probs []float64) (Decision, float64) {
	if probs[1] > probs[0] {
		return DecisionBuy, formulas.Round(probs[1], 2)
	}
	return DecisionWait, formulas.Round(probs[0], 2)
}

// Reconcile overrides the classifier with DONT_BUY when the rule ladder
// found the price above market and the listing is flagged as overpriced.
// The second value names the rule that forced the override.
func Reconcile(mlDecision Decision, out analysis.AnalysisOutput) (Decision, string) {
	eval := out.PriceEvaluation
	if out.BuyDecision.RuleTriggered == analysis.RuleAboveMarket &&
		analysis.IsOverpriced(eval.CurrentPrice, eval.AveragePrice) {
		return DecisionDontBuy, analysis.RuleAboveMarket
	}
	return mlDecision, ""
}
