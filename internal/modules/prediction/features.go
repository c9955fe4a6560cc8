// Package prediction reduces an analysis to the classifier feature vector,
// runs the BUY/WAIT classifier and synthesizes the final recommendation.
package prediction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aristath/productpulse/internal/modules/analysis"
	"github.com/aristath/productpulse/pkg/formulas"
)

// FeatureCount is the fixed length of the classifier input
const FeatureCount = 6

// FeatureNames lists the features in the order the classifier was trained on
var FeatureNames = [FeatureCount]string{
	"price_gap_percent",
	"price_spread_percent",
	"seller_count",
	"volatility_score",
	"competition_score",
	"confidence_score",
}

// Defaults applied when a feature cannot be derived
const (
	DefaultLevelScore      = 1.0
	DefaultConfidenceScore = 0.5
)

// FeatureVector is the ordered classifier input.
// It marshals to a JSON object keyed by FeatureNames.
type FeatureVector [FeatureCount]float64

var volatilityScores = map[analysis.Volatility]float64{
	analysis.VolatilityLow:      0,
	analysis.VolatilityModerate: 1,
	analysis.VolatilityHigh:     2,
}

var competitionScores = map[analysis.Level]float64{
	analysis.LevelLow:      0,
	analysis.LevelModerate: 1,
	analysis.LevelHigh:     2,
}

// BuildFeatures projects an analysis onto the feature vector.
// A nil analysis yields the all-defaults vector. Missing numbers default to 0,
// unknown tiers to 1 and a missing confidence to 0.5. The result never holds NaN.
func BuildFeatures(out *analysis.AnalysisOutput) FeatureVector {
	fv := FeatureVector{0, 0, 0, DefaultLevelScore, DefaultLevelScore, DefaultConfidenceScore}
	if out == nil {
		return fv
	}

	fv[0] = finiteOr(deref(out.PriceEvaluation.GapPercent), 0)
	fv[1] = finiteOr(deref(out.MarketAnalysis.PriceSpreadPercent), 0)
	fv[2] = float64(out.MarketAnalysis.SellerCount)

	if score, ok := volatilityScores[out.PriceEvaluation.Volatility]; ok {
		fv[3] = score
	}
	if score, ok := competitionScores[out.MarketAnalysis.CompetitionLevel]; ok {
		fv[4] = score
	}
	if out.ConfidenceScore != 0 {
		fv[5] = finiteOr(out.ConfidenceScore, DefaultConfidenceScore)
	}

	return fv
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func finiteOr(v, fallback float64) float64 {
	if !formulas.IsFinite(v) {
		return fallback
	}
	return v
}

// Slice returns the features as a slice in classifier order
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// MarshalJSON writes the features as an object in classifier order
func (v FeatureVector) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range FeatureNames {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(name))
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(v[i], 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object form written by MarshalJSON.
// Missing features take the builder defaults.
func (v *FeatureVector) UnmarshalJSON(data []byte) error {
	var named map[string]float64
	if err := json.Unmarshal(data, &named); err != nil {
		return fmt.Errorf("invalid feature vector: %w", err)
	}

	*v = BuildFeatures(nil)
	for i, name := range FeatureNames {
		if value, ok := named[name]; ok {
			v[i] = value
		}
	}
	return nil
}
