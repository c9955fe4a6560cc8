// Package formulas provides the numeric helpers used by the market and analysis stages.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values.
// Finite inputs always give a finite mean; values whose sum overflows are
// averaged by scaling each term first.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	mean := stat.Mean(data, nil)
	if !math.IsInf(mean, 0) {
		return mean
	}

	n := float64(len(data))
	var scaled float64
	for _, v := range data {
		scaled += v / n
	}
	return scaled
}


// Min returns the smallest value, or 0 for an empty slice
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Min(data)
}

// Max returns the largest value, or 0 for an empty slice
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Max(data)
}

// PercentDiff returns (value - reference) / reference * 100.
// Callers must guard against a zero reference.
func PercentDiff(value, reference float64) float64 {
	return (value - reference) / reference * 100
}

// SpreadPercent returns (highest - lowest) / average * 100
func SpreadPercent(highest, lowest, average float64) float64 {
	return (highest - lowest) / average * 100
}

// Round rounds half away from zero to the given number of decimals
// Values too large to scale carry no fractional digits and are returned unchanged.
func Round(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	scaled := value * pow
	if math.IsInf(scaled, 0) {
		return value
	}
	return math.Round(scaled) / pow
}

// Clamp bounds value to [lo, hi]
func Clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}

// Sigmoid is the logistic function 1 / (1 + e^-z)
func Sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// IsFinite reports whether v is neither NaN nor ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
