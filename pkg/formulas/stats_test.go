package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.InDelta(t, 100.0, Mean([]float64{95, 100, 105, 98, 102}), 1e-9)
	assert.Equal(t, 0.0, Mean(nil))
}

func TestMinMax(t *testing.T) {
	prices := []float64{95, 100, 105, 98, 102}

	assert.Equal(t, 95.0, Min(prices))
	assert.Equal(t, 105.0, Max(prices))
	assert.Equal(t, 0.0, Min(nil))
	assert.Equal(t, 0.0, Max([]float64{}))
}

func TestPercentDiff(t *testing.T) {
	assert.InDelta(t, -10.0, PercentDiff(90, 100), 1e-9)
	assert.InDelta(t, 20.0, PercentDiff(120, 100), 1e-9)
}

func TestSpreadPercent(t *testing.T) {
	assert.InDelta(t, 10.0, SpreadPercent(105, 95, 100), 1e-9)
}

func TestRound(t *testing.T) {
	testCases := []struct {
		value    float64
		decimals int
		expected float64
	}{
		{1.005001, 2, 1.01},
		{-3.14159, 2, -3.14},
		{0.8333333, 3, 0.833},
		{2.5, 0, 3},
	}

	for _, tc := range testCases {
		assert.InDelta(t, tc.expected, Round(tc.value, tc.decimals), 1e-12)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(1.7, 0, 1))
	assert.Equal(t, 0.0, Clamp(-0.2, 0, 1))
	assert.Equal(t, 0.4, Clamp(0.4, 0, 1))
}

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, Sigmoid(0), 1e-12)
	assert.Greater(t, Sigmoid(5), 0.99)
	assert.Less(t, Sigmoid(-5), 0.01)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.5))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
}

func TestMean_LargeValuesStayFinite(t *testing.T) {
	mean := Mean([]float64{1e308, 1e308})
	assert.True(t, IsFinite(mean))
	assert.InDelta(t, 1e308, mean, 1e293)

	assert.InDelta(t, 1.375e308, Mean([]float64{1e308, 1.7e308, 1.8e308, 1e308}), 1e294)
}

func TestRound_LargeValues(t *testing.T) {
	assert.Equal(t, 1e307, Round(1e307, 2))
}
