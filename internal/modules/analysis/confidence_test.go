package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreConfidence(t *testing.T) {
	assert.Equal(t, 1.0, ScoreConfidence(5, VolatilityLow, PositionBelow, 1.0))
	assert.Equal(t, 0.7, ScoreConfidence(5, VolatilityModerate, PositionAt, 0.5))
	assert.Equal(t, 0.19, ScoreConfidence(1, VolatilityUnknown, PositionUnknown, 0.2))
	assert.Equal(t, 0.15, ScoreConfidence(0, VolatilityHigh, PositionUnknown, math.NaN()))
}

func TestScoreConfidence_BoundedAndMonotonic(t *testing.T) {
	volatilities := []Volatility{VolatilityLow, VolatilityModerate, VolatilityHigh, VolatilityUnknown}
	positions := []Position{PositionBelow, PositionAt, PositionAbove, PositionUnknown}

	for sellers := 0; sellers <= 8; sellers++ {
		for _, vol := range volatilities {
			for _, pos := range positions {
				prev := -1.0
				for step := -2; step <= 14; step++ {
					ratio := float64(step) / 10
					score := ScoreConfidence(sellers, vol, pos, ratio)

					assert.GreaterOrEqual(t, score, 0.0)
					assert.LessOrEqual(t, score, 1.0)
					assert.GreaterOrEqual(t, score, prev, "score decreased at ratio %.1f", ratio)
					prev = score
				}
			}
		}
	}
}
