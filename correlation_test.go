package main

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func returnsFixture(pairs [][2]float64) []ReturnPoint {
	returns := make([]ReturnPoint, len(pairs))
	for i, pair := range pairs {
		returns[i] = ReturnPoint{
			Date:    day("2024-01-01").AddDate(0, 0, i),
			ReturnA: pair[0],
			ReturnB: pair[1],
		}
	}
	return returns
}

func TestRollingCorrelation_WindowCountsAndDates(t *testing.T) {
	returns := returnsFixture([][2]float64{
		{1.0, 0.5}, {-0.5, 0.2}, {2.1, 1.8}, {0.3, -0.4}, {-1.2, -0.9}, {0.8, 1.1},
	})

	points, err := rollingCorrelation(returns, 3)
	require.NoError(t, err)
	require.Len(t, points, 4, "n-window+1 windows")

	// One point per window-end date, starting at index window-1.
	for i, point := range points {
		assert.Equal(t, returns[i+2].Date, point.Date)
		assert.GreaterOrEqual(t, point.Correlation, -1.0)
		assert.LessOrEqual(t, point.Correlation, 1.0)
	}
}

func TestRollingCorrelation_WindowLargerThanSample(t *testing.T) {
	returns := returnsFixture([][2]float64{{1, 1}, {2, 2}, {3, 3}})

	points, err := rollingCorrelation(returns, 5)
	require.NoError(t, err, "too little data is an empty result, not an error")
	assert.Empty(t, points)
}

func TestRollingCorrelation_WindowBelowTwoIsDegenerate(t *testing.T) {
	returns := returnsFixture([][2]float64{{1, 1}, {2, 2}, {3, 3}})

	for _, window := range []int{1, 0, -3} {
		_, err := rollingCorrelation(returns, window)
		require.Error(t, err, fmt.Sprintf("window=%d", window))
		assert.ErrorIs(t, err, errDegenerateInput)
	}
}

func TestRollingCorrelation_SelfCorrelationIsOne(t *testing.T) {
	pairs := make([][2]float64, 12)
	for i := range pairs {
		value := math.Sin(float64(i)) * 3
		pairs[i] = [2]float64{value, value}
	}

	points, err := rollingCorrelation(returnsFixture(pairs), 4)
	require.NoError(t, err)
	require.NotEmpty(t, points)
	for _, point := range points {
		assert.InDelta(t, 1.0, point.Correlation, 1e-9)
	}
}

func TestRollingCorrelation_NegationIsMinusOne(t *testing.T) {
	pairs := make([][2]float64, 12)
	for i := range pairs {
		value := math.Sin(float64(i)) * 3
		pairs[i] = [2]float64{value, -value}
	}

	points, err := rollingCorrelation(returnsFixture(pairs), 4)
	require.NoError(t, err)
	require.NotEmpty(t, points)
	for _, point := range points {
		assert.InDelta(t, -1.0, point.Correlation, 1e-9)
	}
}

func TestRollingCorrelation_FlatWindowClampsToZero(t *testing.T) {
	// B side never moves, so every window has zero variance in x.
	pairs := [][2]float64{{1.2, 0.5}, {-0.7, 0.5}, {2.4, 0.5}, {0.1, 0.5}, {-1.5, 0.5}}

	points, err := rollingCorrelation(returnsFixture(pairs), 3)
	require.NoError(t, err)
	require.Len(t, points, 3)
	for _, point := range points {
		assert.Equal(t, 0.0, point.Correlation, "zero-variance windows clamp to 0, never NaN")
	}
}

func TestRollingCorrelation_FullWindowMatchesRegressionPearson(t *testing.T) {
	pairs := [][2]float64{
		{1.3, 0.9}, {-0.2, 0.4}, {2.6, 1.7}, {-1.1, -0.6}, {0.7, 0.2}, {1.9, 2.2}, {-0.8, -1.4},
	}
	returns := returnsFixture(pairs)

	points, err := rollingCorrelation(returns, len(returns))
	require.NoError(t, err)
	require.Len(t, points, 1, "full-sample window produces exactly one point")

	stats, err := fitReturnsRegression(returns)
	require.NoError(t, err)
	assert.InDelta(t, stats.PearsonR, points[0].Correlation, 1e-12)
}
