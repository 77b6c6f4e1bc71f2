package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitReturnsRegression_PerfectLine(t *testing.T) {
	// Noiseless y = 2x + 3 must be recovered exactly.
	xs := []float64{-3, -1, 0, 1.5, 2, 4, 5.5}
	pairs := make([][2]float64, len(xs))
	for i, x := range xs {
		pairs[i] = [2]float64{2*x + 3, x}
	}

	stats, err := fitReturnsRegression(returnsFixture(pairs))
	require.NoError(t, err)

	assert.InDelta(t, 2.0, stats.Beta, 1e-9)
	assert.InDelta(t, 3.0, stats.Alpha, 1e-9)
	assert.InDelta(t, 1.0, stats.RSquared, 1e-9)
	assert.InDelta(t, 0.0, stats.StdDevError, 1e-9)
	assert.True(t, stats.HasStdErrors)
	assert.InDelta(t, 0.0, stats.StdErrorBeta, 1e-9)
	assert.InDelta(t, 0.0, stats.StdErrorAlpha, 1e-9)
	assert.Equal(t, len(xs), stats.N)
}

func TestFitReturnsRegression_NoisyRecovery(t *testing.T) {
	// Deterministic pseudo-noise keeps the test reproducible without seeding.
	pairs := make([][2]float64, 120)
	for i := range pairs {
		x := math.Sin(float64(i)*0.7) * 2.5
		noise := math.Sin(float64(i)*13.37) * 0.2
		pairs[i] = [2]float64{1.5*x + 0.5 + noise, x}
	}

	stats, err := fitReturnsRegression(returnsFixture(pairs))
	require.NoError(t, err)

	assert.InDelta(t, 1.5, stats.Beta, 0.1)
	assert.InDelta(t, 0.5, stats.Alpha, 0.1)
	assert.Greater(t, stats.RSquared, 0.9)
	assert.True(t, stats.HasStdErrors)
	assert.Greater(t, stats.StdDevError, 0.0)
	assert.Greater(t, stats.StdErrorBeta, 0.0)
	assert.Greater(t, stats.StdErrorAlpha, 0.0)
}

func TestFitReturnsRegression_InsufficientData(t *testing.T) {
	_, err := fitReturnsRegression(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errInsufficientData)

	_, err = fitReturnsRegression(returnsFixture([][2]float64{{1, 2}}))
	require.Error(t, err)
	assert.ErrorIs(t, err, errInsufficientData)
}

func TestFitReturnsRegression_ZeroVarianceXIsDegenerate(t *testing.T) {
	pairs := [][2]float64{{1.0, 0.4}, {2.0, 0.4}, {3.0, 0.4}}

	_, err := fitReturnsRegression(returnsFixture(pairs))
	require.Error(t, err)
	assert.ErrorIs(t, err, errDegenerateInput)
}

func TestFitReturnsRegression_TwoPointsScenario(t *testing.T) {
	// The hand-computable scenario: prices A=[100,110,105], B=[50,52,49] give
	// exactly two paired returns, and a two-point fit is the line through them.
	aligned := alignedFixture(
		[]string{"2024-03-04", "2024-03-05", "2024-03-06"},
		[]float64{100, 110, 105},
		[]float64{50, 52, 49})
	returns, err := calcPairedReturns(aligned)
	require.NoError(t, err)
	require.Len(t, returns, 2)

	stats, err := fitReturnsRegression(returns)
	require.NoError(t, err)

	x1, y1 := returns[0].ReturnB, returns[0].ReturnA
	x2, y2 := returns[1].ReturnB, returns[1].ReturnA
	expectedBeta := (y2 - y1) / (x2 - x1)
	expectedAlpha := (y1+y2)/2 - expectedBeta*(x1+x2)/2

	assert.InDelta(t, expectedBeta, stats.Beta, 1e-12)
	assert.InDelta(t, expectedAlpha, stats.Alpha, 1e-12)
	assert.InDelta(t, 1.0, stats.RSquared, 1e-12, "two distinct points always fit perfectly")

	// n-2 == 0 leaves no degrees of freedom for standard errors.
	assert.False(t, stats.HasStdErrors)
	assert.Equal(t, 0.0, stats.StdDevError)
	assert.Equal(t, 0.0, stats.StdErrorBeta)
	assert.Equal(t, 0.0, stats.StdErrorAlpha)
}

func TestFitReturnsRegression_FlatYClampsPearson(t *testing.T) {
	pairs := [][2]float64{{2.0, -1.0}, {2.0, 0.5}, {2.0, 1.5}, {2.0, 3.0}}

	stats, err := fitReturnsRegression(returnsFixture(pairs))
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.Beta)
	assert.InDelta(t, 2.0, stats.Alpha, 1e-12)
	assert.Equal(t, 0.0, stats.PearsonR, "flat dependent side clamps correlation to 0")
	assert.Equal(t, 0.0, stats.RSquared)
	assert.True(t, stats.HasStdErrors)
	assert.InDelta(t, 0.0, stats.StdDevError, 1e-12)
}
