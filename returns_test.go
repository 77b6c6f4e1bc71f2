package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alignedFixture(dates []string, pricesA, pricesB []float64) []AlignedPoint {
	aligned := make([]AlignedPoint, len(dates))
	for i := range dates {
		aligned[i] = AlignedPoint{
			Date:   day(dates[i]),
			PriceA: pricesA[i],
			PriceB: pricesB[i],
			Ratio:  pricesA[i] / pricesB[i],
		}
	}
	return aligned
}

func TestCalcPairedReturns_Lengths(t *testing.T) {
	returns, err := calcPairedReturns(nil)
	require.NoError(t, err)
	assert.Empty(t, returns)

	returns, err = calcPairedReturns(alignedFixture([]string{"2024-01-01"}, []float64{100}, []float64{50}))
	require.NoError(t, err)
	assert.Empty(t, returns, "a single point has no transitions")

	returns, err = calcPairedReturns(alignedFixture(
		[]string{"2024-01-01", "2024-01-02", "2024-01-03"},
		[]float64{100, 110, 105},
		[]float64{50, 52, 49}))
	require.NoError(t, err)
	assert.Len(t, returns, 2)
}

func TestCalcPairedReturns_ScenarioValues(t *testing.T) {
	aligned := alignedFixture(
		[]string{"2024-03-04", "2024-03-05", "2024-03-06"},
		[]float64{100, 110, 105},
		[]float64{50, 52, 49})

	returns, err := calcPairedReturns(aligned)
	require.NoError(t, err)
	require.Len(t, returns, 2)

	// Each return is stamped with the date the transition ends on.
	assert.Equal(t, day("2024-03-05"), returns[0].Date)
	assert.Equal(t, day("2024-03-06"), returns[1].Date)

	assert.InDelta(t, 10.0, returns[0].ReturnA, 1e-9)
	assert.InDelta(t, 4.0, returns[0].ReturnB, 1e-9)
	assert.InDelta(t, -4.545454545, returns[1].ReturnA, 1e-6)
	assert.InDelta(t, -5.769230769, returns[1].ReturnB, 1e-6)
}

func TestCalcPairedReturns_CompoundingRoundTrip(t *testing.T) {
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-08"}
	pricesA := []float64{182.5, 179.2, 185.03, 184.99, 190.1, 188.88}
	pricesB := []float64{41.02, 41.77, 40.06, 42.4, 42.42, 43.0}
	aligned := alignedFixture(dates, pricesA, pricesB)

	returns, err := calcPairedReturns(aligned)
	require.NoError(t, err)
	require.Len(t, returns, len(dates)-1)

	compoundedA, compoundedB := pricesA[0], pricesB[0]
	for _, point := range returns {
		compoundedA *= 1 + point.ReturnA/100
		compoundedB *= 1 + point.ReturnB/100
	}
	assert.InDelta(t, pricesA[len(pricesA)-1], compoundedA, 1e-9)
	assert.InDelta(t, pricesB[len(pricesB)-1], compoundedB, 1e-9)
}

func TestCalcPairedReturns_ZeroPriorPriceIsDegenerate(t *testing.T) {
	aligned := []AlignedPoint{
		{Date: day("2024-01-01"), PriceA: 0, PriceB: 50, Ratio: 0},
		{Date: day("2024-01-02"), PriceA: 101, PriceB: 51, Ratio: 101.0 / 51.0},
	}

	_, err := calcPairedReturns(aligned)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDegenerateInput)
}
