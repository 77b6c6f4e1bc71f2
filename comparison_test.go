package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comparisonFixture() (ComparisonRequest, []PricePoint, []PricePoint, []FiscalRatioRecord, []FiscalRatioRecord) {
	request := ComparisonRequest{
		SymbolA:  "AAPL",
		SymbolB:  "MSFT",
		Timespan: 30,
		Window:   3,
		Metric:   "priceEarningsRatio",
	}

	dates := []string{
		"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
		"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11",
	}
	pricesA := []float64{185.5, 183.2, 186.9, 189.0, 187.4, 190.2, 192.8, 191.1}
	pricesB := []float64{370.1, 368.4, 373.3, 377.2, 374.0, 379.6, 384.1, 382.5}

	seriesA := make([]PricePoint, len(dates))
	seriesB := make([]PricePoint, len(dates))
	for i := range dates {
		seriesA[i] = PricePoint{Date: day(dates[i]), Close: pricesA[i]}
		seriesB[i] = PricePoint{Date: day(dates[i]), Close: pricesB[i]}
	}

	ratiosA := []FiscalRatioRecord{ratioRecord("2022", metricValue(28.4)), ratioRecord("2023", metricValue(25.0))}
	ratiosB := []FiscalRatioRecord{ratioRecord("2022", metricValue(30.1)), ratioRecord("2023", metricValue(33.7))}

	return request, seriesA, seriesB, ratiosA, ratiosB
}

func TestBuildComparisonData_FullPipeline(t *testing.T) {
	request, seriesA, seriesB, ratiosA, ratiosB := comparisonFixture()

	data := buildComparisonData(request,
		Ticker{TickerSymbol: "AAPL"}, Ticker{TickerSymbol: "MSFT"},
		seriesA, seriesB, ratiosA, ratiosB)

	require.Len(t, data.Aligned, len(seriesA))
	require.Len(t, data.Returns, len(seriesA)-1)
	require.Len(t, data.Correlations, len(seriesA)-1-request.Window+1)
	assert.True(t, data.HasRegression)
	assert.True(t, data.Regression.HasStdErrors)
	assert.Len(t, data.FiscalRatios, 2)

	require.NotNil(t, data.RatioExtrema)
	require.NotNil(t, data.CorrelationExtrema)
	require.NotNil(t, data.MetricExtrema)
	assert.Less(t, data.RatioExtrema.MinIndex, len(data.Aligned))
	assert.Less(t, data.CorrelationExtrema.MaxIndex, len(data.Correlations))

	assert.Empty(t, data.Notes, "a healthy comparison has nothing to apologize for")
}

func TestBuildComparisonData_NoOverlapDegrades(t *testing.T) {
	request, seriesA, _, ratiosA, ratiosB := comparisonFixture()
	farB := []PricePoint{
		{Date: day("2020-06-01"), Close: 200},
		{Date: day("2020-06-02"), Close: 201},
	}

	data := buildComparisonData(request, Ticker{}, Ticker{}, seriesA, farB, ratiosA, ratiosB)

	assert.Empty(t, data.Aligned)
	assert.Empty(t, data.Returns)
	assert.Empty(t, data.Correlations)
	assert.False(t, data.HasRegression)
	assert.Nil(t, data.RatioExtrema)
	assert.NotEmpty(t, data.Notes)

	// The fiscal pipeline is independent of price data and still runs.
	assert.Len(t, data.FiscalRatios, 2)
	assert.NotNil(t, data.MetricExtrema)
}

func TestBuildComparisonData_WindowLargerThanReturns(t *testing.T) {
	request, seriesA, seriesB, ratiosA, ratiosB := comparisonFixture()
	request.Window = 100

	data := buildComparisonData(request, Ticker{}, Ticker{}, seriesA, seriesB, ratiosA, ratiosB)

	assert.Empty(t, data.Correlations)
	assert.Nil(t, data.CorrelationExtrema)
	assert.NotEmpty(t, data.Notes)
	assert.True(t, data.HasRegression, "the full-sample regression doesn't care about the window")
}

func TestBuildComparisonData_ZeroPriceDegrades(t *testing.T) {
	request, seriesA, seriesB, ratiosA, ratiosB := comparisonFixture()
	seriesB[3].Close = 0

	data := buildComparisonData(request, Ticker{}, Ticker{}, seriesA, seriesB, ratiosA, ratiosB)

	assert.Empty(t, data.Aligned)
	assert.False(t, data.HasRegression)
	assert.NotEmpty(t, data.Notes)
	assert.Len(t, data.FiscalRatios, 2)
}

func TestComparisonRequest_CacheKey(t *testing.T) {
	request := ComparisonRequest{SymbolA: "AAPL", SymbolB: "MSFT", Timespan: 365, Window: 120, Metric: "priceEarningsRatio"}
	assert.Equal(t, "comparison/AAPL/MSFT/365/120/priceEarningsRatio", request.CacheKey())
}
