package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricValue(v float64) *float64 { return &v }

func ratioRecord(year string, pe *float64) FiscalRatioRecord {
	return FiscalRatioRecord{
		Date:         year + "-12-31",
		CalendarYear: year,
		Metrics:      map[string]*float64{"priceEarningsRatio": pe, "returnOnEquity": metricValue(0.15)},
	}
}

func TestAlignFiscalRatios_YearIntersection(t *testing.T) {
	recordsA := []FiscalRatioRecord{
		ratioRecord("2021", metricValue(31.1)),
		ratioRecord("2022", metricValue(28.4)),
		ratioRecord("2023", metricValue(25.0)),
	}
	recordsB := []FiscalRatioRecord{
		ratioRecord("2022", metricValue(14.2)),
		ratioRecord("2023", metricValue(16.8)),
	}

	points := alignFiscalRatios(recordsA, recordsB, "priceEarningsRatio")
	require.Len(t, points, 2)
	assert.Equal(t, "2022", points[0].Year)
	assert.Equal(t, "2023", points[1].Year)

	pe, ok := points[0].RecordA.Metric("priceEarningsRatio")
	require.True(t, ok)
	assert.InDelta(t, 28.4, pe, 1e-12)
}

func TestAlignFiscalRatios_NullMetricDropsYear(t *testing.T) {
	recordsA := []FiscalRatioRecord{
		ratioRecord("2022", metricValue(28.4)),
		ratioRecord("2023", metricValue(25.0)),
	}
	recordsB := []FiscalRatioRecord{
		ratioRecord("2022", nil),
		ratioRecord("2023", metricValue(16.8)),
	}

	points := alignFiscalRatios(recordsA, recordsB, "priceEarningsRatio")
	require.Len(t, points, 1, "the null-metric year drops out")
	assert.Equal(t, "2023", points[0].Year)

	// The other metric is intact in both 2022 records, so selecting it keeps the year.
	points = alignFiscalRatios(recordsA, recordsB, "returnOnEquity")
	assert.Len(t, points, 2)
}

func TestAlignFiscalRatios_NonFiniteMetricDropsYear(t *testing.T) {
	recordsA := []FiscalRatioRecord{
		ratioRecord("2022", metricValue(math.NaN())),
		ratioRecord("2023", metricValue(25.0)),
	}
	recordsB := []FiscalRatioRecord{
		ratioRecord("2022", metricValue(14.2)),
		ratioRecord("2023", metricValue(math.Inf(1))),
	}

	points := alignFiscalRatios(recordsA, recordsB, "priceEarningsRatio")
	assert.Empty(t, points, "NaN on one side, Inf on the other, nothing aligns")
}

func TestAlignFiscalRatios_FiscalYearFallsBackToDate(t *testing.T) {
	recordsA := []FiscalRatioRecord{
		{Date: "2022-09-30", Metrics: map[string]*float64{"priceEarningsRatio": metricValue(20.5)}},
		{Date: "2023-09-30", Metrics: map[string]*float64{"priceEarningsRatio": metricValue(22.0)}},
		{Metrics: map[string]*float64{"priceEarningsRatio": metricValue(9.9)}},
	}
	recordsB := []FiscalRatioRecord{
		ratioRecord("2022", metricValue(14.2)),
		ratioRecord("2023", metricValue(16.8)),
	}

	points := alignFiscalRatios(recordsA, recordsB, "priceEarningsRatio")
	require.Len(t, points, 2, "the keyless record is unusable, the dated ones align by date year")
	assert.Equal(t, "2022", points[0].Year)
	assert.Equal(t, "2023", points[1].Year)
}

func TestAlignFiscalRatios_ShortResultIsValid(t *testing.T) {
	recordsA := []FiscalRatioRecord{ratioRecord("2023", metricValue(25.0))}
	recordsB := []FiscalRatioRecord{ratioRecord("2023", metricValue(16.8))}

	points := alignFiscalRatios(recordsA, recordsB, "priceEarningsRatio")
	assert.Len(t, points, 1, "a single aligned year is a valid result, not an error")

	points = alignFiscalRatios(recordsA, nil, "priceEarningsRatio")
	assert.Empty(t, points)
}
