package main

import (
	"fmt"
	"sort"
	"time"
)

// PricePoint is one closing price for one trading day, as returned by the
// price history provider. Gaps (holidays, missing data) are expected.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// AlignedPoint exists only for dates found in both input series.
type AlignedPoint struct {
	Date   time.Time `json:"date"`
	PriceA float64   `json:"price_a"`
	PriceB float64   `json:"price_b"`
	Ratio  float64   `json:"ratio"`
}

type PricePoints []PricePoint

func (p PricePoints) Len() int           { return len(p) }
func (p PricePoints) Less(i, j int) bool { return p[i].Date.Before(p[j].Date) }
func (p PricePoints) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

// alignPriceSeries intersects two price series by trading day and emits the
// common dates in ascending calendar order, each with ratio = priceA/priceB.
// Input order doesn't matter. Empty inputs or no overlap give an empty result;
// a zero price on the B side makes the ratio undefined and fails the whole
// alignment as degenerate rather than letting Inf leak downstream.
func alignPriceSeries(seriesA, seriesB []PricePoint) ([]AlignedPoint, error) {
	pricesA := make(map[string]float64, len(seriesA))
	for _, point := range seriesA {
		pricesA[point.Date.Format(dateKeyFormat)] = point.Close
	}
	pricesB := make(map[string]float64, len(seriesB))
	for _, point := range seriesB {
		pricesB[point.Date.Format(dateKeyFormat)] = point.Close
	}

	commonDates := make([]time.Time, 0, len(pricesA))
	for key := range pricesA {
		if _, ok := pricesB[key]; ok {
			date, _ := time.Parse(dateKeyFormat, key)
			commonDates = append(commonDates, date)
		}
	}
	sort.Slice(commonDates, func(i, j int) bool { return commonDates[i].Before(commonDates[j]) })

	aligned := make([]AlignedPoint, 0, len(commonDates))
	for _, date := range commonDates {
		key := date.Format(dateKeyFormat)
		priceA, priceB := pricesA[key], pricesB[key]
		if priceB == 0 {
			return nil, fmt.Errorf("aligning %s: price on B side is zero: %w", key, errDegenerateInput)
		}
		aligned = append(aligned, AlignedPoint{
			Date:   date,
			PriceA: priceA,
			PriceB: priceB,
			Ratio:  priceA / priceB,
		})
	}
	return aligned, nil
}
