package main

import "fmt"

// Extrema holds the positions of the minimum and maximum values in a series,
// used to place chart annotation markers.
type Extrema struct {
	MinIndex int `json:"min_index"`
	MaxIndex int `json:"max_index"`
}

// locateExtrema finds the first occurrence of the minimum and maximum values
// in any series, with the comparison value pulled out by the value func. Ties
// go to the leftmost index. The same locator serves price, ratio, correlation,
// and fiscal-metric series; an empty series has no extrema to locate.
func locateExtrema[T any](series []T, value func(T) float64) (Extrema, error) {
	if len(series) == 0 {
		return Extrema{}, fmt.Errorf("locating extrema of empty series: %w", errInsufficientData)
	}
	extrema := Extrema{}
	minValue, maxValue := value(series[0]), value(series[0])
	for i := 1; i < len(series); i++ {
		v := value(series[i])
		if v < minValue {
			minValue = v
			extrema.MinIndex = i
		}
		if v > maxValue {
			maxValue = v
			extrema.MaxIndex = i
		}
	}
	return extrema, nil
}
