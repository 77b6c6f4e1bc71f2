package main

import (
	"fmt"
	"math"
	"time"
)

// CorrelationPoint is the Pearson correlation of the window of paired returns
// ending on Date, always in [-1,1].
type CorrelationPoint struct {
	Date        time.Time `json:"date"`
	Correlation float64   `json:"correlation"`
}

// rollingCorrelation slides a window of the given size over the paired returns
// and emits one correlation per window-end date, so n returns produce
// max(0, n-window+1) points. Fewer returns than the window is a valid, empty
// result. Windows are recomputed naively; at a few thousand points that is
// cheaper than it sounds and keeps each window numerically independent.
func rollingCorrelation(returns []ReturnPoint, window int) ([]CorrelationPoint, error) {
	if window < 2 {
		return nil, fmt.Errorf("correlation window must be at least 2, got %d: %w", window, errDegenerateInput)
	}
	if len(returns) < window {
		return []CorrelationPoint{}, nil
	}
	points := make([]CorrelationPoint, 0, len(returns)-window+1)
	for end := window - 1; end < len(returns); end++ {
		points = append(points, CorrelationPoint{
			Date:        returns[end].Date,
			Correlation: pairedCorrelation(returns[end-window+1 : end+1]),
		})
	}
	return points, nil
}

// pairedCorrelation computes the Pearson product-moment correlation of one
// slice of paired returns, with returnB as x and returnA as y. A zero-variance
// slice (a flat run on either side) has no defined correlation; the contract
// clamps that case to 0.0 so downstream charts never see NaN.
func pairedCorrelation(slice []ReturnPoint) float64 {
	n := float64(len(slice))
	if n == 0 {
		return 0
	}

	var sumX, sumY float64
	for _, point := range slice {
		sumX += point.ReturnB
		sumY += point.ReturnA
	}
	meanX, meanY := sumX/n, sumY/n

	var ssXX, ssYY, ssXY float64
	for _, point := range slice {
		dx := point.ReturnB - meanX
		dy := point.ReturnA - meanY
		ssXX += dx * dx
		ssYY += dy * dy
		ssXY += dx * dy
	}

	if ssXX*ssYY <= 0 {
		return 0
	}
	return ssXY / math.Sqrt(ssXX*ssYY)
}
