package main

import (
	"fmt"
	"time"
)

// ReturnPoint pairs the simple percentage returns of both symbols for the
// transition ending on Date. A sequence of n aligned points yields n-1 returns.
type ReturnPoint struct {
	Date    time.Time `json:"date"`
	ReturnA float64   `json:"return_a"`
	ReturnB float64   `json:"return_b"`
}

// calcPairedReturns derives simple percentage returns, (curr-prev)/prev*100 per
// side, from an ascending aligned sequence. A zero prior price means corrupt
// upstream data, so the whole calculation aborts as degenerate instead of
// skipping the bad transition.
func calcPairedReturns(aligned []AlignedPoint) ([]ReturnPoint, error) {
	returns := make([]ReturnPoint, 0, max(0, len(aligned)-1))
	for i := 1; i < len(aligned); i++ {
		prev, curr := aligned[i-1], aligned[i]
		if prev.PriceA == 0 || prev.PriceB == 0 {
			return nil, fmt.Errorf("return ending %s: prior price is zero: %w",
				curr.Date.Format(dateKeyFormat), errDegenerateInput)
		}
		returns = append(returns, ReturnPoint{
			Date:    curr.Date,
			ReturnA: (curr.PriceA - prev.PriceA) / prev.PriceA * 100,
			ReturnB: (curr.PriceB - prev.PriceB) / prev.PriceB * 100,
		})
	}
	return returns, nil
}
