package main

import (
	"fmt"
	"math"
)

// RegressionStats is a single ordinary-least-squares snapshot over the full
// paired-returns sample, fitting returnA = Alpha + Beta*returnB. Standard
// errors need n-2 degrees of freedom, so a two-point sample carries valid
// point estimates with HasStdErrors false and the error fields zeroed.
type RegressionStats struct {
	N             int     `json:"n"`
	Beta          float64 `json:"beta"`
	Alpha         float64 `json:"alpha"`
	PearsonR      float64 `json:"pearson_r"`
	RSquared      float64 `json:"r_squared"`
	StdDevError   float64 `json:"std_dev_error"`
	StdErrorBeta  float64 `json:"std_error_beta"`
	StdErrorAlpha float64 `json:"std_error_alpha"`
	HasStdErrors  bool    `json:"has_std_errors"`
}

// fitReturnsRegression fits OLS beta/alpha over the whole sample with returnB
// as the independent variable. Fewer than two pairs is insufficient data; zero
// variance in the independent side leaves beta undefined and is reported as
// degenerate, never as a silent Inf or NaN.
func fitReturnsRegression(returns []ReturnPoint) (RegressionStats, error) {
	n := len(returns)
	if n < 2 {
		return RegressionStats{}, fmt.Errorf("regression needs at least 2 paired returns, have %d: %w", n, errInsufficientData)
	}

	var sumX, sumY float64
	for _, point := range returns {
		sumX += point.ReturnB
		sumY += point.ReturnA
	}
	meanX, meanY := sumX/float64(n), sumY/float64(n)

	var ssXX, ssYY, ssXY float64
	for _, point := range returns {
		dx := point.ReturnB - meanX
		dy := point.ReturnA - meanY
		ssXX += dx * dx
		ssYY += dy * dy
		ssXY += dx * dy
	}
	if ssXX == 0 {
		return RegressionStats{}, fmt.Errorf("regression: independent returns have zero variance: %w", errDegenerateInput)
	}

	beta := ssXY / ssXX
	alpha := meanY - beta*meanX

	// Same zero-variance clamp as the rolling windows: a flat dependent side
	// has no defined correlation with anything.
	pearsonR := 0.0
	if ssYY > 0 {
		pearsonR = ssXY / math.Sqrt(ssXX*ssYY)
	}

	stats := RegressionStats{
		N:        n,
		Beta:     beta,
		Alpha:    alpha,
		PearsonR: pearsonR,
		RSquared: pearsonR * pearsonR,
	}
	if n == 2 {
		return stats, nil
	}

	var ssResidual float64
	for _, point := range returns {
		residual := point.ReturnA - (alpha + beta*point.ReturnB)
		ssResidual += residual * residual
	}
	stats.StdDevError = math.Sqrt(ssResidual / float64(n-2))
	stats.StdErrorBeta = stats.StdDevError / math.Sqrt(ssXX)
	stats.StdErrorAlpha = stats.StdDevError * math.Sqrt(1/float64(n)+meanX*meanX/ssXX)
	stats.HasStdErrors = true

	return stats, nil
}
