package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUnixTime(t *testing.T) {
	// 2024-01-05 14:30:00 UTC is 09:30 Eastern, the opening bell
	assert.Equal(t, "Jan 5 09:30", FormatUnixTime(1704465000, "Jan 2 15:04"))
	assert.Equal(t, "", FormatUnixTime(0, "Jan 2 15:04"))
	assert.Contains(t, FormatUnixTime(1704465000, ""), "EST", "default format carries the zone")
}

func TestUnixToDateStr(t *testing.T) {
	assert.Equal(t, "2024-01-05", UnixToDateStr(1704465000))
	// 01:00 UTC is still the prior evening on the exchange's clock
	assert.Equal(t, "2024-01-05", UnixToDateStr(1704502800))
}

func TestPriceDiffHelpers(t *testing.T) {
	assert.InDelta(t, 10.0, PriceDiffAmt(100, 110), 1e-12)
	assert.InDelta(t, -2.5, PriceDiffAmt(100, 97.5), 1e-12)
	assert.InDelta(t, 10.0, PriceDiffPercAmt(100, 110), 1e-12)
	assert.InDelta(t, -2.5, PriceDiffPercAmt(100, 97.5), 1e-12)
}

func TestPriceMoveColorCSS(t *testing.T) {
	assert.Equal(t, "text-success", PriceMoveColorCSS(1.5))
	assert.Equal(t, "text-danger", PriceMoveColorCSS(-0.2))
	assert.Equal(t, "", PriceMoveColorCSS(0))
}

func TestCorrelationColorCSS(t *testing.T) {
	assert.Equal(t, "text-success", CorrelationColorCSS(0.9))
	assert.Equal(t, "text-success", CorrelationColorCSS(0.7))
	assert.Equal(t, "text-danger", CorrelationColorCSS(-0.85))
	assert.Equal(t, "text-danger", CorrelationColorCSS(-0.7))
	assert.Equal(t, "text-warning", CorrelationColorCSS(0.5))
	assert.Equal(t, "text-warning", CorrelationColorCSS(-0.45))
	assert.Equal(t, "text-white", CorrelationColorCSS(0.1))
	assert.Equal(t, "text-white", CorrelationColorCSS(-0.39))
}

func TestBetaColorCSS(t *testing.T) {
	assert.Equal(t, "text-danger", BetaColorCSS(-0.1))
	assert.Equal(t, "text-warning", BetaColorCSS(2.0))
	assert.Equal(t, "text-white", BetaColorCSS(1.0))
	assert.Equal(t, "text-white", BetaColorCSS(0))
}

func TestRandStringMask(t *testing.T) {
	first := RandStringMask(32)
	second := RandStringMask(32)

	assert.Len(t, first, 32)
	assert.NotEqual(t, first, second)
	for _, c := range first {
		assert.True(t, strings.ContainsRune(letterBytes, c))
	}
}
