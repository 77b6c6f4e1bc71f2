package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPairQuery(t *testing.T) {
	tests := []struct {
		query string
		a, b  string
	}{
		{"MSFT/AAPL", "MSFT", "AAPL"},
		{"MSFT vs AAPL", "MSFT", "AAPL"},
		{"msft VS. aapl", "msft", "aapl"},
		{"MSFT, AAPL", "MSFT", "AAPL"},
		{"MSFT,AAPL", "MSFT", "AAPL"},
		{"coca-cola vs pepsi", "coca-cola", "pepsi"},
		{"visa vs mastercard", "visa", "mastercard"},
		{"  MSFT  ", "MSFT", ""},
		{"berkshire hathaway", "berkshire hathaway", ""},
		{"A/B/C", "A", "B/C"},
		{"", "", ""},
	}
	for _, tt := range tests {
		a, b := splitPairQuery(tt.query)
		assert.Equal(t, tt.a, a, "query %q", tt.query)
		assert.Equal(t, tt.b, b, "query %q", tt.query)
	}
}

func TestSplitPairQuery_VsNeedsWhitespace(t *testing.T) {
	// "vs" inside a symbol is part of the name, not a separator
	a, b := splitPairQuery("AVS")
	assert.Equal(t, "AVS", a)
	assert.Equal(t, "", b)

	a, b = splitPairQuery("NOVSF")
	assert.Equal(t, "NOVSF", a)
	assert.Equal(t, "", b)
}
