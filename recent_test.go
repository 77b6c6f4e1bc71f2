package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecentPairTracker_AddAndSymbols(t *testing.T) {
	tracker := newRecentPairTracker()
	assert.Empty(t, tracker.symbols())

	tracker.add("MSFT", "AAPL")
	tracker.add("AAPL", "GOOG")

	assert.Equal(t, []string{"AAPL", "GOOG", "MSFT"}, tracker.symbols(), "distinct symbols, sorted")
}

func TestRecentPairTracker_AgesOut(t *testing.T) {
	tracker := newRecentPairTracker()
	tracker.add("MSFT", "AAPL")

	// backdate one symbol past the cutoff
	tracker.Lock()
	tracker.lastSeen["MSFT"] = time.Now().Add(-recentPairMaxAge - time.Minute)
	tracker.Unlock()

	assert.Equal(t, []string{"AAPL"}, tracker.symbols())

	// a fresh comparison brings it back
	tracker.add("MSFT", "AAPL")
	assert.Equal(t, []string{"AAPL", "MSFT"}, tracker.symbols())
}
