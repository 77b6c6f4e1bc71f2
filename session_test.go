package main

import (
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
)

func sessionFixture() *Dependencies {
	return &Dependencies{
		session:     sessions.NewSession(nil, "SID"),
		recentPairs: newRecentPairTracker(),
	}
}

func TestGetSessionWindow(t *testing.T) {
	deps := sessionFixture()
	assert.Equal(t, defaultCorrelationWindow, getSessionWindow(deps), "empty session gets the default")

	deps.session.Values["correlation_window"] = 60
	assert.Equal(t, 60, getSessionWindow(deps))

	deps.session.Values["correlation_window"] = 1
	assert.Equal(t, defaultCorrelationWindow, getSessionWindow(deps), "below the minimum falls back to the default")

	deps.session.Values["correlation_window"] = "sixty"
	assert.Equal(t, defaultCorrelationWindow, getSessionWindow(deps))
}

func TestGetSessionMetric(t *testing.T) {
	deps := sessionFixture()
	assert.Equal(t, "", getSessionMetric(deps))

	deps.session.Values["fiscal_metric"] = "returnOnEquity"
	assert.Equal(t, "returnOnEquity", getSessionMetric(deps))

	deps.session.Values["fiscal_metric"] = "sharpeRatio"
	assert.Equal(t, "", getSessionMetric(deps), "unrecognized saved metrics are ignored")
}

func TestGetSessionTheme(t *testing.T) {
	deps := sessionFixture()
	assert.Equal(t, "light", getSessionTheme(deps))

	deps.session.Values["theme"] = "dark"
	assert.Equal(t, "dark", getSessionTheme(deps))
}

func TestSaveComparePrefs(t *testing.T) {
	deps := sessionFixture()

	saveComparePrefs(deps, 60, "returnOnEquity")
	assert.Equal(t, 60, deps.session.Values["correlation_window"])
	assert.Equal(t, "returnOnEquity", deps.session.Values["fiscal_metric"])

	saveComparePrefs(deps, 120, "sharpeRatio")
	assert.Equal(t, 120, deps.session.Values["correlation_window"])
	assert.Equal(t, "returnOnEquity", deps.session.Values["fiscal_metric"], "a bad metric leaves the old choice alone")
}

func TestAddPairToRecents(t *testing.T) {
	deps := sessionFixture()

	recents := addPairToRecents(deps, "AAPL", "MSFT")
	assert.Equal(t, []string{"AAPL/MSFT"}, recents)

	recents = addPairToRecents(deps, "KO", "PEP")
	assert.Equal(t, []string{"KO/PEP", "AAPL/MSFT"}, recents)

	// revisiting moves the pair back to the front without duplicating it
	recents = addPairToRecents(deps, "AAPL", "MSFT")
	assert.Equal(t, []string{"AAPL/MSFT", "KO/PEP"}, recents)

	// persisted as one joined string, which the session store can hold as-is
	assert.Equal(t, "AAPL/MSFT,KO/PEP", deps.session.Values["recent_pairs"])
	assert.Equal(t, recents, getRecentPairs(deps))

	// the shared tracker hears about every pair too
	assert.Equal(t, []string{"AAPL", "KO", "MSFT", "PEP"}, deps.recentPairs.symbols())
}

func TestAddPairToRecents_CapsTheList(t *testing.T) {
	deps := sessionFixture()
	pairs := [][2]string{
		{"AAPL", "MSFT"}, {"KO", "PEP"}, {"XOM", "CVX"}, {"V", "MA"},
		{"HD", "LOW"}, {"UPS", "FDX"}, {"T", "VZ"},
	}
	for _, pair := range pairs {
		addPairToRecents(deps, pair[0], pair[1])
	}

	recents := getRecentPairs(deps)
	assert.Len(t, recents, maxRecentPairs)
	assert.Equal(t, "T/VZ", recents[0])
	assert.NotContains(t, recents, "AAPL/MSFT", "the oldest pair fell off")
}
