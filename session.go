package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Sets up for a web request - anything but an internal handler will HAVE to call this first and take the new "deps"
//   also pulls the visitor's saved preferences out of the session
//   plus set some standard webdata keys we'll need for all/most pages
func checkRequestState(w http.ResponseWriter, r *http.Request, deps *Dependencies) *Dependencies {
	// here we make a copy of the permanent "deps" but with new versions of what might change during THIS request:
	// new request_id, new nonce, new logger, new config, new webdata, new messages
	// so we are not overwriting the same deps addresses that other web requests are also updating
	resHeader := w.Header()
	newnonce := resHeader.Get("X-Nonce")
	newrequestid := resHeader.Get("X-Request-ID")
	newlog := zerolog.New(os.Stdout).With().Str("request-id", newrequestid).Logger()
	newconfig := make(map[string]interface{})
	newwebdata := make(map[string]interface{})
	newmessages := make([]Message, 0)
	newdeps := Dependencies{
		awssess:      deps.awssess,
		cfg:          deps.cfg,
		cookieStore:  deps.cookieStore,
		secureCookie: deps.secureCookie,
		redisPool:    deps.redisPool,
		secrets:      deps.secrets,
		templates:    deps.templates,
		bufpool:      deps.bufpool,
		providers:    deps.providers,
		recentPairs:  deps.recentPairs,
		logger:       &newlog,
		session:      getSession(r),
		request_id:   newrequestid,
		nonce:        newnonce,
		config:       newconfig,
		webdata:      newwebdata,
		messages:     &newmessages,
	}

	config := newdeps.config
	config["is_market_open"] = isMarketOpen()
	config["quote_refresh"] = 20
	newdeps.config = config

	webdata := newdeps.webdata
	webdata["nonce"] = newnonce
	webdata["request-id"] = newdeps.request_id
	webdata["user-timezone"] = "UTC"
	webdata["is_market_open"] = config["is_market_open"]
	webdata["theme"] = getSessionTheme(&newdeps)
	webdata["RecentPairs"] = getRecentPairs(&newdeps)

	return &newdeps
}

// getSessionWindow returns the visitor's saved correlation window, or the
// default when the session has nothing usable.
func getSessionWindow(deps *Dependencies) int {
	session := deps.session
	if window, ok := session.Values["correlation_window"].(int); ok && window >= minCorrelationWindow {
		return window
	}
	return defaultCorrelationWindow
}

// getSessionMetric returns the visitor's saved fiscal ratio metric. An empty
// string means they never picked one and the caller should use the default.
func getSessionMetric(deps *Dependencies) string {
	session := deps.session
	if metric, ok := session.Values["fiscal_metric"].(string); ok {
		if _, known := recognizedMetrics[metric]; known {
			return metric
		}
	}
	return ""
}

func getSessionTheme(deps *Dependencies) string {
	session := deps.session
	if theme, ok := session.Values["theme"].(string); ok && theme != "" {
		return theme
	}
	return "light"
}

// saveComparePrefs remembers the window and metric the visitor last used so
// their next comparison starts from the same place.
func saveComparePrefs(deps *Dependencies, window int, metric string) {
	session := deps.session
	session.Values["correlation_window"] = window
	if _, known := recognizedMetrics[metric]; known {
		session.Values["fiscal_metric"] = metric
	}
}

// getRecentPairs returns the visitor's recently-viewed pairs, newest first.
// Pairs are kept in the session as a single comma-joined string of
// "SYMA/SYMB" entries.
func getRecentPairs(deps *Dependencies) []string {
	session := deps.session
	joined, ok := session.Values["recent_pairs"].(string)
	if !ok || joined == "" {
		return []string{}
	}
	return strings.Split(joined, ",")
}

// addPairToRecents moves this pair to the front of the visitor's recents,
// dropping the oldest once we're holding maxRecentPairs of them. The pair
// also goes to the shared tracker so the quote-warming job knows what
// symbols visitors are actually watching.
func addPairToRecents(deps *Dependencies, symbolA, symbolB string) []string {
	session := deps.session

	pair := fmt.Sprintf("%s/%s", symbolA, symbolB)
	recents := []string{pair}
	for _, prior := range getRecentPairs(deps) {
		if prior == pair {
			continue
		}
		recents = append(recents, prior)
		if len(recents) == maxRecentPairs {
			break
		}
	}
	session.Values["recent_pairs"] = strings.Join(recents, ",")

	deps.recentPairs.add(symbolA, symbolB)

	return recents
}
