package main

import (
	"net/http"
	"strings"
)

// featured pairs to suggest on the landing page
var defaultPairs = []string{
	"AAPL/MSFT",
	"XOM/CVX",
	"KO/PEP",
	"V/MA",
}

func homeHandler(deps *Dependencies) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deps = checkRequestState(w, r, deps)
		ctx := r.Context()
		sublog := deps.logger
		webdata := deps.webdata

		webdata["DefaultPairs"] = defaultPairs

		// pull quotes for the recently compared symbols so the landing page
		// shows where each side of each pair stands
		recentPairs := getRecentPairs(deps)
		symbols := make([]string, 0, len(recentPairs)*2)
		seen := map[string]bool{}
		for _, pair := range recentPairs {
			for _, symbol := range strings.Split(pair, "/") {
				if symbol != "" && !seen[symbol] {
					seen[symbol] = true
					symbols = append(symbols, symbol)
				}
			}
		}
		if len(symbols) > 0 {
			quotes, err := loadMultiTickerQuotes(ctx, deps, symbols)
			if err != nil {
				sublog.Error().Err(err).Msg("failed to get quotes for recent pairs")
			} else {
				webdata["Quotes"] = quotes
			}
		}

		renderTemplate(w, r, deps, *sublog, "home")
	})
}
