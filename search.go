package main

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

type SearchResultNews struct {
	Publisher   string
	Title       string
	Type        string
	URL         string
	PublishDate string
}

type SearchResultTicker struct {
	TickerSymbol string
	ExchangeCode string
	ShortName    string
	LongName     string
	Type         string
	SearchScore  float64
}

type SearchResult struct {
	ResultType string
	News       SearchResultNews
	Ticker     SearchResultTicker
}

// benchmarkSymbol is who you get compared against when you jump to a single
// symbol without naming the other side of the pair.
const benchmarkSymbol = "SPY"

// "MSFT/AAPL", "MSFT vs AAPL", "MSFT, AAPL" all split into a pair
var pairSplitRx = regexp.MustCompile(`(?i)\s+vs\.?\s+|/|,`)

func splitPairQuery(q string) (string, string) {
	parts := pairSplitRx.Split(q, 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(q), ""
}

func searchHandler(deps *Dependencies) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deps = checkRequestState(w, r, deps)
		ctx := r.Context()
		sublog := deps.logger
		webdata := deps.webdata
		messages := deps.messages

		searchString := r.FormValue("searchString")
		searchType := r.FormValue("submit")
		if searchType == "" {
			searchType = "jump"
		}

		if searchString == "" {
			*messages = append(*messages, Message{"search text not entered or invalid search function", "warning"})
			renderTemplate(w, r, deps, *sublog, "searchresults")
			return
		}
		webdata["searchString"] = searchString

		sublog.Info().Str("search_provider", "yhfinance").Str("search_type", searchType).Str("search_string", searchString).Msg("Search performed")

		switch searchType {
		case "jump":
			queryA, queryB := splitPairQuery(searchString)

			resultA, err := jumpSearch(ctx, deps, queryA)
			if err != nil || resultA.TickerSymbol == "" {
				*messages = append(*messages, Message{fmt.Sprintf("sorry, nothing found for '%s'", queryA), "warning"})
				break
			}

			otherSymbol := benchmarkSymbol
			if queryB != "" {
				resultB, err := jumpSearch(ctx, deps, queryB)
				if err != nil || resultB.TickerSymbol == "" {
					*messages = append(*messages, Message{fmt.Sprintf("sorry, nothing found for '%s'", queryB), "warning"})
					break
				}
				otherSymbol = resultB.TickerSymbol
			} else if resultA.TickerSymbol == benchmarkSymbol {
				// comparing the benchmark against itself is a flat line
				*messages = append(*messages, Message{"name a second symbol to compare against", "warning"})
				break
			}

			sublog.Info().
				Str("search_provider", "yhfinance").
				Str("search_type", searchType).
				Str("search_string", searchString).
				Str("pair", resultA.TickerSymbol+"/"+otherSymbol).
				Msg("Search results")
			http.Redirect(w, r, fmt.Sprintf("/compare/%s/%s", resultA.TickerSymbol, otherSymbol), http.StatusFound)
			return

		case "search":
			searchResults, err := listSearch(ctx, deps, searchString, "both")
			if err != nil {
				*messages = append(*messages, Message{"sorry, error returned for that search", "danger"})
				break
			}
			if len(searchResults) == 0 {
				*messages = append(*messages, Message{fmt.Sprintf("sorry, nothing found for '%s'", searchString), "warning"})
				break
			}
			sublog.Info().
				Str("search_provider", "yhfinance").
				Str("search_type", searchType).
				Str("search_string", searchString).
				Int("results_count", len(searchResults)).
				Msg("Search results")
			webdata["results"] = searchResults

		default:
			sublog.Warn().Str("search_type", searchType).Msg("Unknown search_type")
			*messages = append(*messages, Message{"sorry, invalid search request", "danger"})
		}

		renderTemplate(w, r, deps, *sublog, "searchresults")
	})
}
