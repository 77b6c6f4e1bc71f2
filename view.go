package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/weirdtangent/mymath"
)

func compareHandler(deps *Dependencies) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deps = checkRequestState(w, r, deps)
		ctx := r.Context()
		sublog := deps.logger
		webdata := deps.webdata
		messages := deps.messages

		params := mux.Vars(r)
		symbolA := strings.ToUpper(params["symbolA"])
		symbolB := strings.ToUpper(params["symbolB"])

		if symbolA == symbolB {
			*messages = append(*messages, Message{"pick two different symbols to compare", "warning"})
			renderTemplate(w, r, deps, *sublog, "home")
			return
		}

		timespan := deps.cfg.Compare.DefaultTimespan
		if tsParam := r.FormValue("ts"); tsParam != "" {
			if tsValue, err := strconv.ParseInt(tsParam, 10, 32); err == nil {
				timespan = int(mymath.MinMax(tsValue, minComparisonDays, maxComparisonDays))
			} else {
				sublog.Error().Err(err).Str("ts", tsParam).Msg("invalid timespan (ts) param")
			}
			sublog.Info().Int("timespan", timespan).Msg("")
		}

		window := getSessionWindow(deps)
		if wParam := r.FormValue("w"); wParam != "" {
			if wValue, err := strconv.ParseInt(wParam, 10, 32); err == nil {
				window = int(mymath.MinMax(wValue, minCorrelationWindow, maxCorrelationWindow))
			} else {
				sublog.Error().Err(err).Str("w", wParam).Msg("invalid window (w) param")
			}
		}

		metric := getSessionMetric(deps)
		if metric == "" {
			metric = deps.cfg.Compare.DefaultMetric
		}
		if mParam := r.FormValue("m"); mParam != "" {
			if err := validateMetric(mParam); err == nil {
				metric = mParam
			} else {
				*messages = append(*messages, Message{fmt.Sprintf("unknown ratio metric '%s', showing %s instead", mParam, metricLabel(metric)), "warning"})
			}
		}

		request := ComparisonRequest{
			SymbolA:  symbolA,
			SymbolB:  symbolB,
			Timespan: timespan,
			Window:   window,
			Metric:   metric,
		}

		data, err := loadComparison(ctx, deps, request)
		if err != nil {
			sublog.Error().Err(err).Msg("Failed to load comparison for viewing")
			*messages = append(*messages, Message{fmt.Sprintf("Sorry, I had trouble comparing that pair: %s", err.Error()), "danger"})
			renderTemplate(w, r, deps, *sublog, "home")
			return
		}

		saveComparePrefs(deps, window, metric)

		// Add this pair to recents list
		webdata["RecentPairs"] = addPairToRecents(deps, data.TickerA.TickerSymbol, data.TickerB.TickerSymbol)

		quotes, err := loadMultiTickerQuotes(ctx, deps, []string{data.TickerA.TickerSymbol, data.TickerB.TickerSymbol})
		if err == nil {
			webdata["QuoteA"] = quotes[data.TickerA.TickerSymbol]
			webdata["QuoteB"] = quotes[data.TickerB.TickerSymbol]
		}

		webdata["Comparison"] = data
		webdata["TickerA"] = data.TickerA
		webdata["TickerB"] = data.TickerB
		webdata["timespan"] = timespan
		webdata["window"] = window
		webdata["metric"] = metric
		webdata["metricLabel"] = metricLabel(metric)
		webdata["MetricChoices"] = recognizedMetrics
		webdata["compareChart"] = chartHandlerCompareLines(deps, data)
		webdata["correlationChart"] = chartHandlerCorrelationLine(deps, data)
		webdata["regressionChart"] = chartHandlerRegressionScatter(deps, data)
		webdata["ratiosChart"] = chartHandlerFiscalRatioBars(deps, data)

		renderTemplate(w, r, deps, *sublog, "compare")
	})
}
