package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/weirdtangent/mymath"
)

type jsonResponseData struct {
	ApiVersion string                 `json:"api_version"`
	Endpoint   string                 `json:"endpoint"`
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Data       map[string]interface{} `json:"data"`
}

func apiV1Handler(deps *Dependencies) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deps = checkRequestState(w, r, deps)

		w.Header().Add("Content-Type", "application/json")

		params := mux.Vars(r)
		endpoint := params["endpoint"]

		jsonResponse := jsonResponseData{ApiVersion: "0.1.0", Endpoint: endpoint, Success: false, Data: make(map[string]interface{})}

		switch endpoint {
		case "version":
			jsonResponse.Success = true
			jsonResponse.Message = "ok"

		case "quote":
			apiQuote(r, deps, &jsonResponse)

		case "quotes":
			apiQuotes(r, deps, &jsonResponse)

		case "compare":
			apiCompare(r, deps, &jsonResponse)

		case "correlation":
			apiCorrelation(r, deps, &jsonResponse)

		case "regression":
			apiRegression(r, deps, &jsonResponse)

		case "ratios":
			apiRatios(r, deps, &jsonResponse)

		default:
			deps.logger.Error().Str("api_version", jsonResponse.ApiVersion).Str("endpoint", endpoint).Err(fmt.Errorf("failure: call to unknown api endpoint")).Msg("api call failed")
			jsonResponse.Success = false
			jsonResponse.Message = "Failure: unknown endpoint"
		}

		json.NewEncoder(w).Encode(jsonResponse)
	})
}

// pair params shared by the comparison endpoints: a, b, ts, w, m with session
// prefs and config defaults filling the gaps
func apiCompareRequest(r *http.Request, deps *Dependencies) (ComparisonRequest, error) {
	symbolA := strings.ToUpper(r.FormValue("a"))
	symbolB := strings.ToUpper(r.FormValue("b"))
	if symbolA == "" || symbolB == "" {
		return ComparisonRequest{}, fmt.Errorf("needs both 'a' and 'b' symbol params")
	}
	if symbolA == symbolB {
		return ComparisonRequest{}, fmt.Errorf("needs two different symbols")
	}

	timespan := deps.cfg.Compare.DefaultTimespan
	if tsParam := r.FormValue("ts"); tsParam != "" {
		if tsValue, err := strconv.ParseInt(tsParam, 10, 32); err == nil {
			timespan = int(mymath.MinMax(tsValue, minComparisonDays, maxComparisonDays))
		}
	}

	window := getSessionWindow(deps)
	if wParam := r.FormValue("w"); wParam != "" {
		if wValue, err := strconv.ParseInt(wParam, 10, 32); err == nil {
			window = int(mymath.MinMax(wValue, minCorrelationWindow, maxCorrelationWindow))
		}
	}

	metric := getSessionMetric(deps)
	if metric == "" {
		metric = deps.cfg.Compare.DefaultMetric
	}
	if mParam := r.FormValue("m"); mParam != "" {
		if err := validateMetric(mParam); err == nil {
			metric = mParam
		}
	}

	return ComparisonRequest{SymbolA: symbolA, SymbolB: symbolB, Timespan: timespan, Window: window, Metric: metric}, nil
}

func apiQuote(r *http.Request, deps *Dependencies, jsonResponse *jsonResponseData) {
	ctx := r.Context()
	symbol := strings.ToUpper(r.FormValue("symbol"))

	ticker, err := loadTickerInfo(ctx, deps, symbol)
	if err != nil {
		deps.logger.Error().Err(err).Str("symbol", symbol).Msg("Failed to find ticker")
		jsonResponse.Success = false
		jsonResponse.Message = "Failure: unknown symbol"
		return
	}

	// if the market is open, lets get a live quote
	if isMarketOpen() {
		quote, err := loadTickerQuote(ctx, deps, ticker.TickerSymbol)
		if err != nil {
			deps.logger.Error().Err(err).Msg("Failed to get live quote")
			jsonResponse.Success = false
			jsonResponse.Message = "Failure: could not load quote"
			return
		}
		jsonResponse.Success = true
		jsonResponse.Message = "ok"

		var dailyMove = "unchanged"
		if quote.QuoteChange > 0 {
			dailyMove = "up"
		} else if quote.QuoteChange < 0 {
			dailyMove = "down"
		}

		if quote.QuotePrice > 0 {
			jsonResponse.Data["quote_shareprice"] = fmt.Sprintf("$%.2f", quote.QuotePrice)
			jsonResponse.Data["quote_dailymove"] = dailyMove
			jsonResponse.Data["quote_change"] = fmt.Sprintf("$%.2f", quote.QuoteChange)
			jsonResponse.Data["quote_change_pct"] = fmt.Sprintf("%.2f%%", quote.QuoteChangePct)
			jsonResponse.Data["quote_volume"] = quote.QuoteVolume
			jsonResponse.Data["quote_asof"] = FormatUnixTime(quote.QuoteTime, "Jan 2 15:04")
			jsonResponse.Data["quote_dailyrange"] = fmt.Sprintf("$%.2f - $%.2f", quote.QuoteLow, quote.QuoteHigh)
			jsonResponse.Data["is_market_open"] = true
		}
	} else {
		jsonResponse.Data["is_market_open"] = false
		jsonResponse.Success = true
		jsonResponse.Message = "Market closed, we already have latest info"
	}
}

func apiQuotes(r *http.Request, deps *Dependencies, jsonResponse *jsonResponseData) {
	ctx := r.Context()
	symbolStr := strings.ToUpper(r.FormValue("symbols"))
	symbols := strings.Split(symbolStr, ",")

	validSymbols := []string{}
	for _, symbol := range symbols {
		_, err := loadTickerInfo(ctx, deps, symbol)
		if err != nil {
			deps.logger.Error().Err(err).Str("symbol", symbol).Msg("Failed to find ticker")
			continue
		}
		validSymbols = append(validSymbols, symbol)
	}
	if len(validSymbols) == 0 {
		jsonResponse.Success = false
		jsonResponse.Message = "Failure: no known symbols"
		return
	}

	// if the market is open, lets get live quotes
	if isMarketOpen() {
		quotes, err := loadMultiTickerQuotes(ctx, deps, validSymbols)
		if err != nil {
			deps.logger.Error().Err(err).Msg("Failed to get live quotes")
			jsonResponse.Success = false
			jsonResponse.Message = "Failure: could not load quotes"
			return
		}

		for _, symbol := range validSymbols {
			quote, ok := quotes[symbol]
			if !ok {
				continue
			}

			var dailyMove = "unchanged"
			if quote.QuoteChange > 0 {
				dailyMove = "up"
			} else if quote.QuoteChange < 0 {
				dailyMove = "down"
			}

			if quote.QuotePrice > 0 {
				jsonResponse.Data[symbol+"|quote_shareprice"] = fmt.Sprintf("$%.2f", quote.QuotePrice)
				jsonResponse.Data[symbol+"|quote_dailymove"] = dailyMove
				jsonResponse.Data[symbol+"|quote_change"] = fmt.Sprintf("$%.2f", quote.QuoteChange)
				jsonResponse.Data[symbol+"|quote_change_pct"] = fmt.Sprintf("%.2f%%", quote.QuoteChangePct)
				jsonResponse.Data[symbol+"|quote_volume"] = quote.QuoteVolume
				jsonResponse.Data[symbol+"|quote_asof"] = FormatUnixTime(quote.QuoteTime, "Jan 2 15:04")
				jsonResponse.Data[symbol+"|quote_dailyrange"] = fmt.Sprintf("$%.2f - $%.2f", quote.QuoteLow, quote.QuoteHigh)
			}
		}
		jsonResponse.Data["is_market_open"] = true
		jsonResponse.Success = true
		jsonResponse.Message = "ok"
	} else {
		jsonResponse.Data["is_market_open"] = false
		jsonResponse.Success = true
		jsonResponse.Message = "Market closed, we already have latest info"
	}
}

func apiCompare(r *http.Request, deps *Dependencies, jsonResponse *jsonResponseData) {
	ctx := r.Context()

	request, err := apiCompareRequest(r, deps)
	if err != nil {
		jsonResponse.Success = false
		jsonResponse.Message = "Failure: " + err.Error()
		return
	}

	data, err := loadComparison(ctx, deps, request)
	if err != nil {
		deps.logger.Error().Err(err).Msg("Failed to load comparison")
		jsonResponse.Success = false
		jsonResponse.Message = "Failure: could not compare that pair"
		return
	}

	jsonResponse.Data["comparison"] = data
	jsonResponse.Success = true
	jsonResponse.Message = "ok"
}

func apiCorrelation(r *http.Request, deps *Dependencies, jsonResponse *jsonResponseData) {
	ctx := r.Context()

	request, err := apiCompareRequest(r, deps)
	if err != nil {
		jsonResponse.Success = false
		jsonResponse.Message = "Failure: " + err.Error()
		return
	}

	data, err := loadComparison(ctx, deps, request)
	if err != nil {
		deps.logger.Error().Err(err).Msg("Failed to load comparison")
		jsonResponse.Success = false
		jsonResponse.Message = "Failure: could not compare that pair"
		return
	}

	jsonResponse.Data["window"] = data.Request.Window
	jsonResponse.Data["correlations"] = data.Correlations
	if data.CorrelationExtrema != nil && len(data.Correlations) > 0 {
		jsonResponse.Data["most_correlated"] = data.Correlations[data.CorrelationExtrema.MaxIndex]
		jsonResponse.Data["least_correlated"] = data.Correlations[data.CorrelationExtrema.MinIndex]
	}
	if len(data.Correlations) == 0 {
		jsonResponse.Success = false
		jsonResponse.Message = "Not enough overlapping trading days for that window"
		return
	}
	jsonResponse.Success = true
	jsonResponse.Message = "ok"
}

func apiRegression(r *http.Request, deps *Dependencies, jsonResponse *jsonResponseData) {
	ctx := r.Context()

	request, err := apiCompareRequest(r, deps)
	if err != nil {
		jsonResponse.Success = false
		jsonResponse.Message = "Failure: " + err.Error()
		return
	}

	data, err := loadComparison(ctx, deps, request)
	if err != nil {
		deps.logger.Error().Err(err).Msg("Failed to load comparison")
		jsonResponse.Success = false
		jsonResponse.Message = "Failure: could not compare that pair"
		return
	}

	if !data.HasRegression {
		jsonResponse.Success = false
		jsonResponse.Message = "Not enough overlapping trading days to fit a regression"
		return
	}

	jsonResponse.Data["regression"] = data.Regression
	jsonResponse.Success = true
	jsonResponse.Message = "ok"
}

func apiRatios(r *http.Request, deps *Dependencies, jsonResponse *jsonResponseData) {
	ctx := r.Context()

	request, err := apiCompareRequest(r, deps)
	if err != nil {
		jsonResponse.Success = false
		jsonResponse.Message = "Failure: " + err.Error()
		return
	}

	data, err := loadComparison(ctx, deps, request)
	if err != nil {
		deps.logger.Error().Err(err).Msg("Failed to load comparison")
		jsonResponse.Success = false
		jsonResponse.Message = "Failure: could not compare that pair"
		return
	}

	if len(data.FiscalRatios) == 0 {
		jsonResponse.Success = false
		jsonResponse.Message = "No overlapping fiscal years with the " + metricLabel(request.Metric) + " metric"
		return
	}

	jsonResponse.Data["metric"] = request.Metric
	jsonResponse.Data["metric_label"] = metricLabel(request.Metric)
	jsonResponse.Data["fiscal_ratios"] = data.FiscalRatios
	if data.MetricExtrema != nil {
		jsonResponse.Data["metric_extrema"] = data.MetricExtrema
	}
	jsonResponse.Success = true
	jsonResponse.Message = "ok"
}
