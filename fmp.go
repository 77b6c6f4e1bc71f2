package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
)

// recognizedMetrics maps every fundamental ratio we accept from the ratios
// endpoint to the label shown in menus and chart titles. Anything not in
// this map is rejected before it reaches a provider call.
var recognizedMetrics = map[string]string{
	"priceEarningsRatio":    "P/E Ratio",
	"priceToBookRatio":      "Price/Book",
	"priceToSalesRatio":     "Price/Sales",
	"returnOnEquity":        "Return on Equity",
	"returnOnAssets":        "Return on Assets",
	"grossProfitMargin":     "Gross Margin",
	"operatingProfitMargin": "Operating Margin",
	"netProfitMargin":       "Net Margin",
	"currentRatio":          "Current Ratio",
	"debtEquityRatio":       "Debt/Equity",
	"dividendYield":         "Dividend Yield",
	"payoutRatio":           "Payout Ratio",
}

func metricLabel(metric string) string {
	if label, ok := recognizedMetrics[metric]; ok {
		return label
	}
	return metric
}

func validateMetric(metric string) error {
	if _, ok := recognizedMetrics[metric]; !ok {
		return fmt.Errorf("metric %q: %w", metric, errUnknownMetric)
	}
	return nil
}

// wire shape of one annual entry from the ratios endpoint; only the fields
// we read. ratios the filing didn't include come back as JSON nulls.
type fmpRatioAnnual struct {
	Symbol                string   `json:"symbol"`
	Date                  string   `json:"date"`
	CalendarYear          string   `json:"calendarYear"`
	Period                string   `json:"period"`
	CurrentRatio          *float64 `json:"currentRatio"`
	GrossProfitMargin     *float64 `json:"grossProfitMargin"`
	OperatingProfitMargin *float64 `json:"operatingProfitMargin"`
	NetProfitMargin       *float64 `json:"netProfitMargin"`
	ReturnOnAssets        *float64 `json:"returnOnAssets"`
	ReturnOnEquity        *float64 `json:"returnOnEquity"`
	DebtEquityRatio       *float64 `json:"debtEquityRatio"`
	PriceEarningsRatio    *float64 `json:"priceEarningsRatio"`
	PriceToBookRatio      *float64 `json:"priceToBookRatio"`
	PriceToSalesRatio     *float64 `json:"priceToSalesRatio"`
	DividendYield         *float64 `json:"dividendYield"`
	PayoutRatio           *float64 `json:"payoutRatio"`
}

func (r fmpRatioAnnual) toRecord() FiscalRatioRecord {
	return FiscalRatioRecord{
		Date:         r.Date,
		CalendarYear: r.CalendarYear,
		Metrics: map[string]*float64{
			"currentRatio":          r.CurrentRatio,
			"grossProfitMargin":     r.GrossProfitMargin,
			"operatingProfitMargin": r.OperatingProfitMargin,
			"netProfitMargin":       r.NetProfitMargin,
			"returnOnAssets":        r.ReturnOnAssets,
			"returnOnEquity":        r.ReturnOnEquity,
			"debtEquityRatio":       r.DebtEquityRatio,
			"priceEarningsRatio":    r.PriceEarningsRatio,
			"priceToBookRatio":      r.PriceToBookRatio,
			"priceToSalesRatio":     r.PriceToSalesRatio,
			"dividendYield":         r.DividendYield,
			"payoutRatio":           r.PayoutRatio,
		},
	}
}

func getFMPData(ctx context.Context, deps *Dependencies, action string, params map[string]string) (string, error) {
	cfg := deps.cfg
	secrets := deps.secrets
	sublog := deps.logger

	apiKey := secrets["fmp_api_key"]
	if apiKey == "" {
		sublog.Fatal().Msg("fmp_api_key secret is missing")
	}

	return deps.providers.guardedCall(ctx, providerFMP, func() (string, error) {
		httpClient := http.Client{Timeout: 10 * time.Second}

		req, err := http.NewRequestWithContext(ctx, "GET", cfg.Providers.FMPBaseURL+"/"+action, nil)
		if err != nil {
			return "", fmt.Errorf("failed to construct HTTP request: %w", err)
		}

		q := req.URL.Query()
		q.Add("apikey", apiKey)
		for key, val := range params {
			q.Add(key, val)
		}
		req.URL.RawQuery = q.Encode()

		res, err := httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("failed to perform HTTP request: %w", err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return "", fmt.Errorf("received status %d from fmp", res.StatusCode)
		}

		body, err := io.ReadAll(res.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read response body: %w", err)
		}
		return string(body), nil
	})
}

// load annual fundamental ratios for one symbol, most recent `years` fiscal
// years. filings only change quarterly so a day in redis is fine.
func loadFiscalRatios(ctx context.Context, deps *Dependencies, symbol string, years int) ([]FiscalRatioRecord, error) {
	redisPool := deps.redisPool
	sublog := deps.logger.With().Str("symbol", symbol).Logger()

	redisConn := redisPool.Get()
	defer redisConn.Close()

	redisKey := "fmp/ratios/" + symbol + "/" + strconv.Itoa(years)
	response, err := redis.String(redisConn.Do("GET", redisKey))
	if err == nil && response != "" && !skipRedisChecks {
		cacheHits.WithLabelValues("ratios").Inc()
		sublog.Info().Str("redis_key", redisKey).Msg("redis cache hit")
	} else {
		cacheMisses.WithLabelValues("ratios").Inc()
		params := map[string]string{
			"period": "annual",
			"limit":  strconv.Itoa(years),
		}
		response, err = getFMPData(ctx, deps, "ratios/"+symbol, params)
		if err != nil {
			sublog.Warn().Err(err).Msg("failed to retrieve fundamental ratios")
			return nil, err
		}
		_, err = redisConn.Do("SET", redisKey, response, "EX", ratiosCacheTTL)
		if err != nil {
			sublog.Error().Err(err).Str("redis_key", redisKey).Msg("failed to save to redis")
		}
	}

	var annuals []fmpRatioAnnual
	if err := json.NewDecoder(strings.NewReader(response)).Decode(&annuals); err != nil {
		return nil, fmt.Errorf("failed to decode ratios response for %s: %w", symbol, err)
	}

	records := make([]FiscalRatioRecord, 0, len(annuals))
	for _, annual := range annuals {
		records = append(records, annual.toRecord())
	}

	return records, nil
}
