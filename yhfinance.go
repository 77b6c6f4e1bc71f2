package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/weirdtangent/yhfinance"
)

// fetch ticker info from yhfinance, cached for a day since company facts
// rarely change
func loadTickerInfo(ctx context.Context, deps *Dependencies, symbol string) (Ticker, error) {
	redisPool := deps.redisPool
	secrets := deps.secrets
	sublog := deps.logger.With().Str("symbol", symbol).Logger()

	redisConn := redisPool.Get()
	defer redisConn.Close()

	apiKey := secrets["yhfinance_rapidapi_key"]
	apiHost := secrets["yhfinance_rapidapi_host"]

	// pull recent response from redis (1 day expire), or go get from YF
	redisKey := "yhfinance/summary/" + symbol
	response, err := redis.String(redisConn.Do("GET", redisKey))
	if err == nil && response != "" && !skipRedisChecks {
		cacheHits.WithLabelValues("summary").Inc()
		sublog.Info().Str("redis_key", redisKey).Msg("redis cache hit")
	} else {
		cacheMisses.WithLabelValues("summary").Inc()
		response, err = deps.providers.guardedCall(ctx, providerYHFinance, func() (string, error) {
			return yhfinance.GetYHFinanceStockSummary(&sublog, apiKey, apiHost, symbol)
		})
		if err != nil {
			return Ticker{}, err
		}
		_, err = redisConn.Do("SET", redisKey, response, "EX", summaryCacheTTL)
		if err != nil {
			sublog.Error().Err(err).Str("redis_key", redisKey).Msg("failed to save to redis")
		}
	}

	var summaryResponse yhfinance.YHStockSummaryResponse
	json.NewDecoder(strings.NewReader(response)).Decode(&summaryResponse)

	if summaryResponse.QuoteType.Symbol == "" {
		return Ticker{}, fmt.Errorf("empty summary response for %s: %w", symbol, errProviderFetch)
	}

	ticker := Ticker{
		TickerSymbol:    summaryResponse.QuoteType.Symbol,
		ExchangeCode:    summaryResponse.Price.ExchangeCode,
		TickerName:      summaryResponse.QuoteType.ShortName,
		CompanyName:     summaryResponse.QuoteType.LongName,
		Sector:          summaryResponse.SummaryProfile.Sector,
		Industry:        summaryResponse.SummaryProfile.Industry,
		Website:         summaryResponse.SummaryProfile.Website,
		Country:         summaryResponse.SummaryProfile.Country,
		BusinessSummary: summaryResponse.SummaryProfile.LongBusinessSummary,
	}

	return ticker, nil
}

// load ticker up-to-date quote. quotes only stay cached for seconds while
// the market is open, but after close the last quote is good until the
// next open
func loadTickerQuote(ctx context.Context, deps *Dependencies, symbol string) (Quote, error) {
	redisPool := deps.redisPool
	sublog := deps.logger.With().Str("symbol", symbol).Logger()

	redisConn := redisPool.Get()
	defer redisConn.Close()

	redisKey := "yhfinance/quote/" + symbol
	response, err := redis.String(redisConn.Do("GET", redisKey))
	if err == nil && response != "" && !skipRedisChecks {
		cacheHits.WithLabelValues("quote").Inc()
		sublog.Info().Str("redis_key", redisKey).Msg("redis cache hit")
		var cached yhQuote
		if err = json.NewDecoder(strings.NewReader(response)).Decode(&cached); err == nil {
			return quoteFromWire(cached), nil
		}
	}
	cacheMisses.WithLabelValues("quote").Inc()

	quotes, err := loadMultiTickerQuotes(ctx, deps, []string{symbol})
	if err != nil {
		return Quote{}, err
	}
	quote, ok := quotes[symbol]
	if !ok {
		return Quote{}, fmt.Errorf("no quote in response for %s: %w", symbol, errProviderFetch)
	}

	return quote, nil
}

func loadMultiTickerQuotes(ctx context.Context, deps *Dependencies, symbols []string) (map[string]Quote, error) {
	redisPool := deps.redisPool
	secrets := deps.secrets
	sublog := deps.logger

	redisConn := redisPool.Get()
	defer redisConn.Close()

	apiKey := secrets["yhfinance_rapidapi_key"]
	apiHost := secrets["yhfinance_rapidapi_host"]

	quotes := map[string]Quote{}

	quoteParams := map[string]string{"symbols": strings.Join(symbols, ",")}
	sublog.Info().Str("symbols", strings.Join(symbols, ",")).Msg("getting multi-symbol quote from yhfinance")
	fullResponse, err := deps.providers.guardedCall(ctx, providerYHFinance, func() (string, error) {
		return yhfinance.GetFromYHFinance(sublog, apiKey, apiHost, "marketQuote", quoteParams)
	})
	if err != nil {
		sublog.Warn().Err(err).Str("symbols", strings.Join(symbols, ",")).Msg("failed to retrieve quotes")
		return quotes, err
	}

	var quoteResponse yhQuoteEnvelope
	json.NewDecoder(strings.NewReader(fullResponse)).Decode(&quoteResponse)

	ttl := quoteCacheTTL
	if !isMarketOpen() {
		ttl = closedQuoteCacheTTL
	}
	for _, wire := range quoteResponse.QuoteResponse.Quotes {
		redisKey := "yhfinance/quote/" + wire.Symbol
		encoded, err := json.Marshal(wire)
		if err == nil {
			_, err = redisConn.Do("SET", redisKey, encoded, "EX", ttl)
		}
		if err != nil {
			sublog.Error().Err(err).Str("ticker", wire.Symbol).Str("redis_key", redisKey).Msg("failed to save to redis")
		}

		quotes[wire.Symbol] = quoteFromWire(wire)
	}

	return quotes, nil
}

// load ticker historical closing prices, most recent `days` worth, oldest
// first. the raw provider response is cached for a few hours; trading days
// with a zero or negative close are dropped rather than poisoning the math
// downstream.
func loadPriceHistory(ctx context.Context, deps *Dependencies, symbol string, days int) ([]PricePoint, error) {
	redisPool := deps.redisPool
	secrets := deps.secrets
	sublog := deps.logger.With().Str("symbol", symbol).Logger()

	redisConn := redisPool.Get()
	defer redisConn.Close()

	apiKey := secrets["yhfinance_rapidapi_key"]
	apiHost := secrets["yhfinance_rapidapi_host"]
	if apiKey == "" || apiHost == "" {
		sublog.Fatal().Msg("apiKey or apiHost secret is missing")
	}

	redisKey := "yhfinance/eod/" + symbol
	response, err := redis.String(redisConn.Do("GET", redisKey))
	if err == nil && response != "" && !skipRedisChecks {
		cacheHits.WithLabelValues("eod").Inc()
		sublog.Info().Str("redis_key", redisKey).Msg("redis cache hit")
	} else {
		cacheMisses.WithLabelValues("eod").Inc()
		historicalParams := map[string]string{"symbol": symbol}
		response, err = deps.providers.guardedCall(ctx, providerYHFinance, func() (string, error) {
			return yhfinance.GetFromYHFinance(&sublog, apiKey, apiHost, "stockHistorical", historicalParams)
		})
		if err != nil {
			sublog.Warn().Err(err).Msg("failed to retrieve historical prices")
			return nil, err
		}
		if response != "" {
			_, err = redisConn.Do("SET", redisKey, response, "EX", eodCacheTTL)
			if err != nil {
				sublog.Error().Err(err).Str("redis_key", redisKey).Msg("failed to save to redis")
			}
		}
	}

	var historicalResponse yhfinance.YHHistoricalDataResponse
	json.NewDecoder(strings.NewReader(response)).Decode(&historicalResponse)

	cutoffStr := time.Now().AddDate(0, 0, -days).Format(dateKeyFormat)
	points := make([]PricePoint, 0, len(historicalResponse.Prices))
	for _, price := range historicalResponse.Prices {
		if price.Close <= 0 {
			sublog.Warn().Int64("unix_date", price.Date).Float64("close", price.Close).Msg("dropping non-positive close price")
			continue
		}
		priceDateStr := UnixToDateStr(price.Date)
		if priceDateStr < cutoffStr {
			continue
		}
		priceDate, err := time.Parse(dateKeyFormat, priceDateStr)
		if err != nil {
			continue
		}
		points = append(points, PricePoint{Date: priceDate, Close: price.Close})
	}
	sort.Sort(PricePoints(points))

	if len(points) == 0 {
		return nil, fmt.Errorf("no usable price history for %s: %w", symbol, errInsufficientData)
	}

	return points, nil
}

// search for ticker and return highest scored quote symbol
func jumpSearch(ctx context.Context, deps *Dependencies, searchString string) (SearchResultTicker, error) {
	var searchResult SearchResultTicker

	searchResults, err := listSearch(ctx, deps, searchString, "ticker")
	if err != nil {
		return searchResult, err
	}
	if len(searchResults) == 0 {
		return searchResult, fmt.Errorf("sorry, the search returned zero results")
	}

	var highestScore float64 = 0
	for _, result := range searchResults {
		if result.ResultType == "ticker" && result.Ticker.SearchScore > highestScore {
			searchResult = result.Ticker
			highestScore = result.Ticker.SearchScore
		}
	}

	return searchResult, nil
}

// search for ticker or news
func listSearch(ctx context.Context, deps *Dependencies, searchString string, resultTypes string) ([]SearchResult, error) {
	redisPool := deps.redisPool
	secrets := deps.secrets
	sublog := deps.logger

	redisConn := redisPool.Get()
	defer redisConn.Close()

	apiKey := secrets["yhfinance_rapidapi_key"]
	apiHost := secrets["yhfinance_rapidapi_host"]

	searchResults := make([]SearchResult, 0, 100)

	redisKey := "yhfinance/autocomplete/" + searchString
	response, err := redis.String(redisConn.Do("GET", redisKey))
	if err == nil && response != "" && !skipRedisChecks {
		cacheHits.WithLabelValues("autocomplete").Inc()
		sublog.Info().Str("redis_key", redisKey).Msg("redis cache hit")
	} else {
		cacheMisses.WithLabelValues("autocomplete").Inc()
		searchParams := map[string]string{"q": searchString, "region": "US"}
		response, err = deps.providers.guardedCall(ctx, providerYHFinance, func() (string, error) {
			return yhfinance.GetFromYHFinance(sublog, apiKey, apiHost, "autocomplete", searchParams)
		})
		if err != nil {
			return searchResults, err
		}
		_, err = redisConn.Do("SET", redisKey, response, "EX", newsCacheTTL)
		if err != nil {
			sublog.Error().Err(err).Str("redis_key", redisKey).Msg("failed to save to redis")
		}
	}

	searchCount := 0
	var searchResponse yhfinance.YHAutoCompleteResponse
	json.NewDecoder(strings.NewReader(response)).Decode(&searchResponse)

	if resultTypes == "ticker" && len(searchResponse.Quotes) == 0 {
		return searchResults, fmt.Errorf("sorry, the search returned zero results")
	}
	if resultTypes == "news" && len(searchResponse.News) == 0 {
		return searchResults, fmt.Errorf("sorry, the search returned zero results")
	}
	if resultTypes == "both" && len(searchResponse.Quotes)+len(searchResponse.News) == 0 {
		return searchResults, fmt.Errorf("sorry, the search returned zero results")
	}

	if resultTypes == "news" || resultTypes == "both" {
		for _, newsResult := range searchResponse.News {
			searchCount++
			searchResults = append(searchResults, SearchResult{
				ResultType: "news",
				News: SearchResultNews{
					Publisher:   sanitizeText(newsResult.Publisher),
					Title:       sanitizeText(newsResult.Title),
					Type:        newsResult.Type,
					URL:         newsResult.URL,
					PublishDate: FormatUnixTime(newsResult.PublishTime, ""),
				},
				Ticker: SearchResultTicker{},
			})
		}
	}

	if resultTypes == "ticker" || resultTypes == "both" {
		for _, quoteResult := range searchResponse.Quotes {
			if quoteResult.Type == "Option" {
				continue
			}
			searchCount++
			searchResults = append(searchResults, SearchResult{
				ResultType: "ticker",
				News:       SearchResultNews{},
				Ticker: SearchResultTicker{
					TickerSymbol: quoteResult.Symbol,
					ExchangeCode: quoteResult.ExchangeCode,
					Type:         quoteResult.Type,
					ShortName:    quoteResult.ShortName,
					LongName:     quoteResult.LongName,
					SearchScore:  quoteResult.Score,
				},
			})
		}
	}

	sublog.Info().Str("search_string", searchString).Int("results_count", searchCount).Msg("Search returned results")

	return searchResults, nil
}
