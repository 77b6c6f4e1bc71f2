package main

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/gomodule/redigo/redis"
)

// loadComparison returns the full derived comparison for a pair, serving a
// memoized copy from redis when one is fresh enough. Request params must
// arrive clamped and validated. The four provider fetches run concurrently;
// losing the fundamentals side degrades the page with a note instead of
// failing it, losing either price history fails the whole comparison.
func loadComparison(ctx context.Context, deps *Dependencies, request ComparisonRequest) (ComparisonData, error) {
	redisPool := deps.redisPool
	sublog := deps.logger.With().Str("pair", request.SymbolA+"/"+request.SymbolB).Logger()

	redisConn := redisPool.Get()
	defer redisConn.Close()

	redisKey := request.CacheKey()
	response, err := redis.String(redisConn.Do("GET", redisKey))
	if err == nil && response != "" && !skipRedisChecks {
		cacheHits.WithLabelValues("comparison").Inc()
		sublog.Info().Str("redis_key", redisKey).Msg("redis cache hit")
		var cached ComparisonData
		if err = json.NewDecoder(strings.NewReader(response)).Decode(&cached); err == nil {
			return cached, nil
		}
	}
	cacheMisses.WithLabelValues("comparison").Inc()

	tickerA, err := loadTickerInfo(ctx, deps, request.SymbolA)
	if err != nil {
		return ComparisonData{}, err
	}
	tickerB, err := loadTickerInfo(ctx, deps, request.SymbolB)
	if err != nil {
		return ComparisonData{}, err
	}

	var (
		wg                   sync.WaitGroup
		pricesA, pricesB     []PricePoint
		ratiosA, ratiosB     []FiscalRatioRecord
		errPriceA, errPriceB error
		errRatioA, errRatioB error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		pricesA, errPriceA = loadPriceHistory(ctx, deps, request.SymbolA, request.Timespan)
	}()
	go func() {
		defer wg.Done()
		pricesB, errPriceB = loadPriceHistory(ctx, deps, request.SymbolB, request.Timespan)
	}()
	go func() {
		defer wg.Done()
		ratiosA, errRatioA = loadFiscalRatios(ctx, deps, request.SymbolA, deps.cfg.Compare.RatioYears)
	}()
	go func() {
		defer wg.Done()
		ratiosB, errRatioB = loadFiscalRatios(ctx, deps, request.SymbolB, deps.cfg.Compare.RatioYears)
	}()
	wg.Wait()

	if errPriceA != nil {
		return ComparisonData{}, errPriceA
	}
	if errPriceB != nil {
		return ComparisonData{}, errPriceB
	}

	data := buildComparisonData(request, tickerA, tickerB, pricesA, pricesB, ratiosA, ratiosB)
	if errRatioA != nil || errRatioB != nil {
		sublog.Warn().AnErr("ratios_a", errRatioA).AnErr("ratios_b", errRatioB).Msg("fundamental ratios unavailable, comparison degraded")
		data.addNote("Fundamental ratios are unavailable right now, so the fiscal year comparison is missing")
	}
	comparisonsBuilt.Inc()

	encoded, err := json.Marshal(data)
	if err == nil {
		_, err = redisConn.Do("SET", redisKey, encoded, "EX", comparisonCacheTTL)
	}
	if err != nil {
		sublog.Error().Err(err).Str("redis_key", redisKey).Msg("failed to save to redis")
	}

	return data, nil
}
