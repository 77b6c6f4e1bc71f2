package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/weirdtangent/mytime"
)

// Background jobs: a market clock for the metrics gauge, quote warming for
// recently compared symbols while the market is open, and an after-close
// sweep that re-pulls closing prices so the first comparison of the evening
// doesn't wait on the provider.
func startCronJobs(ctx context.Context, deps *Dependencies) *cron.Cron {
	sublog := zerolog.Ctx(ctx).With().Str("worker", "cron").Logger()

	easternTZ, err := time.LoadLocation("America/New_York")
	if err != nil {
		sublog.Fatal().Err(err).Msg("Failed to load eastern timezone")
	}
	scheduler := cron.New(cron.WithSeconds(), cron.WithLocation(easternTZ))

	if _, err := scheduler.AddFunc("0 * * * * *", func() {
		if isMarketOpen() {
			marketOpenGauge.Set(1)
		} else {
			marketOpenGauge.Set(0)
		}
	}); err != nil {
		sublog.Fatal().Err(err).Msg("Failed to schedule market clock job")
	}

	if _, err := scheduler.AddFunc("0 */15 * * * *", func() {
		if !isMarketOpen() {
			return
		}
		warmRecentQuotes(ctx, deps, sublog)
	}); err != nil {
		sublog.Fatal().Err(err).Msg("Failed to schedule quote warming job")
	}

	// 20 min after the close, weekdays
	if _, err := scheduler.AddFunc("0 20 16 * * MON-FRI", func() {
		refreshClosingPrices(ctx, deps, sublog)
	}); err != nil {
		sublog.Fatal().Err(err).Msg("Failed to schedule closing price job")
	}

	scheduler.Start()
	sublog.Info().Msg("started background jobs")

	return scheduler
}

func warmRecentQuotes(ctx context.Context, deps *Dependencies, sublog zerolog.Logger) {
	symbols := deps.recentPairs.symbols()
	if len(symbols) == 0 {
		return
	}

	quotes, err := loadMultiTickerQuotes(ctx, deps, symbols)
	if err != nil {
		sublog.Error().Err(err).Msg("Failed to warm quotes for recent pairs")
		return
	}
	sublog.Info().Int("symbols", len(quotes)).Msg("warmed quotes for recently compared symbols")
}

func refreshClosingPrices(ctx context.Context, deps *Dependencies, sublog zerolog.Logger) {
	symbols := deps.recentPairs.symbols()
	if len(symbols) == 0 {
		return
	}

	easternTZ, _ := time.LoadLocation("America/New_York")
	nextTradingDay, err := mytime.NextBusinessDayStr(time.Now().In(easternTZ).Format(fullupParseType))
	if err != nil {
		sublog.Error().Err(err).Msg("Failed to get next business day")
		nextTradingDay = ""
	}

	// expire the cached histories so the reload actually hits the provider
	redisConn := deps.redisPool.Get()
	for _, symbol := range symbols {
		if _, err := redisConn.Do("DEL", "yhfinance/eod/"+symbol); err != nil {
			sublog.Error().Err(err).Str("symbol", symbol).Msg("Failed to expire cached price history")
		}
	}
	redisConn.Close()

	refreshed := 0
	for _, symbol := range symbols {
		if _, err := loadPriceHistory(ctx, deps, symbol, deps.cfg.Compare.DefaultTimespan); err != nil {
			sublog.Error().Err(err).Str("symbol", symbol).Msg("Failed to refresh closing prices")
			continue
		}
		refreshed++
	}
	sublog.Info().Int("symbols", refreshed).Str("next_trading_day", nextTradingDay).Msg("refreshed closing prices after market close")
}
