package main

import (
	"html/template"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/oxtoacart/bpool"
	"github.com/rs/zerolog"

	"github.com/weirdtangent/myaws"
)

const (
	skipRedisChecks = false // always skip the redis cache info

	dateKeyFormat   = "2006-01-02"
	fullupParseType = "2006-01-02 15:04:05"

	defaultCorrelationWindow = 120
	minComparisonDays        = 15
	maxComparisonDays        = 1825
	minCorrelationWindow     = 2
	maxCorrelationWindow     = 500
	maxRecentPairs           = 6

	comparisonCacheTTL  = 60 * 20      // sec, whole memoized comparison
	summaryCacheTTL     = 60 * 60 * 24 // sec, ticker info
	quoteCacheTTL       = 20           // sec, live quotes during market hours
	closedQuoteCacheTTL = 60 * 60      // sec, live quotes after the close
	eodCacheTTL         = 60 * 60 * 6  // sec, price history
	ratiosCacheTTL      = 60 * 60 * 24 // sec, annual fundamental ratios
	newsCacheTTL        = 60 * 60      // sec, news search results

	debugging = true // output DEBUG level logs
)

func main() {
	ctx := setupLogging()

	cfg, err := loadConfig("pairwatch.yml")
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to load config")
	}

	// connect to AWS
	awssess, err := myaws.AWSConnect(cfg.AWS.Region, cfg.AWS.ProfileName)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to connect to AWS")
	}

	// redis holds provider caches and memoized comparisons, nothing durable
	redisPool := &redis.Pool{
		MaxIdle:     8,
		IdleTimeout: 240 * time.Second,
		Dial:        func() (redis.Conn, error) { return redis.Dial("tcp", cfg.Redis.Address) },
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}

	secrets := getSecrets(ctx, awssess, cfg)
	secureCookie, store := setupSessionsStore(ctx, awssess, cfg)

	templates, err := parseTemplates()
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to parse templates")
	}

	deps := &Dependencies{
		awssess:      awssess,
		cfg:          cfg,
		cookieStore:  store,
		secureCookie: secureCookie,
		redisPool:    redisPool,
		secrets:      secrets,
		templates:    templates,
		bufpool:      bpool.NewBufferPool(64),
		recentPairs:  newRecentPairTracker(),
	}
	deps.providers = newProviderGuard(ctx, deps)

	startCronJobs(ctx, deps)
	startHTTPServer(ctx, deps)
}

func parseTemplates() (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs())
	tmpl, err := tmpl.ParseGlob("templates/*.html")
	if err != nil {
		return nil, err
	}
	return tmpl.ParseGlob("templates/charts/*.gohtml")
}
