package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// provider names used for rate limiting, circuit breaking, and metrics
const (
	providerYHFinance = "yhfinance"
	providerFMP       = "fmp"
)

// providerGuard wraps every upstream API call with a per-provider rate
// limiter and circuit breaker, so a flapping provider can't eat our request
// quota or stall page loads. When a breaker opens we page ops over SNS and
// serve whatever is still in the redis cache.
type providerGuard struct {
	deps     *Dependencies
	limiters map[string]*rate.Limiter
	breakers map[string]*gobreaker.CircuitBreaker
}

func newProviderGuard(ctx context.Context, deps *Dependencies) *providerGuard {
	guard := &providerGuard{
		deps:     deps,
		limiters: make(map[string]*rate.Limiter),
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
	for _, provider := range []string{providerYHFinance, providerFMP} {
		guard.limiters[provider] = rate.NewLimiter(rate.Limit(deps.cfg.Providers.RPS), deps.cfg.Providers.Burst)
		guard.breakers[provider] = gobreaker.NewCircuitBreaker(breakerSettings(deps, provider))
	}
	return guard
}

// breakerSettings trips a provider after 5 straight failures, or after 60%
// failures once we've seen at least 10 requests. An open breaker retries one
// probe request after 60 seconds.
func breakerSettings(deps *Dependencies, provider string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        provider,
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= 5 {
				return true
			}
			if counts.Requests >= 10 {
				failureRate := float64(counts.TotalFailures) / float64(counts.Requests)
				return failureRate >= 0.6
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			sublog := deps.logger
			sublog.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("provider circuit breaker changed state")

			if to == gobreaker.StateOpen {
				providerBreakerOpen.WithLabelValues(name).Set(1)
				notification := fmt.Sprintf("circuit breaker for %s opened after repeated failures, calls paused for 60 sec", name)
				_, err := sendNotification(deps, deps.cfg.AWS.AlertTopic, "breaker-open", notification)
				if err != nil {
					sublog.Error().Err(err).Str("provider", name).Msg("failed to send breaker-open notification")
				}
			} else {
				providerBreakerOpen.WithLabelValues(name).Set(0)
			}
		},
	}
}

// guardedCall runs one provider request through the limiter and breaker and
// returns the provider's raw response body.
func (g *providerGuard) guardedCall(ctx context.Context, provider string, fn func() (string, error)) (string, error) {
	limiter, ok := g.limiters[provider]
	if !ok {
		return "", fmt.Errorf("unknown provider %s: %w", provider, errProviderFetch)
	}
	if err := limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait for %s: %w", provider, err)
	}

	response, err := g.breakers[provider].Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		providerRequests.WithLabelValues(provider, "error").Inc()
		return "", fmt.Errorf("%s call failed: %w: %v", provider, errProviderFetch, err)
	}
	providerRequests.WithLabelValues(provider, "ok").Inc()

	return response.(string), nil
}
