package main

import (
	"sort"
	"sync"
	"time"
)

const recentPairMaxAge = 4 * time.Hour

// recentPairTracker remembers which pairs visitors have compared lately,
// across all sessions, so the quote-warming job can keep those symbols
// fresh in the cache. Entries age out after recentPairMaxAge.
type recentPairTracker struct {
	sync.Mutex
	lastSeen map[string]time.Time
}

func newRecentPairTracker() *recentPairTracker {
	return &recentPairTracker{
		lastSeen: make(map[string]time.Time),
	}
}

func (t *recentPairTracker) add(symbolA, symbolB string) {
	t.Lock()
	defer t.Unlock()

	now := time.Now()
	t.lastSeen[symbolA] = now
	t.lastSeen[symbolB] = now
	t.pruneLocked(now)
}

// symbols returns every distinct symbol seen recently, sorted so the
// warming job hits the quote cache in a stable order.
func (t *recentPairTracker) symbols() []string {
	t.Lock()
	defer t.Unlock()

	t.pruneLocked(time.Now())

	symbols := make([]string, 0, len(t.lastSeen))
	for symbol := range t.lastSeen {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

func (t *recentPairTracker) pruneLocked(now time.Time) {
	for symbol, seen := range t.lastSeen {
		if now.Sub(seen) > recentPairMaxAge {
			delete(t.lastSeen, symbol)
		}
	}
}
