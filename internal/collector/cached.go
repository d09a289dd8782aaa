package collector

import (
	"context"
	"log"
	"time"

	"UptrendScanner/internal/cache"
	"UptrendScanner/internal/model"
)

// CachedFetcher serves bars from a Store while they are fresher than TTL and
// falls through to the wrapped Fetcher otherwise.
type CachedFetcher struct {
	next  Fetcher
	store cache.Store
	ttl   time.Duration
}

// NewCachedFetcher wraps next with store. A non-positive ttl disables caching.
func NewCachedFetcher(next Fetcher, store cache.Store, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{next: next, store: store, ttl: ttl}
}

func (c *CachedFetcher) Name() string { return c.next.Name() + "+cache" }

func (c *CachedFetcher) FetchDailyBars(ctx context.Context, symbol string, period Period) ([]model.OHLCV, error) {
	if c.ttl <= 0 || c.store == nil {
		return c.next.FetchDailyBars(ctx, symbol, period)
	}

	bars, ok, err := c.store.Load(symbol, string(period), c.ttl)
	if err != nil {
		log.Printf("[WARN] cache load %s/%s: %v", symbol, period, err)
	} else if ok {
		return bars, nil
	}

	bars, err = c.next.FetchDailyBars(ctx, symbol, period)
	if err != nil || len(bars) == 0 {
		return bars, err
	}
	if err := c.store.Save(symbol, string(period), bars); err != nil {
		log.Printf("[WARN] cache save %s/%s: %v", symbol, period, err)
	}
	return bars, nil
}
