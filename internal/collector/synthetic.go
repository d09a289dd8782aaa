package collector

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"UptrendScanner/internal/model"
)

// SyntheticFetcher generates deterministic demo bars for offline use.
// The same symbol and clock date always produce the same series.
type SyntheticFetcher struct {
	Now func() time.Time
}

// NewSyntheticFetcher creates a generator driven by the wall clock.
func NewSyntheticFetcher() *SyntheticFetcher {
	return &SyntheticFetcher{Now: time.Now}
}

func (s *SyntheticFetcher) Name() string { return "synthetic" }

func (s *SyntheticFetcher) FetchDailyBars(_ context.Context, symbol string, period Period) ([]model.OHLCV, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return GenerateSynthetic(symbol, now(), period.Days()), nil
}

// GenerateSynthetic builds days+1 daily bars ending on now's date with a mild
// upward drift: returns ~ N(0.1%, 2%).
func GenerateSynthetic(symbol string, now time.Time, days int) []model.OHLCV {
	if days < 1 {
		return nil
	}
	r := rand.New(rand.NewSource(symbolSeed(symbol)))
	n := days + 1
	y, m, d := now.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)

	base := 100 + uniform(r, -50, 200)
	returns := make([]float64, n)
	for i := range returns {
		returns[i] = 0.001 + 0.02*r.NormFloat64()
	}
	prices := make([]float64, n)
	prices[0] = base
	for i := 1; i < n; i++ {
		prices[i] = prices[i-1] * (1 + returns[i])
	}

	highs := make([]float64, n)
	for i, p := range prices {
		highs[i] = p * (1 + uniform(r, 0, 0.03))
	}
	lows := make([]float64, n)
	for i, p := range prices {
		lows[i] = p * (1 - uniform(r, 0, 0.03))
	}

	bars := make([]model.OHLCV, n)
	for i, p := range prices {
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   p,
			High:   math.Max(p, highs[i]),
			Low:    math.Min(p, lows[i]),
			Close:  p,
			Volume: float64(1_000_000 + r.Int63n(9_000_000)),
		}
	}
	return bars
}

func symbolSeed(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return int64(h.Sum64() % 2147483647)
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}
