package collector

import (
	"context"
	"sync"
	"time"

	"UptrendScanner/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols without an entry in Bars or Errs get a generated series around Price.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.OHLCV
	Errs  map[string]error

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, symbol string, period Period) ([]model.OHLCV, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[symbol]++
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	if m.Price <= 0 {
		return nil, nil
	}
	return generateMockBars(m.Price, period.TradingDays()), nil
}

// Calls reports how many times symbol was requested.
func (m *MockFetcher) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	y, mo, d := time.Now().UTC().Date()
	today := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   today.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
