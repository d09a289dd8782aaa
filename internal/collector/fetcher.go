package collector

import (
	"context"
	"fmt"

	"UptrendScanner/internal/model"
)

// Fetcher defines the data-source boundary: daily bars for one symbol over a period.
// An empty slice with a nil error means the source had nothing for the symbol.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, period Period) ([]model.OHLCV, error)
	Name() string
}

// Period is a lookback range in provider notation.
type Period string

const (
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
)

// DefaultPeriod is the lookback used for scans.
const DefaultPeriod = Period6Mo

var periodDays = map[Period]int{
	Period1Mo: 30,
	Period3Mo: 90,
	Period6Mo: 180,
	Period1Y:  365,
	Period2Y:  730,
}

// ParsePeriod validates a period string.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if _, ok := periodDays[p]; !ok {
		return "", fmt.Errorf("unknown period %q", s)
	}
	return p, nil
}

// Days returns the calendar days covered by the period.
func (p Period) Days() int {
	if d, ok := periodDays[p]; ok {
		return d
	}
	return periodDays[DefaultPeriod]
}

// TradingDays approximates the number of weekday sessions in the period.
func (p Period) TradingDays() int {
	return p.Days() * 5 / 7
}
