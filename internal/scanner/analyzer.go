package scanner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"UptrendScanner/internal/calculator"
	"UptrendScanner/internal/collector"
	"UptrendScanner/internal/metrics"
	"UptrendScanner/internal/model"
	"UptrendScanner/internal/strategy"
)

// ErrDataUnavailable means no usable series could be obtained for a symbol.
// Malformed series are reported the same way.
var ErrDataUnavailable = errors.New("data unavailable")

// Options is the immutable configuration shared by all analyses.
type Options struct {
	DemoMode bool
	Period   collector.Period
	// Now drives the synthetic generator's clock; defaults to time.Now.
	Now func() time.Time
}

// Analyzer turns one symbol into a Signal Record: fetch, compute indicators, score.
type Analyzer struct {
	fetcher collector.Fetcher
	demo    collector.Fetcher
	opts    Options
	metrics *metrics.Metrics
}

// NewAnalyzer creates an Analyzer. m may be nil.
func NewAnalyzer(fetcher collector.Fetcher, opts Options, m *metrics.Metrics) *Analyzer {
	if opts.Period == "" {
		opts.Period = collector.DefaultPeriod
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Analyzer{
		fetcher: fetcher,
		demo:    &collector.SyntheticFetcher{Now: opts.Now},
		opts:    opts,
		metrics: m,
	}
}

// Options returns the analyzer configuration.
func (a *Analyzer) Options() Options { return a.opts }

// Analyze produces the record for symbol. Errors wrap ErrDataUnavailable.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (model.SignalRecord, error) {
	start := time.Now()
	bars, err := a.fetcher.FetchDailyBars(ctx, symbol, a.opts.Period)
	a.metrics.ObserveFetch(time.Since(start))

	synthetic := false
	if (err != nil || len(bars) == 0) && a.opts.DemoMode && ctx.Err() == nil {
		if err != nil {
			log.Printf("[WARN] %s: %v, using synthetic data", symbol, err)
		} else {
			log.Printf("[WARN] %s: no data from %s, using synthetic data", symbol, a.fetcher.Name())
		}
		bars, err = a.demo.FetchDailyBars(ctx, symbol, a.opts.Period)
		synthetic = true
		a.metrics.ObserveDemoFallback()
	}
	if err != nil {
		a.metrics.ObserveAnalysis(metrics.OutcomeUnavailable)
		return model.SignalRecord{}, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, symbol, err)
	}
	if len(bars) == 0 {
		a.metrics.ObserveAnalysis(metrics.OutcomeUnavailable)
		return model.SignalRecord{}, fmt.Errorf("%w: %s: empty series", ErrDataUnavailable, symbol)
	}

	enriched, err := calculator.Compute(bars)
	if err != nil {
		a.metrics.ObserveAnalysis(metrics.OutcomeMalformed)
		return model.SignalRecord{}, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, symbol, err)
	}
	eval := strategy.Evaluate(enriched)

	latest := enriched[len(enriched)-1]
	rec := model.SignalRecord{
		Symbol:         symbol,
		LatestPrice:    latest.Close,
		PriceChangePct: changePct(bars),
		Score:          eval.Score,
		IsUptrend:      eval.IsUptrend,
		Signals:        eval.Signals,
		Indicators:     latest.Indicators,
		Bars:           len(bars),
		Synthetic:      synthetic,
		AsOf:           latest.Time,
	}
	a.metrics.ObserveAnalysis(metrics.OutcomeOK)
	return rec, nil
}

// changePct is the last close's change against the previous close, in percent.
func changePct(bars []model.OHLCV) float64 {
	if len(bars) < 2 {
		return 0
	}
	prev := bars[len(bars)-2].Close
	if prev == 0 {
		return 0
	}
	return (bars[len(bars)-1].Close - prev) / prev * 100
}
