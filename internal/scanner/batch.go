package scanner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"UptrendScanner/internal/metrics"
	"UptrendScanner/internal/model"
)

// DefaultConcurrency bounds in-flight analyses per category.
const DefaultConcurrency = 10

// ErrUnknownCategory is returned when a selection names a category that is not configured.
var ErrUnknownCategory = errors.New("unknown category")

// SymbolAnalyzer analyzes a single symbol.
type SymbolAnalyzer interface {
	Analyze(ctx context.Context, symbol string) (model.SignalRecord, error)
}

// Runner fans analyses out across the selected categories of a universe.
type Runner struct {
	analyzer    SymbolAnalyzer
	universe    model.Universe
	concurrency int
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewRunner creates a Runner. concurrency < 1 selects DefaultConcurrency; m may be nil.
func NewRunner(analyzer SymbolAnalyzer, universe model.Universe, concurrency int, m *metrics.Metrics) *Runner {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Runner{
		analyzer:    analyzer,
		universe:    universe,
		concurrency: concurrency,
		metrics:     m,
		now:         time.Now,
	}
}

// Universe returns the configured categories.
func (r *Runner) Universe() model.Universe { return r.universe }

// Analyze runs a single-symbol analysis outside of any batch.
func (r *Runner) Analyze(ctx context.Context, symbol string) (model.SignalRecord, error) {
	return r.analyzer.Analyze(ctx, symbol)
}

// Run analyzes every symbol of the selected categories, one category at a time.
// Per-symbol failures are counted and logged, never returned. An empty
// selection performs no work.
func (r *Runner) Run(ctx context.Context, trigger model.TriggerType, keys []string) (*model.ScanResult, error) {
	cats := make([]model.Category, 0, len(keys))
	for _, k := range keys {
		c, ok := r.universe.Lookup(k)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, k)
		}
		cats = append(cats, c)
	}

	result := &model.ScanResult{
		ID:         uuid.NewString(),
		Trigger:    trigger,
		Categories: keys,
		Records:    []model.SignalRecord{},
		StartedAt:  r.now(),
	}
	if len(cats) == 0 {
		result.FinishedAt = result.StartedAt
		return result, nil
	}

	log.Printf("[INFO] scan %s (%s) started: %d categories", result.ID, trigger, len(cats))
	for _, c := range cats {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("scan %s: %w", result.ID, err)
		}
		records, failed := r.runCategory(ctx, c)
		result.Records = append(result.Records, records...)
		result.Attempted += len(c.Symbols)
		result.Failed += failed
	}
	result.FinishedAt = r.now()

	uptrend := 0
	for _, rec := range result.Records {
		if rec.IsUptrend {
			uptrend++
		}
	}
	r.metrics.ObserveScan(result.FinishedAt.Sub(result.StartedAt), len(result.Records), uptrend)
	log.Printf("[INFO] scan %s finished in %s: analyzed=%d failed=%d uptrend=%d",
		result.ID, result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond),
		len(result.Records), result.Failed, uptrend)
	return result, nil
}

// runCategory analyzes one category with a bounded pool and returns the
// successful records in symbol order plus the failure count.
func (r *Runner) runCategory(ctx context.Context, c model.Category) ([]model.SignalRecord, int) {
	label := c.Label
	if label == "" {
		label = c.Key
	}
	slots := make([]*model.SignalRecord, len(c.Symbols))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, sym := range c.Symbols {
		g.Go(func() error {
			rec, err := r.analyzer.Analyze(ctx, sym)
			if err != nil {
				log.Printf("[WARN] %s/%s skipped: %v", c.Key, sym, err)
				return nil
			}
			rec = rec.WithCategory(label)
			slots[i] = &rec
			return nil
		})
	}
	g.Wait()

	records := make([]model.SignalRecord, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			records = append(records, *s)
		}
	}
	return records, len(slots) - len(records)
}
