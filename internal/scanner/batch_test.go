package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"UptrendScanner/internal/collector"
	"UptrendScanner/internal/model"
)

// fakeAnalyzer fails for symbols in fail and scores everything else by name length.
type fakeAnalyzer struct {
	fail  map[string]bool
	delay time.Duration

	mu       sync.Mutex
	calls    []string
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, symbol string) (model.SignalRecord, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	f.mu.Lock()
	f.calls = append(f.calls, symbol)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.fail[symbol] {
		return model.SignalRecord{}, fmt.Errorf("%w: %s", ErrDataUnavailable, symbol)
	}
	score := 10 * len(symbol)
	return model.SignalRecord{Symbol: symbol, Score: score, IsUptrend: score >= 60}, nil
}

func tenSymbols() []string {
	syms := make([]string, 10)
	for i := range syms {
		syms[i] = fmt.Sprintf("S%02d", i)
	}
	return syms
}

func TestRun_FailuresAreDropped(t *testing.T) {
	u := model.Universe{{Key: "us", Label: "US Stocks", Symbols: tenSymbols()}}
	fa := &fakeAnalyzer{fail: map[string]bool{"S01": true, "S04": true, "S08": true}}
	r := NewRunner(fa, u, 4, nil)

	res, err := r.Run(context.Background(), model.TriggerManual, []string{"us"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Records) != 7 {
		t.Errorf("records = %d, want 7", len(res.Records))
	}
	if res.Attempted != 10 || res.Failed != 3 {
		t.Errorf("attempted=%d failed=%d", res.Attempted, res.Failed)
	}
	if res.ID == "" || res.Trigger != model.TriggerManual {
		t.Errorf("result metadata = %q %q", res.ID, res.Trigger)
	}
	for i, rec := range res.Records {
		if rec.Category != "US Stocks" {
			t.Errorf("record %d category = %q", i, rec.Category)
		}
		if i > 0 && res.Records[i-1].Symbol >= rec.Symbol {
			t.Errorf("records not in symbol order at %d", i)
		}
	}
}

func TestRun_DuplicatesAcrossCategoriesKept(t *testing.T) {
	u := model.Universe{
		{Key: "tech", Label: "Tech", Symbols: []string{"AAPL", "MSFT"}},
		{Key: "div", Label: "Dividend", Symbols: []string{"MSFT", "KO"}},
	}
	fa := &fakeAnalyzer{}
	res, err := NewRunner(fa, u, 0, nil).Run(context.Background(), model.TriggerAPI, []string{"tech", "div"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 4 {
		t.Fatalf("records = %d, want 4", len(res.Records))
	}
	var cats []string
	for _, rec := range res.Records {
		if rec.Symbol == "MSFT" {
			cats = append(cats, rec.Category)
		}
	}
	if len(cats) != 2 || cats[0] != "Tech" || cats[1] != "Dividend" {
		t.Errorf("MSFT categories = %v", cats)
	}
}

func TestRun_EmptySelection(t *testing.T) {
	fa := &fakeAnalyzer{}
	u := model.Universe{{Key: "us", Symbols: tenSymbols()}}
	res, err := NewRunner(fa, u, 0, nil).Run(context.Background(), model.TriggerManual, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Records) != 0 || res.Attempted != 0 || res.NoData() {
		t.Errorf("empty selection result = %+v", res)
	}
	if len(fa.calls) != 0 {
		t.Errorf("analyzer called %d times", len(fa.calls))
	}
}

func TestRun_UnknownCategory(t *testing.T) {
	fa := &fakeAnalyzer{}
	u := model.Universe{{Key: "us", Symbols: tenSymbols()}}
	_, err := NewRunner(fa, u, 0, nil).Run(context.Background(), model.TriggerManual, []string{"us", "mars"})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("err = %v, want ErrUnknownCategory", err)
	}
	if len(fa.calls) != 0 {
		t.Error("no work should start when the selection is invalid")
	}
}

func TestRun_AllFailedIsNoData(t *testing.T) {
	fail := map[string]bool{}
	for _, s := range tenSymbols() {
		fail[s] = true
	}
	u := model.Universe{{Key: "us", Symbols: tenSymbols()}}
	res, err := NewRunner(&fakeAnalyzer{fail: fail}, u, 0, nil).Run(context.Background(), model.TriggerManual, []string{"us"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.NoData() {
		t.Error("all failures should report no data")
	}
	if res.Records == nil {
		t.Error("records should be an empty, non-nil slice")
	}
}

func TestRun_ConcurrencyBound(t *testing.T) {
	syms := make([]string, 30)
	for i := range syms {
		syms[i] = fmt.Sprintf("X%02d", i)
	}
	fa := &fakeAnalyzer{delay: 5 * time.Millisecond}
	u := model.Universe{{Key: "big", Symbols: syms}}
	if _, err := NewRunner(fa, u, 3, nil).Run(context.Background(), model.TriggerManual, []string{"big"}); err != nil {
		t.Fatal(err)
	}
	if p := fa.peak.Load(); p > 3 {
		t.Errorf("peak in-flight = %d, want <= 3", p)
	}
	if len(fa.calls) != 30 {
		t.Errorf("calls = %d, want 30", len(fa.calls))
	}
}

func TestRun_WithRealAnalyzer(t *testing.T) {
	mock := &collector.MockFetcher{
		Bars: map[string][]model.OHLCV{"UP": risingBars(120), "SHORT": risingBars(20)},
		Errs: map[string]error{"DOWN": errors.New("503")},
	}
	u := model.Universe{{Key: "mix", Label: "Mixed", Symbols: []string{"UP", "DOWN", "SHORT"}}}
	r := NewRunner(NewAnalyzer(mock, Options{}, nil), u, 2, nil)

	res, err := r.Run(context.Background(), model.TriggerScheduled, []string{"mix"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 2 || res.Failed != 1 {
		t.Fatalf("records=%d failed=%d", len(res.Records), res.Failed)
	}
	if res.Records[0].Symbol != "UP" || !res.Records[0].IsUptrend {
		t.Errorf("UP record = %+v", res.Records[0])
	}
	if res.Records[1].Symbol != "SHORT" || res.Records[1].Score != 0 {
		t.Errorf("SHORT record = %+v", res.Records[1])
	}
}
