package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"UptrendScanner/internal/metrics"
	"UptrendScanner/internal/model"
	"UptrendScanner/internal/report"
	"UptrendScanner/internal/scanner"
)

type fakeScanner struct {
	universe model.Universe
	gotCats  []string
	called   bool
}

func (f *fakeScanner) Universe() model.Universe { return f.universe }

func (f *fakeScanner) Run(_ context.Context, trigger model.TriggerType, cats []string) (*model.ScanResult, error) {
	f.called = true
	f.gotCats = cats
	res := &model.ScanResult{ID: "r1", Trigger: trigger, Categories: cats, Records: []model.SignalRecord{}}
	for _, k := range cats {
		c, ok := f.universe.Lookup(k)
		if !ok {
			return nil, scanner.ErrUnknownCategory
		}
		for i, s := range c.Symbols {
			score := 40 + 20*i
			res.Records = append(res.Records, model.SignalRecord{Symbol: s, Category: c.Label, Score: score, IsUptrend: score >= 60})
		}
		res.Attempted += len(c.Symbols)
	}
	return res, nil
}

func (f *fakeScanner) Analyze(_ context.Context, symbol string) (model.SignalRecord, error) {
	if symbol == "NOPE" {
		return model.SignalRecord{}, scanner.ErrDataUnavailable
	}
	return model.SignalRecord{Symbol: symbol, Score: 75, IsUptrend: true}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeScanner) {
	t.Helper()
	fs := &fakeScanner{universe: model.Universe{
		{Key: "tech", Label: "Tech", Symbols: []string{"AAPL", "MSFT", "NVDA"}},
		{Key: "div", Label: "Dividend", Symbols: []string{"KO"}},
	}}
	srv := httptest.NewServer(NewRouter(&API{
		Scanner:    fs,
		Categories: []string{"tech"},
		Filter:     report.Filter{MinScore: 60, UptrendOnly: true},
		Metrics:    metrics.NewMetrics(),
	}))
	t.Cleanup(srv.Close)
	return srv, fs
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func get(t *testing.T, url string) (int, envelope) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	code, env := get(t, srv.URL+"/health")
	if code != http.StatusOK || !env.Success {
		t.Errorf("health = %d %+v", code, env)
	}
}

func TestCategories(t *testing.T) {
	srv, _ := newTestServer(t)
	code, env := get(t, srv.URL+"/api/categories")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var cats []categoryInfo
	if err := json.Unmarshal(env.Data, &cats); err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 || !cats[0].Selected || cats[1].Selected || len(cats[0].Symbols) != 3 {
		t.Errorf("categories = %+v", cats)
	}
}

func TestScan(t *testing.T) {
	srv, fs := newTestServer(t)

	tests := []struct {
		name        string
		query       string
		wantCats    string
		wantSignals string
		wantTotal   int
	}{
		{"defaults", "", "tech", "NVDA,MSFT", 3},
		{"explicit", "?categories=tech,div&min_score=70", "tech,div", "NVDA", 4},
		{"all symbols", "?categories=div&all=true&min_score=0", "div", "KO", 1},
		{"empty selection", "?categories=", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := get(t, srv.URL+"/api/scan"+tt.query)
			if code != http.StatusOK {
				t.Fatalf("status = %d (%s)", code, env.Error)
			}
			if got := strings.Join(fs.gotCats, ","); got != tt.wantCats {
				t.Errorf("categories = %q, want %q", got, tt.wantCats)
			}
			var resp scanResponse
			if err := json.Unmarshal(env.Data, &resp); err != nil {
				t.Fatal(err)
			}
			syms := make([]string, len(resp.Signals))
			for i, s := range resp.Signals {
				syms[i] = s.Symbol
			}
			if got := strings.Join(syms, ","); got != tt.wantSignals {
				t.Errorf("signals = %q, want %q", got, tt.wantSignals)
			}
			if resp.Summary.Total != tt.wantTotal || resp.Trigger != model.TriggerAPI {
				t.Errorf("summary = %+v trigger = %s", resp.Summary, resp.Trigger)
			}
		})
	}
}

func TestScan_BadRequests(t *testing.T) {
	srv, fs := newTestServer(t)
	for _, q := range []string{"?min_score=101", "?min_score=abc", "?all=maybe", "?categories=mars"} {
		fs.called = false
		code, env := get(t, srv.URL+"/api/scan"+q)
		if code != http.StatusBadRequest || env.Success {
			t.Errorf("%s: status = %d", q, code)
		}
	}
}

func TestSymbol(t *testing.T) {
	srv, _ := newTestServer(t)
	code, env := get(t, srv.URL+"/api/symbols/brk.b")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var rec struct {
		Symbol string `json:"symbol"`
		Score  int    `json:"score"`
	}
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		t.Fatal(err)
	}
	if rec.Symbol != "BRK.B" || rec.Score != 75 {
		t.Errorf("record = %+v", rec)
	}

	code, env = get(t, srv.URL+"/api/symbols/nope")
	if code != http.StatusNotFound || env.Success {
		t.Errorf("missing symbol: status = %d", code)
	}
}

func TestMetricsRoute(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
