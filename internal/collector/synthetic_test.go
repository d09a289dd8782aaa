package collector

import (
	"context"
	"reflect"
	"testing"
	"time"

	"UptrendScanner/internal/calculator"
)

var fixedNow = time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

func TestGenerateSynthetic_Deterministic(t *testing.T) {
	a := GenerateSynthetic("AAPL", fixedNow, 180)
	b := GenerateSynthetic("AAPL", fixedNow, 180)
	if !reflect.DeepEqual(a, b) {
		t.Error("same symbol and date should produce identical series")
	}
	c := GenerateSynthetic("MSFT", fixedNow, 180)
	if reflect.DeepEqual(a, c) {
		t.Error("different symbols should produce different series")
	}
}

func TestGenerateSynthetic_Shape(t *testing.T) {
	bars := GenerateSynthetic("NVDA", fixedNow, 180)
	if len(bars) != 181 {
		t.Fatalf("len = %d, want 181", len(bars))
	}
	last := bars[len(bars)-1].Time
	if !last.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("last bar at %v, want midnight of now's date", last)
	}
	for i, b := range bars {
		if b.High < b.Open || b.High < b.Close || b.Low > b.Open || b.Low > b.Close {
			t.Fatalf("bar %d violates high/low envelope: %+v", i, b)
		}
		if b.Volume < 1e6 || b.Volume >= 1e7 {
			t.Fatalf("bar %d volume %v out of range", i, b.Volume)
		}
	}
	if err := calculator.Validate(bars); err != nil {
		t.Errorf("synthetic series should validate: %v", err)
	}
}

func TestGenerateSynthetic_NoDays(t *testing.T) {
	if bars := GenerateSynthetic("AAPL", fixedNow, 0); bars != nil {
		t.Errorf("expected nil, got %d bars", len(bars))
	}
}

func TestSyntheticFetcher_UsesPeriod(t *testing.T) {
	f := &SyntheticFetcher{Now: func() time.Time { return fixedNow }}
	bars, err := f.FetchDailyBars(context.Background(), "SPY", Period1Mo)
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 31 {
		t.Errorf("len = %d, want 31", len(bars))
	}
}
