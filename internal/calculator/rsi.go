package calculator

import (
	talib "github.com/markcheno/go-talib"

	"UptrendScanner/internal/model"
)

// RSI computes the Wilder-smoothed relative strength index.
// Requires period+1 closes for the first reading.
func RSI(closes []float64, period int) []model.Value {
	out := make([]model.Value, len(closes))
	if period < 2 || len(closes) <= period {
		return out
	}
	raw := talib.Rsi(closes, period)
	return defined(out, raw, period)
}
