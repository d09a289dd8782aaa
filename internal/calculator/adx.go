package calculator

import (
	talib "github.com/markcheno/go-talib"

	"UptrendScanner/internal/model"
)

// ADX computes the Wilder average directional index from high/low/close.
// The first reading lands on index 2*period-1.
func ADX(highs, lows, closes []float64, period int) []model.Value {
	n := len(closes)
	out := make([]model.Value, n)
	if period < 2 || n < 2*period || len(highs) != n || len(lows) != n {
		return out
	}
	raw := talib.Adx(highs, lows, closes, period)
	return defined(out, raw, 2*period-1)
}
