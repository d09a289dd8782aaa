package calculator

import (
	talib "github.com/markcheno/go-talib"

	"UptrendScanner/internal/model"
)

// Bands holds Bollinger band series aligned with the input.
type Bands struct {
	Upper  []model.Value
	Middle []model.Value
	Lower  []model.Value
}

// Bollinger computes SMA(period) ± k population standard deviations.
func Bollinger(closes []float64, period int, k float64) Bands {
	n := len(closes)
	b := Bands{
		Upper:  make([]model.Value, n),
		Middle: make([]model.Value, n),
		Lower:  make([]model.Value, n),
	}
	if period < 2 || n < period {
		return b
	}
	upper, middle, lower := talib.BBands(closes, period, k, k, talib.SMA)
	defined(b.Upper, upper, period-1)
	defined(b.Middle, middle, period-1)
	defined(b.Lower, lower, period-1)
	return b
}
