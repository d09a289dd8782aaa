package calculator

import (
	talib "github.com/markcheno/go-talib"

	"UptrendScanner/internal/model"
)

// SMA computes the simple moving average over the trailing period values.
// Entries before the first full window are undefined.
func SMA(values []float64, period int) []model.Value {
	out := make([]model.Value, len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	raw := talib.Sma(values, period)
	return defined(out, raw, period-1)
}

// EMA computes the exponential moving average with multiplier 2/(period+1),
// seeded by the SMA of the first period values.
func EMA(values []float64, period int) []model.Value {
	out := make([]model.Value, len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	raw := talib.Ema(values, period)
	return defined(out, raw, period-1)
}

// defined copies raw[from:] into out as defined readings.
func defined(out []model.Value, raw []float64, from int) []model.Value {
	for i := from; i < len(raw) && i < len(out); i++ {
		out[i] = model.Some(raw[i])
	}
	return out
}
