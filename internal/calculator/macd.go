package calculator

import "UptrendScanner/internal/model"

// MACD computes EMA(fast) - EMA(slow) and its EMA(signal) across the series.
func MACD(closes []float64, fast, slow, signal int) (line, sig []model.Value) {
	n := len(closes)
	line = make([]model.Value, n)
	sig = make([]model.Value, n)

	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	start := -1
	for i := 0; i < n; i++ {
		if emaFast[i].Valid && emaSlow[i].Valid {
			line[i] = model.Some(emaFast[i].V - emaSlow[i].V)
			if start < 0 {
				start = i
			}
		}
	}
	if start < 0 {
		return line, sig
	}

	raw := make([]float64, n-start)
	for i := range raw {
		raw[i] = line[start+i].V
	}
	for i, v := range EMA(raw, signal) {
		sig[start+i] = v
	}
	return line, sig
}
