package strategy

import "UptrendScanner/internal/model"

// priceAboveMA: close > SMA20 > SMA50.
func priceAboveMA(b model.Bar) bool {
	ind := b.Indicators
	return model.Some(b.Close).Above(ind.SMA20) && ind.SMA20.Above(ind.SMA50)
}

// maBullishOrder: SMA20 > SMA50.
func maBullishOrder(b model.Bar) bool {
	return b.Indicators.SMA20.Above(b.Indicators.SMA50)
}

// macdBullish: MACD above its signal line and above zero.
func macdBullish(b model.Bar) bool {
	ind := b.Indicators
	return ind.MACD.Above(ind.MACDSignal) && ind.MACD.AboveConst(0)
}

// rsiFavorable: 30 < RSI < 70, strict on both sides.
func rsiFavorable(b model.Bar) bool {
	rsi := b.Indicators.RSI
	return rsi.AboveConst(30) && rsi.BelowConst(70)
}

// bbBreakout: close above the upper Bollinger band.
func bbBreakout(b model.Bar) bool {
	return model.Some(b.Close).Above(b.Indicators.BBUpper)
}

// strongTrend: ADX > 25.
func strongTrend(b model.Bar) bool {
	return b.Indicators.ADX.AboveConst(25)
}

// volumeConfirmation: volume above its 20-day average.
func volumeConfirmation(b model.Bar) bool {
	return model.Some(b.Volume).Above(b.Indicators.VolumeSMA)
}
