package calculator

import (
	"errors"
	"fmt"
	"math"

	"UptrendScanner/internal/model"
)

var (
	// ErrEmptySeries is returned when there are no bars to compute on.
	ErrEmptySeries = errors.New("empty series")
	// ErrMalformedSeries is returned when bars are out of order or carry unusable fields.
	ErrMalformedSeries = errors.New("malformed series")
)

// Indicator windows.
const (
	SMAShort       = 20
	SMALong        = 50
	EMAFast        = 12
	EMASlow        = 26
	MACDSignal     = 9
	RSIPeriod      = 14
	BollingerSize  = 20
	BollingerWidth = 2.0
	ADXPeriod      = 14
	VolumePeriod   = 20
)

// Compute attaches the full indicator set to every bar.
// On failure it returns the bars with empty indicator sets together with the error.
func Compute(bars []model.OHLCV) ([]model.Bar, error) {
	if err := Validate(bars); err != nil {
		return model.Plain(bars), err
	}

	closes := model.Closes(bars)
	highs := model.Highs(bars)
	lows := model.Lows(bars)
	volumes := model.Volumes(bars)

	sma20 := SMA(closes, SMAShort)
	sma50 := SMA(closes, SMALong)
	ema12 := EMA(closes, EMAFast)
	ema26 := EMA(closes, EMASlow)
	macd, signal := MACD(closes, EMAFast, EMASlow, MACDSignal)
	rsi := RSI(closes, RSIPeriod)
	bb := Bollinger(closes, BollingerSize, BollingerWidth)
	adx := ADX(highs, lows, closes, ADXPeriod)
	volSMA := SMA(volumes, VolumePeriod)

	out := make([]model.Bar, len(bars))
	for i, b := range bars {
		out[i] = model.Bar{
			OHLCV: b,
			Indicators: model.IndicatorSet{
				SMA20:      sma20[i],
				SMA50:      sma50[i],
				EMA12:      ema12[i],
				EMA26:      ema26[i],
				MACD:       macd[i],
				MACDSignal: signal[i],
				RSI:        rsi[i],
				BBUpper:    bb.Upper[i],
				BBMid:      bb.Middle[i],
				BBLower:    bb.Lower[i],
				ADX:        adx[i],
				VolumeSMA:  volSMA[i],
			},
		}
	}
	return out, nil
}

// Validate checks ordering and field sanity of a raw series.
func Validate(bars []model.OHLCV) error {
	if len(bars) == 0 {
		return ErrEmptySeries
	}
	for i, b := range bars {
		if b.Time.IsZero() {
			return fmt.Errorf("%w: bar %d has no date", ErrMalformedSeries, i)
		}
		for _, f := range [...]float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
			if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
				return fmt.Errorf("%w: bar %d (%s) has invalid field", ErrMalformedSeries, i, b.Time.Format("2006-01-02"))
			}
		}
		if b.Close <= 0 {
			return fmt.Errorf("%w: bar %d (%s) has no close", ErrMalformedSeries, i, b.Time.Format("2006-01-02"))
		}
		if b.High < math.Max(b.Open, b.Close) || b.Low > math.Min(b.Open, b.Close) {
			return fmt.Errorf("%w: bar %d (%s) range does not cover open/close", ErrMalformedSeries, i, b.Time.Format("2006-01-02"))
		}
		if i == 0 {
			continue
		}
		if !b.Time.After(bars[i-1].Time) {
			return fmt.Errorf("%w: bar %d (%s) not after previous", ErrMalformedSeries, i, b.Time.Format("2006-01-02"))
		}
		if model.SameDate(b.Time, bars[i-1].Time) {
			return fmt.Errorf("%w: bar %d (%s) duplicates previous date", ErrMalformedSeries, i, b.Time.Format("2006-01-02"))
		}
	}
	return nil
}
