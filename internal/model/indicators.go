package model

import (
	"encoding/json"
	"math"
)

// Value is an indicator reading that may be undefined because its lookback
// window is not yet satisfied.
type Value struct {
	V     float64
	Valid bool
}

// Some wraps a defined reading.
func Some(v float64) Value { return Value{V: v, Valid: true} }

// Get returns the reading and whether it is defined.
func (v Value) Get() (float64, bool) { return v.V, v.Valid }

// Above reports v > o. Undefined on either side is false.
func (v Value) Above(o Value) bool {
	return v.Valid && o.Valid && v.V > o.V
}

// AboveConst reports v > x. Undefined is false.
func (v Value) AboveConst(x float64) bool {
	return v.Valid && v.V > x
}

// BelowConst reports v < x. Undefined is false.
func (v Value) BelowConst(x float64) bool {
	return v.Valid && v.V < x
}

// MarshalJSON renders undefined readings as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid || math.IsNaN(v.V) || math.IsInf(v.V, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// IndicatorSet holds every derived value attached to one bar.
type IndicatorSet struct {
	SMA20      Value `json:"sma_20"`
	SMA50      Value `json:"sma_50"`
	EMA12      Value `json:"ema_12"`
	EMA26      Value `json:"ema_26"`
	MACD       Value `json:"macd"`
	MACDSignal Value `json:"macd_signal"`
	RSI        Value `json:"rsi"`
	BBUpper    Value `json:"bb_upper"`
	BBMid      Value `json:"bb_mid"`
	BBLower    Value `json:"bb_lower"`
	ADX        Value `json:"adx"`
	VolumeSMA  Value `json:"volume_sma"`
}

// Bar is an OHLCV bar enriched with its indicator set.
type Bar struct {
	OHLCV
	Indicators IndicatorSet `json:"indicators"`
}

// Plain wraps raw bars with empty indicator sets.
func Plain(bars []OHLCV) []Bar {
	out := make([]Bar, len(bars))
	for i, b := range bars {
		out[i] = Bar{OHLCV: b}
	}
	return out
}
