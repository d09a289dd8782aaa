package model

import (
	"encoding/json"
	"time"
)

// TriggerType indicates what started a scan.
type TriggerType string

const (
	TriggerScheduled TriggerType = "SCHEDULED"
	TriggerStartup   TriggerType = "STARTUP"
	TriggerManual    TriggerType = "MANUAL"
	TriggerAPI       TriggerType = "API"
)

// Condition identifies one of the fixed uptrend rules.
type Condition int

const (
	PriceAboveMA Condition = iota
	MABullishOrder
	MACDBullish
	RSIFavorable
	BBBreakout
	StrongTrend
	VolumeConfirmation

	NumConditions
)

var conditionNames = [NumConditions]string{
	PriceAboveMA:       "price_above_ma",
	MABullishOrder:     "ma_bullish_order",
	MACDBullish:        "macd_bullish",
	RSIFavorable:       "rsi_favorable",
	BBBreakout:         "bb_breakout",
	StrongTrend:        "strong_trend",
	VolumeConfirmation: "volume_confirmation",
}

func (c Condition) String() string {
	if c < 0 || c >= NumConditions {
		return "unknown"
	}
	return conditionNames[c]
}

// Signals records which conditions fired on the latest bar.
type Signals [NumConditions]bool

// Has reports whether c fired.
func (s Signals) Has(c Condition) bool { return s[c] }

// Active lists the fired conditions in table order.
func (s Signals) Active() []Condition {
	var out []Condition
	for c := Condition(0); c < NumConditions; c++ {
		if s[c] {
			out = append(out, c)
		}
	}
	return out
}

// Names lists the fired condition names in table order.
func (s Signals) Names() []string {
	active := s.Active()
	out := make([]string, len(active))
	for i, c := range active {
		out[i] = c.String()
	}
	return out
}

// MarshalJSON renders the fired conditions as {"name": true, ...}.
func (s Signals) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool)
	for _, c := range s.Active() {
		m[c.String()] = true
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts the map form produced by MarshalJSON.
func (s *Signals) UnmarshalJSON(data []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = Signals{}
	for c := Condition(0); c < NumConditions; c++ {
		s[c] = m[c.String()]
	}
	return nil
}

// Evaluation is the scorer output for one series.
type Evaluation struct {
	IsUptrend bool    `json:"is_uptrend"`
	Score     int     `json:"score"`
	Signals   Signals `json:"active_signals"`
}

// SignalRecord is the per-symbol result of one scan.
type SignalRecord struct {
	Symbol         string       `json:"symbol"`
	Category       string       `json:"category"`
	LatestPrice    float64      `json:"latest_price"`
	PriceChangePct float64      `json:"price_change_pct"`
	Score          int          `json:"score"`
	IsUptrend      bool         `json:"is_uptrend"`
	Signals        Signals      `json:"active_signals"`
	Indicators     IndicatorSet `json:"indicators"`
	Bars           int          `json:"bars"`
	Synthetic      bool         `json:"synthetic"`
	AsOf           time.Time    `json:"as_of"`
}

// WithCategory returns a copy tagged with the given category label.
func (r SignalRecord) WithCategory(category string) SignalRecord {
	r.Category = category
	return r
}

// ScanResult aggregates all records produced by one batch run.
type ScanResult struct {
	ID         string         `json:"id"`
	Trigger    TriggerType    `json:"trigger"`
	Categories []string       `json:"categories"`
	Records    []SignalRecord `json:"records"`
	Attempted  int            `json:"attempted"`
	Failed     int            `json:"failed"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// NoData reports whether symbols were attempted but none produced a record.
func (r *ScanResult) NoData() bool {
	return r.Attempted > 0 && len(r.Records) == 0
}
