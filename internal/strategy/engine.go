package strategy

import "UptrendScanner/internal/model"

const (
	// MinBars is the shortest series that can produce a signal (SMA50 lookback).
	MinBars = 50
	// UptrendThreshold is the minimum score flagged as an uptrend.
	UptrendThreshold = 60
)

// Rule is one row of the scoring table.
type Rule struct {
	Condition model.Condition
	Points    int
	Match     func(model.Bar) bool
}

// Rules is indexed by condition; every condition has exactly one row.
var Rules = [model.NumConditions]Rule{
	model.PriceAboveMA:       {model.PriceAboveMA, 25, priceAboveMA},
	model.MABullishOrder:     {model.MABullishOrder, 20, maBullishOrder},
	model.MACDBullish:        {model.MACDBullish, 15, macdBullish},
	model.RSIFavorable:       {model.RSIFavorable, 10, rsiFavorable},
	model.BBBreakout:         {model.BBBreakout, 15, bbBreakout},
	model.StrongTrend:        {model.StrongTrend, 10, strongTrend},
	model.VolumeConfirmation: {model.VolumeConfirmation, 5, volumeConfirmation},
}

// MaxScore is the score when every rule fires.
func MaxScore() int {
	total := 0
	for _, r := range Rules {
		total += r.Points
	}
	return total
}

// Points returns the award for a single condition.
func Points(c model.Condition) int {
	return Rules[c].Points
}

// Evaluate scores the most recent bar of an indicator-enriched series.
// Series shorter than MinBars yield the zero evaluation.
func Evaluate(bars []model.Bar) model.Evaluation {
	if len(bars) < MinBars {
		return model.Evaluation{}
	}
	latest := bars[len(bars)-1]

	var ev model.Evaluation
	for _, r := range Rules {
		if r.Match(latest) {
			ev.Signals[r.Condition] = true
			ev.Score += r.Points
		}
	}
	ev.IsUptrend = ev.Score >= UptrendThreshold
	return ev
}
