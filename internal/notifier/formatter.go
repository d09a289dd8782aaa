package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"UptrendScanner/internal/model"
	"UptrendScanner/internal/report"
)

// MaxReportRows caps the signals listed in one message.
const MaxReportRows = 15

// FormatScanReport formats a scan view into a Telegram HTML message.
func FormatScanReport(v report.View, f report.Filter) string {
	var b strings.Builder

	date := time.Now()
	if v.Result != nil && !v.Result.FinishedAt.IsZero() {
		date = v.Result.FinishedAt
	}
	b.WriteString(fmt.Sprintf("📈 <b>Uptrend Scan</b> | %s\n\n", date.Format("2006-01-02 15:04")))

	if v.Result != nil && v.Result.NoData() {
		b.WriteString(html.EscapeString(report.NoDataMessage))
		return b.String()
	}

	s := v.Summary
	b.WriteString(fmt.Sprintf("Analyzed: %d\n", s.Total))
	b.WriteString(fmt.Sprintf("Uptrend: %d (%.1f%%)\n", s.Uptrend, s.UptrendPct))
	if f.UptrendOnly {
		b.WriteString(fmt.Sprintf("Shown: %d (uptrend, score ≥ %d)\n", s.Filtered, f.MinScore))
	} else {
		b.WriteString(fmt.Sprintf("Shown: %d (score ≥ %d)\n", s.Filtered, f.MinScore))
	}
	if v.Result != nil && v.Result.Failed > 0 {
		b.WriteString(fmt.Sprintf("Unavailable: %d\n", v.Result.Failed))
	}

	if len(v.Rows) == 0 {
		b.WriteString("\nNo symbols matched the filter.")
		return b.String()
	}

	b.WriteString("\n🏆 <b>Signals:</b>\n")
	for i, r := range v.Rows {
		if i == MaxReportRows {
			b.WriteString(fmt.Sprintf("  … and %d more\n", len(v.Rows)-MaxReportRows))
			break
		}
		b.WriteString(fmt.Sprintf("%d. <b>%s</b> [%s] %s (%+.2f%%) score %d\n",
			i+1, html.EscapeString(r.Symbol), html.EscapeString(r.Category),
			report.FormatPrice(r.LatestPrice), r.PriceChangePct, r.Score))
	}

	if s.Best != nil {
		b.WriteString("\n⭐ <b>Best signal</b>\n")
		b.WriteString(formatRecord(*s.Best))
	}
	return b.String()
}

// FormatProbe formats a single-symbol analysis.
func FormatProbe(r model.SignalRecord) string {
	var b strings.Builder
	b.WriteString("🔎 <b>Probe</b>\n")
	b.WriteString(formatRecord(r))
	if r.Synthetic {
		b.WriteString("⚠️ synthetic data (demo mode)\n")
	}
	return b.String()
}

func formatRecord(r model.SignalRecord) string {
	var b strings.Builder
	b.WriteString(html.EscapeString(r.Symbol))
	if r.Category != "" {
		b.WriteString(fmt.Sprintf(" [%s]", html.EscapeString(r.Category)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Price: %s (%+.2f%%)\n", report.FormatPrice(r.LatestPrice), r.PriceChangePct))
	b.WriteString(fmt.Sprintf("Score: %d/100", r.Score))
	if r.IsUptrend {
		b.WriteString(" ✅ uptrend")
	}
	b.WriteString("\n")

	ind := r.Indicators
	if v, ok := ind.RSI.Get(); ok {
		b.WriteString(fmt.Sprintf("RSI: %.1f", v))
		if adx, ok := ind.ADX.Get(); ok {
			b.WriteString(fmt.Sprintf(" | ADX: %.1f", adx))
		}
		b.WriteString("\n")
	}
	if names := r.Signals.Names(); len(names) > 0 {
		b.WriteString(fmt.Sprintf("Signals: %s\n", strings.Join(names, ", ")))
	} else {
		b.WriteString("Signals: none\n")
	}
	return b.String()
}

// StatusInfo is the configuration snapshot shown by /status.
type StatusInfo struct {
	Provider    string
	DemoMode    bool
	Period      string
	Selected    []string
	Universe    model.Universe
	Filter      report.Filter
	ScanCron    string
	LastRun     *RunInfo
	Concurrency int
}

// RunInfo is what is remembered about the most recent scan.
type RunInfo struct {
	ID         string
	Trigger    model.TriggerType
	FinishedAt time.Time
	Analyzed   int
	Failed     int
	Uptrend    int
}

// NewRunInfo extracts the counters of a finished scan.
func NewRunInfo(res *model.ScanResult) *RunInfo {
	info := &RunInfo{
		ID:         res.ID,
		Trigger:    res.Trigger,
		FinishedAt: res.FinishedAt,
		Analyzed:   len(res.Records),
		Failed:     res.Failed,
	}
	for _, r := range res.Records {
		if r.IsUptrend {
			info.Uptrend++
		}
	}
	return info
}

// FormatStatus formats the current configuration and last scan for display.
func FormatStatus(s StatusInfo) string {
	var b strings.Builder
	b.WriteString("⚙️ <b>Scanner status</b>\n\n")
	b.WriteString(fmt.Sprintf("Data source: %s\n", html.EscapeString(s.Provider)))
	b.WriteString(fmt.Sprintf("Demo mode: %v\n", s.DemoMode))
	b.WriteString(fmt.Sprintf("Lookback: %s\n", s.Period))
	b.WriteString(fmt.Sprintf("Min score: %d | Uptrend only: %v\n", s.Filter.MinScore, s.Filter.UptrendOnly))
	b.WriteString(fmt.Sprintf("Concurrency: %d\n", s.Concurrency))
	if s.ScanCron != "" {
		b.WriteString(fmt.Sprintf("Schedule: <code>%s</code>\n", html.EscapeString(s.ScanCron)))
	}
	b.WriteString(fmt.Sprintf("\nUniverse: %d categories, %d symbols\n", len(s.Universe), s.Universe.SymbolCount()))

	selected := make(map[string]bool, len(s.Selected))
	for _, k := range s.Selected {
		selected[k] = true
	}
	for _, c := range s.Universe {
		mark := "▫️"
		if selected[c.Key] {
			mark = "▪️"
		}
		b.WriteString(fmt.Sprintf("%s %s (%d)\n", mark, html.EscapeString(c.Label), len(c.Symbols)))
	}

	if r := s.LastRun; r != nil {
		b.WriteString(fmt.Sprintf("\nLast scan: %s (%s), %d analyzed, %d uptrend, %d unavailable\n",
			r.FinishedAt.Format("2006-01-02 15:04"), r.Trigger, r.Analyzed, r.Uptrend, r.Failed))
	} else {
		b.WriteString("\nLast scan: none yet\n")
	}
	return b.String()
}

// HelpText lists the supported bot commands.
const HelpText = "Commands:\n/scan - run a scan now\n/status - show configuration\n/probe &lt;symbol&gt; - analyze one symbol (default AAPL)"
