package report

import (
	"sort"

	"UptrendScanner/internal/model"
)

// DefaultMinScore is the default minimum score shown to users.
const DefaultMinScore = 60

// Filter selects which records are presented.
type Filter struct {
	MinScore    int
	UptrendOnly bool
}

// Keep reports whether r passes the filter.
func (f Filter) Keep(r model.SignalRecord) bool {
	if f.UptrendOnly && !r.IsUptrend {
		return false
	}
	return r.Score >= f.MinScore
}

// Apply returns the records that pass the filter, preserving order.
func (f Filter) Apply(records []model.SignalRecord) []model.SignalRecord {
	out := make([]model.SignalRecord, 0, len(records))
	for _, r := range records {
		if f.Keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortByScore returns a copy ordered by score, highest first. Ties keep input order.
func SortByScore(records []model.SignalRecord) []model.SignalRecord {
	out := make([]model.SignalRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// CategoryCount is the number of filtered records for one category label.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summary holds the aggregate counters of one scan.
type Summary struct {
	Total      int                 `json:"total_analyzed"`
	Uptrend    int                 `json:"uptrend_count"`
	UptrendPct float64             `json:"uptrend_pct"`
	Filtered   int                 `json:"filtered_count"`
	ByCategory []CategoryCount     `json:"by_category"`
	Best       *model.SignalRecord `json:"best,omitempty"`
}

// Summarize computes the counters over all records and the filtered subset.
// Best is the highest scoring filtered record.
func Summarize(records []model.SignalRecord, f Filter) Summary {
	s := Summary{Total: len(records), ByCategory: []CategoryCount{}}
	idx := make(map[string]int)
	for _, r := range records {
		if r.IsUptrend {
			s.Uptrend++
		}
		if !f.Keep(r) {
			continue
		}
		s.Filtered++
		i, ok := idx[r.Category]
		if !ok {
			i = len(s.ByCategory)
			idx[r.Category] = i
			s.ByCategory = append(s.ByCategory, CategoryCount{Category: r.Category})
		}
		s.ByCategory[i].Count++
		if s.Best == nil || r.Score > s.Best.Score {
			best := r
			s.Best = &best
		}
	}
	if s.Total > 0 {
		s.UptrendPct = float64(s.Uptrend) / float64(s.Total) * 100
	}
	return s
}

// View is a scan result prepared for display.
type View struct {
	Result  *model.ScanResult    `json:"-"`
	Summary Summary              `json:"summary"`
	Rows    []model.SignalRecord `json:"signals"`
}

// Build filters and sorts a scan result for presentation.
func Build(res *model.ScanResult, f Filter) View {
	return View{
		Result:  res,
		Summary: Summarize(res.Records, f),
		Rows:    SortByScore(f.Apply(res.Records)),
	}
}
