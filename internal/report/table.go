package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

// NoDataMessage is shown when every attempted symbol failed.
const NoDataMessage = "No data available. Check the data source or enable demo mode."

// WriteTable renders the view as an aligned plain-text table.
func WriteTable(w io.Writer, v View) error {
	if v.Result != nil && v.Result.NoData() {
		_, err := fmt.Fprintln(w, NoDataMessage)
		return err
	}

	s := v.Summary
	fmt.Fprintf(w, "Analyzed: %d  Uptrend: %d (%.1f%%)  Shown: %d\n\n", s.Total, s.Uptrend, s.UptrendPct, s.Filtered)
	if len(v.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No symbols matched the filter.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tCATEGORY\tPRICE\tCHANGE\tSCORE\tUPTREND\tSIGNALS")
	for _, r := range v.Rows {
		mark := ""
		if r.IsUptrend {
			mark = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%+.2f%%\t%d\t%s\t%s\n",
			r.Symbol, r.Category, FormatPrice(r.LatestPrice), r.PriceChangePct,
			r.Score, mark, strings.Join(r.Signals.Names(), ","))
	}
	return tw.Flush()
}

// FormatPrice renders a price with thousands separators and a precision
// suited to its magnitude.
func FormatPrice(p float64) string {
	switch {
	case p >= 1000:
		return humanize.CommafWithDigits(p, 2)
	case p >= 1:
		return fmt.Sprintf("%.2f", p)
	default:
		return fmt.Sprintf("%.4f", p)
	}
}
