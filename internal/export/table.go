// Package export renders analysis reports to tabular destinations: CSV,
// XLSX, and Google Sheets. Undefined values stay blank in every format; the
// exporters never substitute a default number.
package export

import (
	"github.com/samber/lo"

	"github.com/finstmt/analyzer/internal/analysis"
	"github.com/finstmt/analyzer/internal/domain"
	"github.com/finstmt/analyzer/internal/ratio"
)

// Sheet names used by the XLSX and Google Sheets writers.
const (
	ratiosSheet = "RATIOS"
	trendsSheet = "TRENDS"
)

// ratioTable builds the ratio grid: one row per fiscal period, one column
// per ratio, blank cells for undefined values.
func ratioTable(report *analysis.Report) [][]string {
	defs := ratio.Definitions()

	header := append([]string{"Period"}, lo.Map(defs, func(d ratio.Definition, _ int) string {
		return d.Name
	})...)

	rows := [][]string{header}
	for _, res := range report.Results {
		row := make([]string, 0, len(defs)+1)
		row = append(row, res.Period.String())
		for _, def := range defs {
			v, ok := res.Get(def.ID)
			if ok && v.Defined() {
				row = append(row, domain.FormatRatio(*v.Value))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// trendTable builds the trend grid: one row per ratio per adjacent period
// pair, blank delta/pct when undefined.
func trendTable(report *analysis.Report) [][]string {
	rows := [][]string{{"Ratio", "From", "To", "Delta", "Pct Change"}}
	for _, t := range report.Trends {
		delta, pct := "", ""
		if t.Delta != nil {
			delta = domain.FormatRatio(*t.Delta)
		}
		if t.Pct != nil {
			pct = domain.FormatRatio(*t.Pct)
		}
		rows = append(rows, []string{t.Name, t.From.String(), t.To.String(), delta, pct})
	}
	return rows
}
