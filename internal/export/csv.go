package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/finstmt/analyzer/internal/analysis"
)

// WriteCSV writes the ratio table (and, when trends exist, the trend table
// separated by a blank line) to w.
func WriteCSV(w io.Writer, report *analysis.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.WriteAll(ratioTable(report)); err != nil {
		return fmt.Errorf("writing ratio rows: %w", err)
	}

	if len(report.Trends) > 0 {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("writing separator: %w", err)
		}
		if err := cw.WriteAll(trendTable(report)); err != nil {
			return fmt.Errorf("writing trend rows: %w", err)
		}
	}

	return nil
}
