package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/finstmt/analyzer/internal/analysis"
)

// WriteXLSX writes the report as a two-sheet workbook (RATIOS, TRENDS) at
// the given path.
func WriteXLSX(path string, report *analysis.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", ratiosSheet)
	if err := writeSheet(f, ratiosSheet, ratioTable(report)); err != nil {
		return err
	}

	if _, err := f.NewSheet(trendsSheet); err != nil {
		return fmt.Errorf("creating %s sheet: %w", trendsSheet, err)
	}
	if err := writeSheet(f, trendsSheet, trendTable(report)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}
		// SetSheetRow wants a slice pointer; blank cells stay empty strings.
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
