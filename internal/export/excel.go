package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dividendlab/divstat/internal/snapshot"
)

// ExcelWriter implements SheetWriter by writing a local .xlsx workbook.
type ExcelWriter struct {
	path string
}

// NewExcelWriter creates an ExcelWriter targeting the given file path.
// An existing file at the path is overwritten.
func NewExcelWriter(path string) *ExcelWriter {
	return &ExcelWriter{path: path}
}

// Write builds a workbook with SUMMARY, INCOME and BREAKDOWN sheets.
func (w *ExcelWriter) Write(ctx context.Context, projection snapshot.Projection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "SUMMARY"); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	sheetData := []struct {
		name string
		rows [][]any
	}{
		{"SUMMARY", buildSummaryRows(projection)},
		{"INCOME", buildIncomeRows(projection)},
		{"BREAKDOWN", buildBreakdownRows(projection)},
	}

	for _, sheet := range sheetData {
		if sheet.name != "SUMMARY" {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("creating sheet %s: %w", sheet.name, err)
			}
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("building cell reference: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
