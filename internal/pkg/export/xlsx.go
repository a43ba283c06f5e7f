package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of a workbook. Numeric columns are written as
// numbers so spreadsheet formulas work on them.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
	Totals []any // optional trailing row, rendered bold
	Widths map[string]float64
}

// XLSX renders sheet as a single-sheet workbook.
func XLSX(name string, sheet Sheet) (File, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := sheet.Name
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return File{}, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return File{}, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRow(f, sheetName, 1, toAny(sheet.Header)); err != nil {
		return File{}, err
	}
	if len(sheet.Header) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(sheet.Header))
		if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
			return File{}, fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, row := range sheet.Rows {
		if err := writeRow(f, sheetName, i+2, row); err != nil {
			return File{}, err
		}
	}

	if len(sheet.Totals) > 0 {
		rowNum := len(sheet.Rows) + 2
		if err := writeRow(f, sheetName, rowNum, sheet.Totals); err != nil {
			return File{}, err
		}
		boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return File{}, fmt.Errorf("failed to create totals style: %w", err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(sheet.Totals))
		if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), boldStyle); err != nil {
			return File{}, fmt.Errorf("failed to style totals: %w", err)
		}
	}

	for col, width := range sheet.Widths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return File{}, fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return File{}, fmt.Errorf("failed to write workbook: %w", err)
	}

	return File{
		Name:        name,
		ContentType: ContentTypeXLSX,
		Content:     buf.Bytes(),
	}, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
