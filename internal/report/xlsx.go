package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// xlsxSheet is the name of the single worksheet.
const xlsxSheet = "Pegada"

var xlsxColumns = []struct {
	first, last string
	width       float64
}{
	{"A", "A", 16},
	{"B", "B", 40},
	{"C", "D", 16},
}

// WriteXLSX exports a View as an Excel workbook with a bold, frozen header row.
func WriteXLSX(w io.Writer, v View) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2E7D32"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	for i, col := range Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range v.Rows() {
		row := i + 2
		values := []any{r.Section, r.Item, r.Value, r.Unit}
		for j, val := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(xlsxSheet, cell, val); err != nil {
				return fmt.Errorf("failed to write row %q: %w", r.Item, err)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(3, row)
		if err := f.SetCellStyle(xlsxSheet, cell, cell, numberStyle); err != nil {
			return fmt.Errorf("failed to style row %q: %w", r.Item, err)
		}
	}

	if err := f.SetPanes(xlsxSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	for _, c := range xlsxColumns {
		if err := f.SetColWidth(xlsxSheet, c.first, c.last, c.width); err != nil {
			return fmt.Errorf("failed to size columns %s:%s: %w", c.first, c.last, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
