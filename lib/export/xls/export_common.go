package xlsexport

import "github.com/xuri/excelize/v2"

type column struct {
	Title string
	Width float64
}

func cellName(col, row int) (string, error) {
	return excelize.CoordinatesToCellName(col, row)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := cellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// writeHeader writes the bold header into the first row, freezes it and
// turns on the filter over all columns.
func writeHeader(f *excelize.File, sheet string, columns []column) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Font:      &excelize.Font{Bold: true, Family: "Calibri", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return err
	}
	titles := make([]interface{}, 0, len(columns))
	for idx, col := range columns {
		name, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return err
		}
		if err = f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return err
		}
		titles = append(titles, col.Title)
	}
	if err = writeRow(f, sheet, 1, titles); err != nil {
		return err
	}
	first, _ := cellName(1, 1)
	last, err := cellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err = f.SetCellStyle(sheet, first, last, style); err != nil {
		return err
	}
	if err = f.AutoFilter(sheet, first+":"+last, nil); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func applyDataCellStyle(f *excelize.File, sheet string, colCount, rowFrom, rowTo int) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Font:      &excelize.Font{Family: "Calibri", Size: 11},
	})
	if err != nil {
		return err
	}
	first, err := cellName(1, rowFrom)
	if err != nil {
		return err
	}
	last, err := cellName(colCount, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}
