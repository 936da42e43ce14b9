package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"prodrecon/internal/reconcile/model"
)

// Bytes — отчёт целиком в памяти (для HTTP-ответа).
func Bytes(tables []model.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, tables); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXLSX пишет по листу на таблицу: жирная серая шапка, закреплённая первая строка.
func WriteXLSX(w io.Writer, tables []model.Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("report: no tables")
	}
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return fmt.Errorf("report: header style: %w", err)
	}

	for i, t := range tables {
		sheet := sheetName(t.Name)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("report: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("report: new sheet %s: %w", sheet, err)
		}
		if err := writeTable(f, sheet, t, headerStyle); err != nil {
			return fmt.Errorf("report: sheet %s: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, t model.Table, headerStyle int) error {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if len(t.Columns) > 0 {
		last := cellName(len(t.Columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
		lastCol, _ := excelize.ColumnNumberToName(len(t.Columns))
		if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
			return err
		}
	}

	for i, row := range t.Rows {
		r := row
		if err := f.SetSheetRow(sheet, cellName(1, i+2), &r); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// sheetName — Excel допускает не больше 31 символа.
func sheetName(name string) string {
	if name == "" {
		name = "Sheet"
	}
	r := []rune(name)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}
