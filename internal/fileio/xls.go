// Надёжный парсер .xls: фиксируем ширину таблицы сами и читаем все ячейки до неё.
package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	xls "github.com/extrame/xls"
)

// вычисляем "реальную" ширину: пробегаем разумное число колонок и ищем непустые
func computeMaxCols(ws *xls.WorkSheet) int {
	const probeMax = 512
	maxCols := 0
	for i := 0; i <= int(ws.MaxRow); i++ {
		r := ws.Row(i)
		if r == nil {
			continue
		}
		for j := probeMax - 1; j >= maxCols; j-- {
			if normalizeCell(r.Col(j)) != "" {
				maxCols = j + 1
				break
			}
		}
	}
	if maxCols == 0 {
		maxCols = 1
	}
	return maxCols
}

func readXLS(r io.Reader, headerRow int) (out []sheet, err error) {
	if headerRow <= 0 {
		return nil, errors.New("headerRow must be 1-based and >= 1")
	}
	// extrame/xls паникует на битых книгах
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("xls: corrupted workbook: %v", rec)
		}
	}()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// старые .xls из SAP/1С бывают в cp1251/cp1252, иногда UTF-8
	var wb *xls.WorkBook
	var lastErr error
	for _, ch := range []string{"utf-8", "windows-1252", "windows-1251"} {
		wb, err = xls.OpenReader(bytes.NewReader(b), ch)
		if err == nil && wb != nil {
			lastErr = nil
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return nil, lastErr
	}

	for s := 0; s < wb.NumSheets(); s++ {
		ws := wb.GetSheet(s)
		if ws == nil {
			continue
		}
		// фиксируем ширину и читаем все строки до неё (НЕ полагаемся на Row.LastCol())
		maxCols := computeMaxCols(ws)
		rows := make([][]string, 0, int(ws.MaxRow)+1)
		for i := 0; i <= int(ws.MaxRow); i++ {
			row := ws.Row(i)
			cols := make([]string, maxCols)
			if row != nil {
				for j := 0; j < maxCols; j++ {
					cols[j] = normalizeCell(row.Col(j))
				}
			}
			rows = append(rows, cols)
		}
		name := ws.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", s+1)
		}
		out = append(out, sheet{name: name, rows: rows})
	}
	return out, nil
}
