package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"prodrecon/internal/reconcile/model"
)

var ErrUnsupported = errors.New("unsupported file")

// sheet — одна прочитанная таблица (лист или CSV).
type sheet struct {
	name string
	rows [][]string
}

// ReadAny — выберет парсер по расширению и вернёт все листы одной таблицей.
// headerRow — номер строки заголовков (1-based), общий для всех листов.
func ReadAny(r io.Reader, filename string, headerRow int) (model.RawDataset, error) {
	if headerRow <= 0 {
		headerRow = 1
	}
	var (
		sheets []sheet
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		sheets, err = readXLSX(r)
	case ".xls":
		sheets, err = readXLS(r, headerRow)
	case ".csv", ".txt":
		sheets, err = readCSV(r)
	default:
		return model.RawDataset{}, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
	if err != nil {
		return model.RawDataset{}, fmt.Errorf("read %s: %w", filename, err)
	}
	ds := merge(sheets, headerRow)
	ds.Name = filename
	return ds, nil
}

// merge склеивает листы: колонки объединяются в порядке первого появления.
func merge(sheets []sheet, headerRow int) model.RawDataset {
	var ds model.RawDataset
	seen := make(map[string]bool)
	for _, sh := range sheets {
		if len(sh.rows) == 0 {
			continue
		}
		h := pickHeader(sh.rows, headerRow)
		for _, c := range h {
			if !seen[c] {
				seen[c] = true
				ds.Columns = append(ds.Columns, c)
			}
		}
		ds.Rows = append(ds.Rows, rowsToMaps(sh.rows, h, headerRow)...)
		ds.Sheets = append(ds.Sheets, sh.name)
	}
	return ds
}

// pickHeader — берёт строку заголовков и подставляет Column N для пустых.
// Повторы получают суффикс " (2)", чтобы не затирать значения.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	used := make(map[string]int, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		used[v]++
		if n := used[v]; n > 1 {
			v = fmt.Sprintf("%s (%d)", v, n)
		}
		out[i] = v
	}
	return out
}

// rowsToMaps — конвертирует AoA в []map по заголовкам, пропуская полностью пустые строки.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]any {
	var out []map[string]any
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]any, len(headers))
		empty := true
		for c := 0; c < len(headers); c++ {
			var v string
			if c < len(rec) {
				v = normalizeCell(rec[c])
			}
			if v != "" {
				empty = false
			}
			m[headers[c]] = v
		}
		if !empty && !echoesHeader(m) && !isTotalRow(m) {
			out = append(out, m)
		}
	}
	return out
}

// echoesHeader — повтор шапки внутри листа (склейка выгрузок, печатные страницы):
// хотя бы две ячейки совпадают с названием своей колонки.
func echoesHeader(m map[string]any) bool {
	cnt := 0
	for h, v := range m {
		s, _ := v.(string)
		if s != "" && strings.EqualFold(s, h) {
			cnt++
		}
	}
	return cnt >= 2
}

var totalLabels = []string{"total", "totales", "subtotal", "итого", "всего"}

// isTotalRow — строка итогов: какая-то ячейка начинается со слова «итого»/«total».
func isTotalRow(m map[string]any) bool {
	for _, v := range m {
		s, _ := v.(string)
		if s == "" {
			continue
		}
		words := strings.FieldsFunc(s, func(r rune) bool {
			return r == ' ' || r == ':' || r == '.'
		})
		if len(words) == 0 {
			continue
		}
		word := strings.ToLower(words[0])
		for _, l := range totalLabels {
			if word == l {
				return true
			}
		}
	}
	return false
}

// normalizeCell — обрезка пробелов, включая NBSP по краям.
func normalizeCell(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\u00A0' || r == '\u202F'
	})
}
