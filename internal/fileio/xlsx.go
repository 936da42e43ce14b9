package fileio

import (
	"bytes"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	excelize "github.com/xuri/excelize/v2"
)

// встроенные форматы времени: h:mm AM/PM, h:mm:ss AM/PM, h:mm, h:mm:ss, mm:ss, [h]:mm:ss, mm:ss.0
var builtinTimeFormats = map[int]bool{18: true, 19: true, 20: true, 21: true, 45: true, 46: true, 47: true}

// readXLSX читает все листы книги. Значения берём «сырые», без форматов ячеек:
// иначе 202467 с форматом "#,##0" придёт как "202,467".
// Исключение — ячейки с форматом времени: сырое значение там в сутках, переводим в часы.
func readXLSX(r io.Reader) ([]sheet, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	timeStyle := make(map[int]bool)
	var out []sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}
		for i, row := range rows {
			for j, v := range row {
				if v == "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(j+1, i+1)
				if err != nil {
					return nil, err
				}
				idx, err := f.GetCellStyle(name, cell)
				if err != nil || idx == 0 {
					continue
				}
				isTime, seen := timeStyle[idx]
				if !seen {
					isTime = styleIsTime(f, idx)
					timeStyle[idx] = isTime
				}
				if isTime {
					row[j] = daysToHours(v)
				}
			}
		}
		out = append(out, sheet{name: name, rows: rows})
	}
	return out, nil
}

func styleIsTime(f *excelize.File, idx int) bool {
	st, err := f.GetStyle(idx)
	if err != nil || st == nil {
		return false
	}
	if st.CustomNumFmt != nil {
		return isTimeFormat(*st.CustomNumFmt)
	}
	return builtinTimeFormats[st.NumFmt]
}

// isTimeFormat: есть часы/минуты/секунды и нет дня/года.
// Дата-время оставляем сырым.
func isTimeFormat(code string) bool {
	var b strings.Builder
	quoted := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '\\':
			i++
		default:
			b.WriteByte(c)
		}
	}
	s := strings.ToLower(b.String())
	// [$-409], [Red] выкидываем; [h], [mm], [ss] оставляем
	var kept strings.Builder
	for {
		open := strings.IndexByte(s, '[')
		if open < 0 {
			kept.WriteString(s)
			break
		}
		end := strings.IndexByte(s[open:], ']')
		if end < 0 {
			kept.WriteString(s)
			break
		}
		kept.WriteString(s[:open])
		if inner := s[open+1 : open+end]; strings.Trim(inner, "hms") == "" {
			kept.WriteString(s[open : open+end+1])
		}
		s = s[open+end+1:]
	}
	s = kept.String()
	if strings.ContainsAny(s, "dy") {
		return false
	}
	return strings.Contains(s, "h") || strings.Contains(s, "[m") ||
		strings.Contains(s, "[s") || strings.Contains(s, "mm:ss")
}

func daysToHours(raw string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return d.Mul(decimal.NewFromInt(24)).Round(6).String()
}
