package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Единицы измерения, которые встречаются прямо в ячейках: "12,5 kg", "3 h", "10uds".
// Более длинные варианты идут раньше, чтобы "kg" не срезался как "g".
const unitWord = `horas|hora|hrs|hr|hs|h|kgs|kg|mg|gr|g|ton|tn|t|ml|lts|lt|l|m3|m2|mm|cm|m|uds|und|ud|un|u|pcs|pc|pzas|pza|pz|ea|шт|кг|г|л|мл|м|ч`

// число, затем (опционально) пробелы и единица в конце строки
var reTrailingUnit = regexp.MustCompile(`(?i)^(.*?[0-9.,)])\s*(?:` + unitWord + `)\.?$`)

// "1:30", "01:30:15", "-0:45"
var reClock = regexp.MustCompile(`^(-?)(\d+):([0-5]?\d)(?::([0-5]?\d))?$`)

var reDigits = regexp.MustCompile(`\d+`)

// спец-пробелы из выгрузок 1С/SAP
var spaceDropper = strings.NewReplacer("\u00A0", "", "\u2009", "", "\u202F", "", " ", "", "\t", "")

// NormalizeNumber приводит значение ячейки к float64.
// Всё, что не разобралось, — 0. Паники и ошибки наружу не уходят.
func NormalizeNumber(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	case uint32:
		return float64(v)
	case bool:
		return 0
	case string:
		return parseNumberText(v)
	default:
		return parseNumberText(toText(v))
	}
}

func parseNumberText(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	s = spaceDropper.Replace(s)

	if m := reTrailingUnit.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	if m := reClock.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[2])
		mi, _ := strconv.Atoi(m[3])
		sec := 0
		if m[4] != "" {
			sec, _ = strconv.Atoi(m[4])
		}
		v := float64(h) + float64(mi)/60 + float64(sec)/3600
		if neg != (m[1] == "-") {
			v = -v
		}
		return v
	}

	// 1.234,56 -> 1234.56 ; 3,25 -> 3.25
	hasDot, hasComma := strings.Contains(s, "."), strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	v := finite(d.InexactFloat64())
	if neg {
		v = -v
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NormalizeKey — канонический ключ заказа: только цифры, без ведущих нулей и
// без десятичного хвоста. Без цифр — исходный текст в верхнем регистре.
// "000202467.0", "202467", "202467.0 " -> "202467".
func NormalizeKey(raw any) string {
	text := toText(raw)
	head := text
	if i := strings.Index(head, "."); i >= 0 {
		head = head[:i]
	}
	digits := strings.Join(reDigits.FindAllString(head, -1), "")
	if digits == "" {
		return strings.ToUpper(strings.TrimSpace(text))
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}
	return digits
}

// NormalizeText — строка без лишних пробелов (коды и описания материалов).
func NormalizeText(raw any) string {
	return collapseSpaces(strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(toText(raw)))
}

func toText(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case bool:
		return strconv.FormatBool(v)
	case interface{ String() string }:
		return v.String()
	default:
		return ""
	}
}

// Схлопывание пробелов
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
