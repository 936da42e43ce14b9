package service

import "strings"

var headerFolder = strings.NewReplacer("_", " ", "\n", " ", "\r", " ", "\u00A0", " ", "\u202F", " ")

// normHeaderKey: нижний регистр, _/переводы строк/NBSP -> пробел, схлопнуть пробелы.
func normHeaderKey(s string) string {
	return collapseSpaces(headerFolder.Replace(strings.ToLower(s)))
}

// Resolve ищет колонку для поля. Внешний цикл — ключевые слова в порядке приоритета,
// внутренний — колонки в исходном порядке; первое вхождение подстроки выигрывает.
// Подстрочный матч может привязать чужую колонку ("real" в "cantidad real") —
// это известное поведение, его не «лечим» оценками.
func Resolve(columns, keywords []string) (string, bool) {
	normed := make([]string, len(columns))
	for i, c := range columns {
		normed[i] = normHeaderKey(c)
	}
	for _, kw := range keywords {
		kw = normHeaderKey(kw)
		if kw == "" {
			continue
		}
		for i, c := range normed {
			if strings.Contains(c, kw) {
				return columns[i], true
			}
		}
	}
	return "", false
}

// suggestColumn — ближайшая по Дамерау–Левенштейну свободная колонка для подсказки
// оператору. В привязку не идёт.
func suggestColumn(columns, keywords []string, taken map[string]bool) string {
	best, bestScore := "", 0.0
	for _, c := range columns {
		if taken[c] {
			continue
		}
		nc := normHeaderKey(c)
		for _, kw := range keywords {
			if s := bestSimilarity(nc, normHeaderKey(kw)); s > bestScore {
				best, bestScore = c, s
			}
		}
	}
	if bestScore < 0.5 {
		return ""
	}
	return best
}
