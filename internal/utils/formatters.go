package utils

import (
	"fmt"
	"strings"
	"time"
)

// EscapeHTML экранирует текст для parse_mode=HTML.
func EscapeHTML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// FormatMoney печатает сумму в рублях без хвостовых нулей у целых значений.
func FormatMoney(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d ₽", int64(v))
	}
	return fmt.Sprintf("%.2f ₽", v)
}

// FormatDateTime приводит метку времени бэкенда (RFC3339) к виду
// «02.01.2006 15:04». Нераспознанное значение возвращается как есть:
// лучше показать сырую строку, чем ничего.
func FormatDateTime(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Format("02.01.2006 15:04")
		}
	}
	return raw
}

// Plural выбирает форму существительного для количества: 1 задание,
// 2 задания, 5 заданий.
func Plural(n int, one, few, many string) string {
	nAbs := n % 100
	if nAbs < 0 {
		nAbs = -nAbs
	}
	if nAbs >= 11 && nAbs <= 14 {
		return many
	}
	switch nAbs % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	}
	return many
}
