package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var phoneDigits = regexp.MustCompile(`[^\d+]`)

// ValidatePhoneNumber проверяет и нормализует российский номер телефона.
// Возвращает номер в формате +7XXXXXXXXXX или ошибку.
func ValidatePhoneNumber(phone string) (string, error) {
	digitsOnly := phoneDigits.ReplaceAllString(strings.TrimSpace(phone), "")

	if strings.HasPrefix(digitsOnly, "+") {
		if regexp.MustCompile(`^\+7\d{10}$`).MatchString(digitsOnly) {
			return digitsOnly, nil
		}
		return "", fmt.Errorf("номер должен быть в формате +7XXXXXXXXXX")
	}
	if len(digitsOnly) == 11 && (digitsOnly[0] == '8' || digitsOnly[0] == '7') {
		return "+7" + digitsOnly[1:], nil
	}
	if len(digitsOnly) == 10 {
		return "+7" + digitsOnly, nil
	}
	return "", fmt.Errorf("неверный формат номера телефона")
}

// Госномер: буквы кириллицы, совпадающие по начертанию с латиницей,
// в формате А123БВ77 или А123БВ777. Принимаем и латиницу, нормализуем
// в верхний регистр.
var gosNumberRe = regexp.MustCompile(`^[АВЕКМНОРСТУХABEKMHOPCTYX]\d{3}[АВЕКМНОРСТУХABEKMHOPCTYX]{2}\d{2,3}$`)

// ValidateGosNumber проверяет госномер транспортного средства.
func ValidateGosNumber(gos string) (string, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(gos), " ", ""))
	if !gosNumberRe.MatchString(normalized) {
		return "", fmt.Errorf("госномер должен быть в формате А123БВ77")
	}
	return normalized, nil
}

// ParsePrice разбирает введенную пользователем сумму. Запятая принимается
// как десятичный разделитель.
func ParsePrice(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("не удалось разобрать сумму: %q", s)
	}
	return v, nil
}
