package utils

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// TaskDeepLink собирает deep-link на карточку задания внутри бота.
// Открывший ссылку увидит карточку, если его роль это позволяет.
func TaskDeepLink(botUsername string, taskID int64) (string, error) {
	if botUsername == "" {
		return "", fmt.Errorf("имя пользователя бота не настроено")
	}
	if taskID == 0 {
		return "", fmt.Errorf("невалидный id задания")
	}
	return fmt.Sprintf("https://t.me/%s?start=task_%d", botUsername, taskID), nil
}

// TaskQRCode генерирует QR-код deep-link'а задания (PNG).
func TaskQRCode(botUsername string, taskID int64) ([]byte, error) {
	link, err := TaskDeepLink(botUsername, taskID)
	if err != nil {
		return nil, err
	}
	qrBytes, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования QR-кода: %w", err)
	}
	return qrBytes, nil
}
