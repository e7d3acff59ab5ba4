package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Очень либеральная проверка email: бэкенд все равно валидирует учетные
// данные сам, здесь отсекается только явный мусор, чтобы не жечь запросы.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail нормализует и проверяет email, введенный в чате.
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", fmt.Errorf("email не может быть пустым")
	}
	if !emailRegex.MatchString(email) {
		return "", fmt.Errorf("некорректный формат email: %s", email)
	}
	return email, nil
}

// NormalizeReason обрезает пробелы вокруг причины смены статуса.
// Пустая строка после нормализации означает "причина не указана".
func NormalizeReason(reason string) string {
	return strings.TrimSpace(reason)
}

// ValidateReason проверяет свободный текст причины: непустой и разумной длины
// (Telegram позволяет прислать сообщение на 4096 символов, бэкенду столько
// не нужно).
func ValidateReason(reason string) (string, error) {
	reason = NormalizeReason(reason)
	if reason == "" {
		return "", fmt.Errorf("причина не может быть пустой")
	}
	if len([]rune(reason)) > 500 {
		return "", fmt.Errorf("причина слишком длинная (максимум 500 символов)")
	}
	return reason, nil
}
