package utils

import (
	"fmt"
	"log"
	"strings"
	"time"

	"Courier/internal/constants"
	"Courier/internal/models"
)

// GetStatusDisplayName возвращает отображаемое имя статуса заказа на русском.
func GetStatusDisplayName(status models.OrderStatus) string {
	names := map[models.OrderStatus]string{
		models.StatusPending:            "🕐 В обработке",
		models.StatusAccepted:           "📦 Подтвержден магазином",
		models.StatusAssignedToDelivery: "🚚 В пути",
		models.StatusDelivered:          "✅ Доставлен",
		models.StatusCancelled:          "🚫 Отменен",
		models.StatusReported:           "⚠️ Проблема",
		models.StatusRejected:           "❌ Отклонен",
	}
	if name, ok := names[status]; ok {
		return name
	}
	log.Printf("GetStatusDisplayName: неизвестный статус '%s'", status)
	return string(status)
}

// GetBucketDisplayName возвращает отображаемое имя витринной группы статусов.
func GetBucketDisplayName(filter string) string {
	names := map[string]string{
		constants.FILTER_ALL:         "Все",
		constants.FILTER_PENDING:     "В ожидании",
		constants.FILTER_IN_PROGRESS: "В пути",
		constants.FILTER_DELIVERED:   "Доставлено",
	}
	if name, ok := names[filter]; ok {
		return name
	}
	return filter
}

// FormatMoney форматирует денежную сумму для отображения.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f FCFA", amount)
}

// FormatBackendTime разбирает метку времени бэкенда (RFC3339) и форматирует
// ее для отображения. Неразбираемое значение возвращается как есть.
func FormatBackendTime(raw string) string {
	if raw == "" {
		return "—"
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Local().Format("02.01.2006 15:04")
}

// EscapeTelegramMarkdown экранирует специальные символы для Telegram Markdown (старый стиль).
func EscapeTelegramMarkdown(text string) string {
	var replacer = strings.NewReplacer(
		"_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[",
	)
	return replacer.Replace(text)
}

// StrPtrOrDash возвращает значение указателя на строку либо прочерк.
func StrPtrOrDash(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}
