package formatters

import (
	"fmt"
	"strings"

	"Courier/internal/models"
	"Courier/internal/session"
	"Courier/internal/utils"
)

const separator = "─ ─ ─ ─ ─ ─ ─ ─ ─ ─ ─ ─ ─"

// FormatOrderListEntry форматирует одну строку списка заказов.
func FormatOrderListEntry(order models.Order) string {
	return fmt.Sprintf("📦 *%s* · %s\n%s · %s",
		utils.EscapeTelegramMarkdown(order.OrderCode),
		utils.GetStatusDisplayName(order.Status),
		utils.EscapeTelegramMarkdown(order.CustomerName),
		utils.FormatMoney(order.TotalPrice),
	)
}

// FormatOrderCard форматирует полную карточку заказа для экрана деталей.
func FormatOrderCard(order models.Order) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📦 *ЗАКАЗ %s*\n", utils.EscapeTelegramMarkdown(order.OrderCode)))
	b.WriteString(fmt.Sprintf("Статус: %s\n", utils.GetStatusDisplayName(order.Status)))
	b.WriteString(separator + "\n")

	// --- Блок "Клиент" ---
	b.WriteString("👤 *КЛИЕНТ:*\n")
	b.WriteString(fmt.Sprintf(" •  Имя: %s\n", utils.EscapeTelegramMarkdown(order.CustomerName)))
	b.WriteString(fmt.Sprintf(" •  Телефон: %s\n", utils.EscapeTelegramMarkdown(order.CustomerPhone)))
	b.WriteString(fmt.Sprintf(" •  Адрес: %s, %s\n", utils.EscapeTelegramMarkdown(order.Address), utils.EscapeTelegramMarkdown(order.City)))
	if order.Note != "" {
		b.WriteString(fmt.Sprintf(" •  Заметка: %s\n", utils.EscapeTelegramMarkdown(order.Note)))
	}
	b.WriteString("\n")

	// --- Блок "Магазин" ---
	if order.Merchant.CompanyName != "" {
		b.WriteString("🏪 *МАГАЗИН:*\n")
		b.WriteString(fmt.Sprintf(" •  %s\n", utils.EscapeTelegramMarkdown(order.Merchant.CompanyName)))
		if order.Merchant.User.Phone != "" {
			b.WriteString(fmt.Sprintf(" •  Телефон: %s\n", utils.EscapeTelegramMarkdown(order.Merchant.User.Phone)))
		}
		b.WriteString("\n")
	}

	// --- Блок "Состав заказа" ---
	if len(order.OrderItems) > 0 {
		b.WriteString("🛒 *СОСТАВ:*\n")
		for _, item := range order.OrderItems {
			line := fmt.Sprintf(" •  %s x%d — %s",
				utils.EscapeTelegramMarkdown(item.Product.Name), item.Quantity, utils.FormatMoney(item.Price*float64(item.Quantity)))
			if item.IsFree {
				line += " (подарок)"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	// --- Блок "Оплата" ---
	b.WriteString("💰 *ОПЛАТА:*\n")
	if order.OriginalTotalPrice != nil && order.TotalDiscount != nil && *order.TotalDiscount > 0 {
		b.WriteString(fmt.Sprintf(" •  Без скидки: %s\n", utils.FormatMoney(*order.OriginalTotalPrice)))
		b.WriteString(fmt.Sprintf(" •  Скидка: -%s\n", utils.FormatMoney(*order.TotalDiscount)))
	}
	b.WriteString(fmt.Sprintf(" •  Итого: %s\n", utils.FormatMoney(order.TotalPrice)))
	b.WriteString(fmt.Sprintf(" •  Способ: %s\n", utils.EscapeTelegramMarkdown(order.PaymentMethod)))
	b.WriteString("\n")

	// --- Блок "Время" ---
	b.WriteString("🕒 *ВРЕМЯ:*\n")
	b.WriteString(fmt.Sprintf(" •  Создан: %s\n", utils.FormatBackendTime(order.CreatedAt)))
	if order.DeliveredAt != nil {
		b.WriteString(fmt.Sprintf(" •  Доставлен: %s\n", utils.FormatBackendTime(*order.DeliveredAt)))
	}

	return b.String()
}

// FormatProfile форматирует профиль курьера для экрана настроек.
func FormatProfile(user models.DeliveryManUser) string {
	var b strings.Builder
	b.WriteString("⚙️ *НАСТРОЙКИ*\n")
	b.WriteString(separator + "\n")
	b.WriteString(fmt.Sprintf("👤 Имя: %s\n", utils.EscapeTelegramMarkdown(user.Name)))
	b.WriteString(fmt.Sprintf("📧 Email: %s\n", utils.EscapeTelegramMarkdown(user.Email)))
	b.WriteString(fmt.Sprintf("🏙 Город: %s\n", utils.EscapeTelegramMarkdown(utils.StrPtrOrDash(user.DeliveryMan.City))))
	b.WriteString(fmt.Sprintf("🛵 Транспорт: %s\n", utils.EscapeTelegramMarkdown(utils.StrPtrOrDash(user.DeliveryMan.VehicleType))))
	if !user.DeliveryMan.Active {
		b.WriteString("\n⚠️ Профиль курьера деактивирован.\n")
	}
	return b.String()
}

// FormatStatusUpdatePrompt форматирует текущее состояние потока смены статуса:
// какой статус выбран, какая причина набрана, чего не хватает для отправки.
func FormatStatusUpdatePrompt(data session.TempStatusUpdate) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔄 *Смена статуса заказа %s*\n", utils.EscapeTelegramMarkdown(data.OrderCode)))
	b.WriteString(separator + "\n")

	if data.TargetStatus == "" {
		b.WriteString("Выберите новый статус заказа:")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Новый статус: %s\n", utils.GetStatusDisplayName(data.TargetStatus)))

	if !data.TargetStatus.RequiresReason() {
		b.WriteString("\nПричина не требуется. Подтвердите отправку.")
		return b.String()
	}

	reason := data.EffectiveReason()
	if reason == "" {
		b.WriteString("\n⚠️ Укажите причину: выберите из списка или отправьте свой текст сообщением.")
	} else {
		b.WriteString(fmt.Sprintf("Причина: _%s_\n", utils.EscapeTelegramMarkdown(reason)))
		b.WriteString("\nМожно отправить другой текст сообщением или подтвердить.")
	}
	return b.String()
}
