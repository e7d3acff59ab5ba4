// Файл: internal/handlers/menu_handlers_order_view.go
//
// Карточка заказа и принятие заказа в работу.
package handlers

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Courier/internal/backend"
	"Courier/internal/constants"
	"Courier/internal/formatters"
	"Courier/internal/session"
	"Courier/internal/utils"
)

// ShowOrderDetails загружает заказ и рисует его карточку с действиями,
// доступными из текущего статуса.
func (bh *BotHandler) ShowOrderDetails(ctx context.Context, chatID int64, messageIDToTryEdit int, orderID int64) {
	authSession := bh.Deps.SessionManager.Auth(chatID)
	if authSession.Status != session.StatusSignedIn {
		bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, constants.NotSignedInMessage, nil)
		return
	}

	order, err := backend.OrderDetails(ctx, authSession.Token, orderID)
	if err != nil {
		log.Printf("[ORDER_VIEW] Не удалось загрузить заказ %d для chatID %d: %v", orderID, chatID, err)
		bh.sendErrorMessageHelper(chatID, messageIDToTryEdit,
			fmt.Sprintf("❌ %s", utils.EscapeTelegramMarkdown(err.Error())))
		return
	}

	text := formatters.FormatOrderCard(order)
	keyboard := buildOrderViewKeyboard(order)
	bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, text, &keyboard)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ORDER_VIEW)
}

// handleAcceptOrder принимает заказ в работу.
//
// Порядок оптимистичный: сразу после подтверждения бэкенда карточка
// перерисовывается со статусом из ответа, не дожидаясь повторной загрузки
// деталей; затем детали загружаются заново для полноты. Ошибка принятия
// оставляет карточку и показывает текст ошибки бэкенда.
func (bh *BotHandler) handleAcceptOrder(ctx context.Context, chatID int64, messageID int, orderID int64) {
	authSession := bh.Deps.SessionManager.Auth(chatID)
	if authSession.Status != session.StatusSignedIn {
		bh.sendOrEditMessageHelper(chatID, messageID, constants.NotSignedInMessage, nil)
		return
	}

	bh.sendOrEditMessageHelper(chatID, messageID, "⏳ Принимаем заказ...", nil)

	result, err := backend.AcceptOrder(ctx, authSession.Token, orderID)
	if err != nil {
		log.Printf("[CALLBACK_ORDER] Принятие заказа %d для chatID %d не удалось: %v", orderID, chatID, err)
		keyboard := buildOrderViewRetryKeyboard(orderID)
		bh.sendOrEditMessageHelper(chatID, messageID,
			fmt.Sprintf("❌ %s", utils.EscapeTelegramMarkdown(err.Error())), &keyboard)
		return
	}

	log.Printf("[CALLBACK_ORDER] Заказ %s принят курьером chatID %d, новый статус: %s",
		result.Order.OrderCode, chatID, result.Order.Status)
	bh.sendOrEditMessageHelper(chatID, messageID,
		fmt.Sprintf("✅ Заказ *%s* принят!\nСтатус: %s",
			utils.EscapeTelegramMarkdown(result.Order.OrderCode),
			utils.GetStatusDisplayName(result.Order.Status)), nil)

	bh.ShowOrderDetails(ctx, chatID, messageID, orderID)
}

// buildOrderViewRetryKeyboard - возврат к карточке заказа после ошибки действия.
func buildOrderViewRetryKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 К заказу", fmt.Sprintf("%s_%d", constants.CALLBACK_PREFIX_ORDER_VIEW, orderID)),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", constants.CALLBACK_MAIN_MENU),
		),
	)
}
