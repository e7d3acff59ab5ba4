// Файл: internal/handlers/callback_status_handlers.go
//
// Многошаговый поток смены статуса заказа:
// выбор статуса -> причина (для REPORTED/REJECTED/CANCELLED) -> подтверждение.
// Все промежуточные данные живут в session.TempStatusUpdate, итоговая проверка
// перед сетевым вызовом - models.ValidateStatusUpdate.
package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"Courier/internal/backend"
	"Courier/internal/constants"
	"Courier/internal/formatters"
	"Courier/internal/models"
	"Courier/internal/session"
	"Courier/internal/utils"
)

// handleStatusMenu открывает выбор целевого статуса. Перед открытием заказ
// перечитывается: решение о доступных переходах принимается по свежему
// статусу, а не по возможно устаревшей карточке.
func (bh *BotHandler) handleStatusMenu(ctx context.Context, chatID int64, messageID int, orderID int64) {
	authSession := bh.Deps.SessionManager.Auth(chatID)
	if authSession.Status != session.StatusSignedIn {
		bh.sendOrEditMessageHelper(chatID, messageID, constants.NotSignedInMessage, nil)
		return
	}

	order, err := backend.OrderDetails(ctx, authSession.Token, orderID)
	if err != nil {
		log.Printf("[STATUS_FLOW] Не удалось перечитать заказ %d: %v", orderID, err)
		keyboard := buildOrderViewRetryKeyboard(orderID)
		bh.sendOrEditMessageHelper(chatID, messageID,
			fmt.Sprintf("❌ %s", utils.EscapeTelegramMarkdown(err.Error())), &keyboard)
		return
	}

	if !order.Status.CanUpdateStatus() {
		// Статус успел измениться, меню смены больше не применимо.
		bh.ShowOrderDetails(ctx, chatID, messageID, orderID)
		return
	}

	data := session.TempStatusUpdate{
		OrderID:       order.ID,
		OrderCode:     order.OrderCode,
		CurrentStatus: order.Status,
		MenuMessageID: messageID,
	}
	bh.Deps.SessionManager.UpdateTempStatusUpdate(chatID, data)

	text := formatters.FormatStatusUpdatePrompt(data)
	keyboard := buildStatusSelectKeyboard(order.ID, order.Status)
	msgID := bh.sendOrEditMessageHelper(chatID, messageID, text, &keyboard)
	data.MenuMessageID = msgID
	bh.Deps.SessionManager.UpdateTempStatusUpdate(chatID, data)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_STATUS_SELECT)
}

// handleStatusSet фиксирует выбранный целевой статус.
// Payload: "<orderID>_<STATUS>".
func (bh *BotHandler) handleStatusSet(ctx context.Context, chatID int64, messageID int, payload string) {
	parts := strings.SplitN(payload, "_", 2)
	if len(parts) != 2 {
		log.Printf("[STATUS_FLOW] Некорректный payload выбора статуса: %q", payload)
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}
	orderID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}
	target := models.OrderStatus(parts[1])

	data := bh.Deps.SessionManager.GetTempStatusUpdate(chatID)
	if data.OrderID != orderID {
		// Поток для этого заказа не открыт (например, после рестарта бота).
		bh.handleStatusMenu(ctx, chatID, messageID, orderID)
		return
	}

	// Смена целевого статуса сбрасывает ранее набранную причину.
	data.TargetStatus = target
	data.CannedReason = ""
	data.Reason = ""
	data.MenuMessageID = messageID
	bh.Deps.SessionManager.UpdateTempStatusUpdate(chatID, data)

	text := formatters.FormatStatusUpdatePrompt(data)
	keyboard := buildStatusFlowKeyboard(data)
	bh.sendOrEditMessageHelper(chatID, messageID, text, &keyboard)

	if target.RequiresReason() {
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_STATUS_REASON_SELECT)
	} else {
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_STATUS_CONFIRM)
	}
}

// handleReasonPick фиксирует каноническую причину.
// Payload: "<orderID>_<index>". Пункт "Other" не является причиной сам по
// себе: он переключает поток на свободный ввод текста.
func (bh *BotHandler) handleReasonPick(ctx context.Context, chatID int64, messageID int, payload string) {
	parts := strings.SplitN(payload, "_", 2)
	if len(parts) != 2 {
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}
	orderID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 || index >= len(models.CannedReasons) {
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}

	data := bh.Deps.SessionManager.GetTempStatusUpdate(chatID)
	if data.OrderID != orderID || data.TargetStatus == "" {
		bh.handleStatusMenu(ctx, chatID, messageID, orderID)
		return
	}

	picked := models.CannedReasons[index]
	data.CannedReason = picked
	data.Reason = ""
	data.MenuMessageID = messageID
	bh.Deps.SessionManager.UpdateTempStatusUpdate(chatID, data)

	if picked == models.CannedReasonOther {
		keyboard := buildStatusFlowKeyboard(data)
		bh.sendOrEditMessageHelper(chatID, messageID,
			formatters.FormatStatusUpdatePrompt(data), &keyboard)
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_STATUS_REASON_INPUT)
		return
	}

	text := formatters.FormatStatusUpdatePrompt(data)
	keyboard := buildStatusFlowKeyboard(data)
	bh.sendOrEditMessageHelper(chatID, messageID, text, &keyboard)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_STATUS_CONFIRM)
}

// handleReasonInput принимает свободный текст причины из сообщения курьера.
// Сообщение с текстом удаляется, причина подставляется в меню потока.
func (bh *BotHandler) handleReasonInput(chatID int64, reasonMessageID int, text string) {
	bh.deleteMessageHelper(chatID, reasonMessageID)

	data := bh.Deps.SessionManager.GetTempStatusUpdate(chatID)
	if data.OrderID == 0 || data.TargetStatus == "" {
		bh.sendErrorMessageHelper(chatID, 0, constants.GenericErrorText)
		return
	}

	reason, err := utils.ValidateReason(text)
	if err != nil {
		keyboard := buildStatusFlowKeyboard(data)
		bh.sendOrEditMessageHelper(chatID, data.MenuMessageID,
			fmt.Sprintf("⚠️ %s\n\n%s", utils.EscapeTelegramMarkdown(err.Error()), formatters.FormatStatusUpdatePrompt(data)),
			&keyboard)
		return
	}

	data.Reason = reason
	bh.Deps.SessionManager.UpdateTempStatusUpdate(chatID, data)

	keyboard := buildStatusFlowKeyboard(data)
	bh.sendOrEditMessageHelper(chatID, data.MenuMessageID,
		formatters.FormatStatusUpdatePrompt(data), &keyboard)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_STATUS_CONFIRM)
}

// handleReasonEdit переключает поток на свободный ввод текста причины.
func (bh *BotHandler) handleReasonEdit(ctx context.Context, chatID int64, messageID int, orderID int64) {
	data := bh.Deps.SessionManager.GetTempStatusUpdate(chatID)
	if data.OrderID != orderID || data.TargetStatus == "" {
		bh.handleStatusMenu(ctx, chatID, messageID, orderID)
		return
	}

	data.MenuMessageID = messageID
	bh.Deps.SessionManager.UpdateTempStatusUpdate(chatID, data)

	keyboard := buildStatusFlowKeyboard(data)
	bh.sendOrEditMessageHelper(chatID, messageID,
		formatters.FormatStatusUpdatePrompt(data)+"\n\n✏️ Отправьте новый текст причины сообщением.", &keyboard)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_STATUS_REASON_INPUT)
}

// handleStatusSubmit отправляет смену статуса на бэкенд. Перед сетевым
// вызовом выполняется та же локальная проверка, что гоняется в тестах:
// разрешенный переход и корректная причина. Ошибка бэкенда оставляет поток
// на месте с возможностью повторить.
func (bh *BotHandler) handleStatusSubmit(ctx context.Context, chatID int64, messageID int, orderID int64) {
	authSession := bh.Deps.SessionManager.Auth(chatID)
	if authSession.Status != session.StatusSignedIn {
		bh.sendOrEditMessageHelper(chatID, messageID, constants.NotSignedInMessage, nil)
		return
	}

	data := bh.Deps.SessionManager.GetTempStatusUpdate(chatID)
	if data.OrderID != orderID || !data.CanSubmit() {
		bh.handleStatusMenu(ctx, chatID, messageID, orderID)
		return
	}

	reason, err := models.ValidateStatusUpdate(data.CurrentStatus, data.TargetStatus, data.EffectiveReason())
	if err != nil {
		log.Printf("[STATUS_FLOW] Локальная проверка не прошла для заказа %d: %v", orderID, err)
		keyboard := buildStatusFlowKeyboard(data)
		bh.sendOrEditMessageHelper(chatID, messageID,
			fmt.Sprintf("⚠️ %s", utils.EscapeTelegramMarkdown(err.Error())), &keyboard)
		return
	}

	bh.sendOrEditMessageHelper(chatID, messageID, "⏳ Отправка...", nil)

	result, err := backend.UpdateOrderStatus(ctx, authSession.Token, orderID, backend.UpdateOrderStatusRequest{
		Status: data.TargetStatus,
		Reason: reason,
	})
	if err != nil {
		log.Printf("[STATUS_FLOW] Смена статуса заказа %d не удалась: %v", orderID, err)
		keyboard := buildStatusFlowKeyboard(data)
		bh.sendOrEditMessageHelper(chatID, messageID,
			fmt.Sprintf("❌ %s\n\nМожно попробовать еще раз.", utils.EscapeTelegramMarkdown(err.Error())),
			&keyboard)
		return
	}

	log.Printf("[STATUS_FLOW] Заказ %s переведен в %s (chatID %d)",
		result.Order.OrderCode, result.Order.Status, chatID)
	bh.Deps.SessionManager.ClearTempStatusUpdate(chatID)
	bh.ShowOrderDetails(ctx, chatID, messageID, orderID)
}

// handleStatusCancel прерывает поток и возвращает карточку заказа.
func (bh *BotHandler) handleStatusCancel(ctx context.Context, chatID int64, messageID int, orderID int64) {
	bh.Deps.SessionManager.ClearTempStatusUpdate(chatID)
	bh.ShowOrderDetails(ctx, chatID, messageID, orderID)
}
