// Файл: internal/handlers/callback_handler.go
package handlers

import (
	"context"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Courier/internal/constants"
	"Courier/internal/telegram_api"
)

// HandleCallback - точка входа для callback-запросов от inline-кнопок.
// Сначала запрос подтверждается (чтобы у кнопки пропали "часики"), затем
// данные разбираются: точные совпадения для простых экранов, префиксы
// с параметрами для действий над конкретным заказом.
func (bh *BotHandler) HandleCallback(ctx context.Context, update tgbotapi.Update) {
	query := update.CallbackQuery
	if query == nil {
		log.Println("[CALLBACK] Получен пустой CallbackQuery.")
		return
	}
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	data := query.Data
	log.Printf("[CALLBACK] chatID %d: %s", chatID, data)

	telegram_api.AnswerCallback(bh.Deps.BotClient, query.ID, "")

	switch data {
	case constants.CALLBACK_MAIN_MENU:
		bh.ShowMainMenu(chatID, messageID)
		return
	case constants.CALLBACK_SIGN_IN:
		bh.handleSignInStart(chatID, messageID)
		return
	case constants.CALLBACK_SIGN_OUT:
		bh.handleSignOut(ctx, chatID, messageID)
		return
	case constants.CALLBACK_REFRESH:
		bh.handleRefresh(ctx, chatID, messageID)
		return
	case constants.CALLBACK_LATEST_ORDERS:
		bh.ShowOrdersList(ctx, chatID, messageID, listKindLatest, constants.FILTER_ALL)
		return
	case constants.CALLBACK_ALL_ORDERS:
		bh.ShowOrdersList(ctx, chatID, messageID, listKindAll, constants.FILTER_ALL)
		return
	case constants.CALLBACK_HISTORY:
		bh.ShowHistory(ctx, chatID, messageID)
		return
	case constants.CALLBACK_SETTINGS:
		bh.ShowSettings(ctx, chatID, messageID)
		return
	case constants.CALLBACK_SHARE_QR:
		bh.handleShareQR(chatID)
		return
	case constants.CALLBACK_PREFIX_HISTORY_EXPORT:
		bh.handleHistoryExport(ctx, chatID, messageID)
		return
	}

	// Префиксные команды с параметрами: <prefix>_<payload>.
	type prefixedHandler struct {
		prefix  string
		handler func(ctx context.Context, chatID int64, messageID int, payload string)
	}
	prefixed := []prefixedHandler{
		{constants.CALLBACK_PREFIX_ORDER_VIEW, bh.callbackOrderView},
		{constants.CALLBACK_PREFIX_ORDER_ACCEPT, bh.callbackOrderAccept},
		{constants.CALLBACK_PREFIX_ORDER_REFRESH, bh.callbackOrderView},
		{constants.CALLBACK_PREFIX_STATUS_MENU, bh.callbackStatusMenu},
		{constants.CALLBACK_PREFIX_STATUS_SET, bh.handleStatusSet},
		{constants.CALLBACK_PREFIX_REASON_PICK, bh.handleReasonPick},
		{constants.CALLBACK_PREFIX_REASON_EDIT, bh.callbackReasonEdit},
		{constants.CALLBACK_PREFIX_STATUS_SUBMIT, bh.callbackStatusSubmit},
		{constants.CALLBACK_PREFIX_STATUS_CANCEL, bh.callbackStatusCancel},
		{constants.CALLBACK_PREFIX_FILTER, bh.handleFilterCallback},
		{constants.CALLBACK_PREFIX_RETRY_LIST, bh.callbackRetryList},
	}
	for _, ph := range prefixed {
		if strings.HasPrefix(data, ph.prefix+"_") {
			ph.handler(ctx, chatID, messageID, strings.TrimPrefix(data, ph.prefix+"_"))
			return
		}
	}

	log.Printf("[CALLBACK] Неизвестные данные от chatID %d: %q", chatID, data)
	bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
}

// parseOrderIDPayload разбирает payload, который состоит из одного orderID.
func parseOrderIDPayload(payload string) (int64, bool) {
	orderID, err := strconv.ParseInt(payload, 10, 64)
	if err != nil || orderID <= 0 {
		return 0, false
	}
	return orderID, true
}

// Обертки, приводящие обработчики "по orderID" к общей префиксной сигнатуре.

func (bh *BotHandler) callbackOrderView(ctx context.Context, chatID int64, messageID int, payload string) {
	orderID, ok := parseOrderIDPayload(payload)
	if !ok {
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}
	bh.ShowOrderDetails(ctx, chatID, messageID, orderID)
}

func (bh *BotHandler) callbackOrderAccept(ctx context.Context, chatID int64, messageID int, payload string) {
	orderID, ok := parseOrderIDPayload(payload)
	if !ok {
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}
	bh.handleAcceptOrder(ctx, chatID, messageID, orderID)
}

func (bh *BotHandler) callbackStatusMenu(ctx context.Context, chatID int64, messageID int, payload string) {
	orderID, ok := parseOrderIDPayload(payload)
	if !ok {
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}
	bh.handleStatusMenu(ctx, chatID, messageID, orderID)
}

func (bh *BotHandler) callbackReasonEdit(ctx context.Context, chatID int64, messageID int, payload string) {
	orderID, ok := parseOrderIDPayload(payload)
	if !ok {
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}
	bh.handleReasonEdit(ctx, chatID, messageID, orderID)
}

func (bh *BotHandler) callbackStatusSubmit(ctx context.Context, chatID int64, messageID int, payload string) {
	orderID, ok := parseOrderIDPayload(payload)
	if !ok {
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}
	bh.handleStatusSubmit(ctx, chatID, messageID, orderID)
}

func (bh *BotHandler) callbackStatusCancel(ctx context.Context, chatID int64, messageID int, payload string) {
	orderID, ok := parseOrderIDPayload(payload)
	if !ok {
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}
	bh.handleStatusCancel(ctx, chatID, messageID, orderID)
}

func (bh *BotHandler) callbackRetryList(ctx context.Context, chatID int64, messageID int, payload string) {
	bh.ShowOrdersList(ctx, chatID, messageID, payload, constants.FILTER_ALL)
}
