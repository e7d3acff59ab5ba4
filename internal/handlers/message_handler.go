// Файл: internal/handlers/message_handler.go
package handlers

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Courier/internal/constants"
	"Courier/internal/session"
)

// HandleMessage - точка входа для текстовых сообщений: сначала команды,
// затем ввод, ожидаемый текущим состоянием диалога.
func (bh *BotHandler) HandleMessage(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	if message == nil {
		return
	}
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	if message.IsCommand() {
		bh.handleCommand(ctx, message)
		return
	}

	state := bh.Deps.SessionManager.GetState(chatID)
	log.Printf("[MESSAGE] chatID %d, состояние %s", chatID, state)

	switch state {
	case constants.STATE_AUTH_EMAIL:
		bh.handleSignInEmail(chatID, text)
	case constants.STATE_AUTH_PASSWORD:
		bh.handleSignInPassword(ctx, chatID, message.MessageID, message.Text)
	case constants.STATE_STATUS_REASON_INPUT:
		bh.handleReasonInput(chatID, message.MessageID, text)
	default:
		// Вне потоков свободный текст не обрабатывается.
		bh.sendOrEditMessageHelper(chatID, 0, "Используйте кнопки меню или /start.", nil)
	}
}

// handleCommand обрабатывает команды бота.
func (bh *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	command := message.Command()
	log.Printf("[COMMAND] chatID %d: /%s", chatID, command)

	switch command {
	case "start":
		bh.HandleStart(ctx, chatID)
	case "orders":
		bh.requireSignIn(ctx, chatID, func() {
			bh.ShowOrdersList(ctx, chatID, 0, listKindLatest, constants.FILTER_ALL)
		})
	case "history":
		bh.requireSignIn(ctx, chatID, func() {
			bh.ShowHistory(ctx, chatID, 0)
		})
	case "settings":
		bh.requireSignIn(ctx, chatID, func() {
			bh.ShowSettings(ctx, chatID, 0)
		})
	case "logout":
		bh.handleSignOut(ctx, chatID, 0)
	case "help":
		bh.sendOrEditMessageHelper(chatID, 0,
			"🚚 *Sonic Delivery - бот курьера*\n\n"+
				"/start - главное меню\n"+
				"/orders - актуальные заказы\n"+
				"/history - история доставок\n"+
				"/settings - профиль и настройки\n"+
				"/logout - выйти из аккаунта", nil)
	default:
		bh.sendOrEditMessageHelper(chatID, 0, "Неизвестная команда. Попробуйте /help.", nil)
	}
}

// requireSignIn выполняет действие только для вошедшего курьера.
// Если сессия еще не поднималась (loading), сначала выполняется Bootstrap.
func (bh *BotHandler) requireSignIn(ctx context.Context, chatID int64, action func()) {
	authSession := bh.Deps.SessionManager.Auth(chatID)
	if authSession.Status == session.StatusLoading {
		authSession = bh.Deps.SessionManager.Bootstrap(ctx, chatID)
	}
	if authSession.Status != session.StatusSignedIn {
		bh.ShowSignedOutScreen(chatID, 0)
		return
	}
	action()
}
