package handlers

import (
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Courier/internal/config"
	"Courier/internal/constants"
	"Courier/internal/session"
	"Courier/internal/telegram_api"
)

// HandlerDependencies содержит все зависимости, необходимые для обработчиков.
// HandlerDependencies contains all dependencies required for handlers.
type HandlerDependencies struct {
	Config         *config.Config
	BotClient      *telegram_api.BotClient
	SessionManager *session.Manager
}

// BotHandler инкапсулирует логику обработки сообщений и коллбэков.
// BotHandler encapsulates the logic for handling messages and callbacks.
type BotHandler struct {
	Deps HandlerDependencies
}

// NewBotHandler создает новый экземпляр BotHandler.
func NewBotHandler(deps HandlerDependencies) *BotHandler {
	if deps.Config == nil || deps.BotClient == nil || deps.SessionManager == nil {
		// Критическая ошибка конфигурации, приложение не сможет работать.
		panic("Не все зависимости для BotHandler были предоставлены.")
	}
	return &BotHandler{Deps: deps}
}

// sendOrEditMessageHelper отправляет или редактирует сообщение-меню
// и возвращает его итоговый ID (0 при ошибке).
func (bh *BotHandler) sendOrEditMessageHelper(chatID int64, messageIDToTryEdit int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) int {
	sentMsg, err := telegram_api.SendOrEditMessage(bh.Deps.BotClient, chatID, messageIDToTryEdit, text, keyboard, tgbotapi.ModeMarkdown)
	if err != nil {
		log.Printf("sendOrEditMessageHelper: ошибка для chatID %d: %v", chatID, err)
		return 0
	}
	return sentMsg.MessageID
}

// sendErrorMessageHelper показывает текст ошибки с кнопкой возврата в меню.
func (bh *BotHandler) sendErrorMessageHelper(chatID int64, messageIDToTryEdit int, errorText string) int {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", constants.CALLBACK_MAIN_MENU),
		),
	)
	return bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, errorText, &keyboard)
}

// deleteMessageHelper удаляет сообщение, игнорируя результат.
func (bh *BotHandler) deleteMessageHelper(chatID int64, messageID int) {
	telegram_api.DeleteMessage(bh.Deps.BotClient, chatID, messageID)
}
