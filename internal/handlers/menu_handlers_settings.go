// Файл: internal/handlers/menu_handlers_settings.go
//
// Экран настроек: профиль курьера и QR-код для друзей-курьеров.
package handlers

import (
	"context"
	"log"

	"Courier/internal/constants"
	"Courier/internal/formatters"
	"Courier/internal/session"
	"Courier/internal/telegram_api"
	"Courier/internal/utils"
)

// ShowSettings рисует профиль курьера из сессии.
// Профиль не перечитывается с бэкенда: он обновляется через "Обновить"
// в главном меню (Refresh).
func (bh *BotHandler) ShowSettings(ctx context.Context, chatID int64, messageIDToTryEdit int) {
	authSession := bh.Deps.SessionManager.Auth(chatID)
	if authSession.Status != session.StatusSignedIn {
		bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, constants.NotSignedInMessage, nil)
		return
	}

	text := formatters.FormatProfile(authSession.User)
	keyboard := buildSettingsKeyboard()
	bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, text, &keyboard)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_SETTINGS)
}

// handleShareQR отправляет QR-код со ссылкой на бота отдельным фото.
func (bh *BotHandler) handleShareQR(chatID int64) {
	qrBytes, err := utils.GenerateBotQRCode(bh.Deps.Config.BotUsername)
	if err != nil {
		log.Printf("[SETTINGS] Не удалось сгенерировать QR для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, 0, constants.GenericErrorText)
		return
	}

	link, _ := utils.GenerateBotLink(bh.Deps.Config.BotUsername)
	caption := "📱 Поделитесь ботом с коллегами-курьерами:\n" + link
	if err := telegram_api.SendPhoto(bh.Deps.BotClient, chatID, "bot_qr.png", qrBytes, caption); err != nil {
		log.Printf("[SETTINGS] Не удалось отправить QR для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, 0, constants.GenericErrorText)
	}
}
