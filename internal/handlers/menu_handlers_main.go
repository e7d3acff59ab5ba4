// Файл: internal/handlers/menu_handlers_main.go
//
// Главный поток: /start с восстановлением сессии, главное меню,
// вход по email/паролю, выход и обновление сессии.
package handlers

import (
	"context"
	"fmt"
	"log"

	"Courier/internal/constants"
	"Courier/internal/session"
	"Courier/internal/utils"
)

// HandleStart обрабатывает /start: показывает экран загрузки, восстанавливает
// сессию из сохраненного токена и рисует меню по итогу. До завершения
// Bootstrap никакой авторизованный экран не показывается.
func (bh *BotHandler) HandleStart(ctx context.Context, chatID int64) {
	bh.Deps.SessionManager.ClearState(chatID)
	bh.Deps.SessionManager.ClearTempStatusUpdate(chatID)
	bh.Deps.SessionManager.ClearTempSignIn(chatID)

	loadingMsgID := bh.sendOrEditMessageHelper(chatID, 0, "⏳ Загрузка...", nil)

	authSession := bh.Deps.SessionManager.Bootstrap(ctx, chatID)
	if authSession.Status == session.StatusSignedIn {
		bh.ShowMainMenu(chatID, loadingMsgID)
		return
	}
	bh.ShowSignedOutScreen(chatID, loadingMsgID)
}

// ShowMainMenu рисует главное меню вошедшего курьера.
func (bh *BotHandler) ShowMainMenu(chatID int64, messageIDToTryEdit int) {
	authSession := bh.Deps.SessionManager.Auth(chatID)
	if authSession.Status != session.StatusSignedIn {
		bh.ShowSignedOutScreen(chatID, messageIDToTryEdit)
		return
	}

	text := fmt.Sprintf("🚚 *Sonic Delivery*\n\nЗдравствуйте, %s!\nВыберите действие:",
		utils.EscapeTelegramMarkdown(authSession.User.Name))
	keyboard := buildMainMenuKeyboard()
	bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, text, &keyboard)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_MAIN_MENU)
}

// ShowSignedOutScreen рисует экран для невошедшего пользователя.
func (bh *BotHandler) ShowSignedOutScreen(chatID int64, messageIDToTryEdit int) {
	text := "🚚 *Sonic Delivery*\n\nБот для курьеров службы доставки.\nВойдите, чтобы видеть свои заказы."
	keyboard := buildSignedOutKeyboard()
	bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, text, &keyboard)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_IDLE)
}

// handleSignInStart начинает поток входа: запрашивает email.
func (bh *BotHandler) handleSignInStart(chatID int64, messageIDToTryEdit int) {
	promptID := bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit,
		"🔑 *Вход*\n\nОтправьте email вашего аккаунта курьера.", nil)
	bh.Deps.SessionManager.UpdateTempSignIn(chatID, session.TempSignIn{PromptMessageID: promptID})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_AUTH_EMAIL)
}

// handleSignInEmail принимает email, валидирует и запрашивает пароль.
func (bh *BotHandler) handleSignInEmail(chatID int64, text string) {
	temp := bh.Deps.SessionManager.GetTempSignIn(chatID)

	email, err := utils.ValidateEmail(text)
	if err != nil {
		bh.sendOrEditMessageHelper(chatID, temp.PromptMessageID,
			"⚠️ Это не похоже на email. Отправьте email еще раз.", nil)
		return
	}

	temp.Email = email
	promptID := bh.sendOrEditMessageHelper(chatID, temp.PromptMessageID,
		"🔒 Теперь отправьте пароль.\n\n_Сообщение с паролем будет удалено._", nil)
	temp.PromptMessageID = promptID
	bh.Deps.SessionManager.UpdateTempSignIn(chatID, temp)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_AUTH_PASSWORD)
}

// handleSignInPassword принимает пароль и выполняет вход. Сообщение с паролем
// немедленно удаляется из чата; сам пароль нигде не сохраняется.
func (bh *BotHandler) handleSignInPassword(ctx context.Context, chatID int64, passwordMessageID int, password string) {
	bh.deleteMessageHelper(chatID, passwordMessageID)

	temp := bh.Deps.SessionManager.GetTempSignIn(chatID)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_AUTH_IN_FLIGHT)
	bh.sendOrEditMessageHelper(chatID, temp.PromptMessageID, "⏳ Выполняется вход...", nil)

	err := bh.Deps.SessionManager.SignIn(ctx, chatID, temp.Email, password)
	if err != nil {
		log.Printf("[AUTH] Вход не удался для chatID %d: %v", chatID, err)
		// Неудачный вход возвращает к вводу email, ошибка бэкенда
		// показывается как есть.
		keyboard := buildSignedOutKeyboard()
		bh.sendOrEditMessageHelper(chatID, temp.PromptMessageID,
			fmt.Sprintf("❌ Не удалось войти: %s\n\nПопробуйте еще раз.", utils.EscapeTelegramMarkdown(err.Error())),
			&keyboard)
		bh.Deps.SessionManager.ClearTempSignIn(chatID)
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_IDLE)
		return
	}

	bh.Deps.SessionManager.ClearTempSignIn(chatID)
	bh.ShowMainMenu(chatID, temp.PromptMessageID)
}

// handleSignOut выполняет выход и возвращает экран входа.
// Локальная сессия очищается сразу, сетевые ошибки не могут этому помешать.
func (bh *BotHandler) handleSignOut(ctx context.Context, chatID int64, messageIDToTryEdit int) {
	bh.Deps.SessionManager.SignOut(ctx, chatID)
	bh.Deps.SessionManager.ClearTempStatusUpdate(chatID)
	bh.ShowSignedOutScreen(chatID, messageIDToTryEdit)
}

// handleRefresh повторно проверяет токен и перерисовывает меню.
// Протухший токен на этом шаге обнаруживается и приводит к экрану входа.
func (bh *BotHandler) handleRefresh(ctx context.Context, chatID int64, messageIDToTryEdit int) {
	messageIDToTryEdit = bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, "⏳ Обновление сессии...", nil)
	authSession := bh.Deps.SessionManager.Refresh(ctx, chatID)
	if authSession.Status == session.StatusSignedIn {
		bh.ShowMainMenu(chatID, messageIDToTryEdit)
		return
	}
	bh.ShowSignedOutScreen(chatID, messageIDToTryEdit)
}
