package telegram_api

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// SendOrEditMessage пытается отредактировать существующее сообщение или
// отправляет новое. Если редактирование не удалось из-за "message is not
// modified", возвращает "фиктивный" Message с ID оригинального сообщения
// и nil в качестве ошибки.
func SendOrEditMessage(
	botClient *BotClient,
	chatID int64,
	messageIDToTryEdit int,
	text string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
	parseMode string,
) (tgbotapi.Message, error) {
	if botClient == nil || botClient.api == nil {
		log.Println("SendOrEditMessage: BotClient или его API не инициализирован.")
		return tgbotapi.Message{}, fmt.Errorf("BotClient не инициализирован")
	}

	var originalMsgObject tgbotapi.Message
	if messageIDToTryEdit != 0 {
		var chatObj tgbotapi.Chat
		chatObj.ID = chatID
		originalMsgObject.Chat = chatObj
		originalMsgObject.MessageID = messageIDToTryEdit
		originalMsgObject.Text = text
		if keyboard != nil {
			originalMsgObject.ReplyMarkup = keyboard
		}
	}

	if messageIDToTryEdit != 0 {
		var editMsgConfig tgbotapi.EditMessageTextConfig
		if keyboard != nil {
			editMsgConfig = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageIDToTryEdit, text, *keyboard)
		} else {
			editMsgConfig = tgbotapi.NewEditMessageText(chatID, messageIDToTryEdit, text)
		}
		if parseMode != "" {
			editMsgConfig.ParseMode = parseMode
		}

		_, err := botClient.Request(editMsgConfig)
		if err == nil {
			return originalMsgObject, nil
		}

		// "message is not modified" - контент не изменился, не ошибка.
		if strings.Contains(err.Error(), "message is not modified") {
			return originalMsgObject, nil
		}

		if strings.Contains(err.Error(), "message to edit not found") {
			log.Printf("SendOrEditMessage: Сообщение %d для chatID %d не найдено, будет отправлено новое.", messageIDToTryEdit, chatID)
		} else {
			log.Printf("SendOrEditMessage: НЕОЖИДАННАЯ ОШИБКА редактирования сообщения chatID=%d, MessageID=%d: %v. Будет отправлено новое.", chatID, messageIDToTryEdit, err)
		}
	}

	newMsg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		newMsg.ReplyMarkup = keyboard
	}
	if parseMode != "" {
		newMsg.ParseMode = parseMode
	}

	actualSentMsg, err := botClient.Send(newMsg)
	if err != nil {
		log.Printf("SendOrEditMessage: ОШИБКА отправки нового сообщения для chatID %d: %v", chatID, err)
		return tgbotapi.Message{}, err
	}
	return actualSentMsg, nil
}

// DeleteMessage удаляет сообщение. Используется в том числе для удаления
// сообщения с паролем сразу после его прочтения.
func DeleteMessage(botClient *BotClient, chatID int64, messageID int) bool {
	if botClient == nil || botClient.api == nil {
		log.Println("DeleteMessage: BotClient или его API не инициализирован.")
		return false
	}
	if messageID == 0 {
		return false
	}

	deleteConfig := tgbotapi.NewDeleteMessage(chatID, messageID)
	response, err := botClient.Request(deleteConfig)
	if err != nil {
		log.Printf("DeleteMessage: ChatID=%d, MessageID=%d, ошибка: %v", chatID, messageID, err)
		return false
	}
	if !response.Ok {
		if response.Description != "Bad Request: message to delete not found" &&
			response.Description != "Bad Request: message can't be deleted" &&
			!strings.Contains(response.Description, "MESSAGE_ID_INVALID") {
			log.Printf("DeleteMessage: Telegram API не смог удалить сообщение %d для chatID %d: %s (ErrorCode: %d)", messageID, chatID, response.Description, response.ErrorCode)
		}
		return false
	}
	return true
}

// AnswerCallback отвечает на callback query (гасит "часики" на кнопке).
// Непустой text показывается пользователю всплывающей подсказкой.
func AnswerCallback(botClient *BotClient, callbackQueryID, text string) {
	if botClient == nil || botClient.api == nil {
		return
	}
	callback := tgbotapi.NewCallback(callbackQueryID, text)
	if _, err := botClient.Request(callback); err != nil {
		log.Printf("AnswerCallback: ошибка ответа на callback %s: %v", callbackQueryID, err)
	}
}

// SendDocument отправляет файл (например, Excel-выгрузку истории доставок).
func SendDocument(botClient *BotClient, chatID int64, fileName string, data []byte, caption string) error {
	if botClient == nil || botClient.api == nil {
		return fmt.Errorf("BotClient не инициализирован")
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: fileName, Bytes: data})
	doc.Caption = caption
	if _, err := botClient.Send(doc); err != nil {
		log.Printf("SendDocument: ошибка отправки файла '%s' для chatID %d: %v", fileName, chatID, err)
		return err
	}
	return nil
}

// SendPhoto отправляет изображение (например, QR-код ссылки на бота).
func SendPhoto(botClient *BotClient, chatID int64, fileName string, data []byte, caption string) error {
	if botClient == nil || botClient.api == nil {
		return fmt.Errorf("BotClient не инициализирован")
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: fileName, Bytes: data})
	photo.Caption = caption
	if _, err := botClient.Send(photo); err != nil {
		log.Printf("SendPhoto: ошибка отправки изображения '%s' для chatID %d: %v", fileName, chatID, err)
		return err
	}
	return nil
}
