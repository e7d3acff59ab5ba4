// Файл: internal/handlers/menu_handlers_history.go
//
// История доставок: завершенные заказы курьера и выгрузка в Excel.
package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"Courier/internal/backend"
	"Courier/internal/constants"
	"Courier/internal/formatters"
	"Courier/internal/models"
	"Courier/internal/session"
	"Courier/internal/telegram_api"
	"Courier/internal/utils"
)

// fetchHistory возвращает завершенные заказы: доставленные и терминальные
// недоставленные (отмененные, отклоненные).
func (bh *BotHandler) fetchHistory(ctx context.Context, token string) ([]models.Order, error) {
	orders, err := backend.AllOrders(ctx, token)
	if err != nil {
		return nil, err
	}
	var history []models.Order
	for _, order := range orders {
		if order.Status.IsTerminal() {
			history = append(history, order)
		}
	}
	return history, nil
}

// ShowHistory рисует список завершенных заказов.
func (bh *BotHandler) ShowHistory(ctx context.Context, chatID int64, messageIDToTryEdit int) {
	authSession := bh.Deps.SessionManager.Auth(chatID)
	if authSession.Status != session.StatusSignedIn {
		bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, constants.NotSignedInMessage, nil)
		return
	}

	messageIDToTryEdit = bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, "⏳ Загрузка истории...", nil)

	history, err := bh.fetchHistory(ctx, authSession.Token)
	if err != nil {
		log.Printf("[HISTORY] Не удалось загрузить историю для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, messageIDToTryEdit,
			fmt.Sprintf("❌ %s", utils.EscapeTelegramMarkdown(err.Error())))
		return
	}

	var b strings.Builder
	b.WriteString("📜 *ИСТОРИЯ ДОСТАВОК*\n\n")
	if len(history) == 0 {
		b.WriteString("Завершенных заказов пока нет.")
	} else {
		shown := history
		if len(shown) > constants.OrdersPerPage {
			shown = shown[:constants.OrdersPerPage]
		}
		for _, order := range shown {
			b.WriteString(formatters.FormatOrderListEntry(order) + "\n\n")
		}
		if len(history) > constants.OrdersPerPage {
			b.WriteString(fmt.Sprintf("_Показаны первые %d из %d. Полный список - в экспорте._",
				constants.OrdersPerPage, len(history)))
		}
		history = shown
	}

	keyboard := buildHistoryKeyboard(history)
	bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, b.String(), &keyboard)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_HISTORY_VIEW)
}

// handleHistoryExport выгружает завершенные заказы в Excel-файл и отправляет
// его документом в чат.
func (bh *BotHandler) handleHistoryExport(ctx context.Context, chatID int64, messageID int) {
	authSession := bh.Deps.SessionManager.Auth(chatID)
	if authSession.Status != session.StatusSignedIn {
		bh.sendOrEditMessageHelper(chatID, messageID, constants.NotSignedInMessage, nil)
		return
	}

	history, err := bh.fetchHistory(ctx, authSession.Token)
	if err != nil {
		log.Printf("[HISTORY] Экспорт: не удалось загрузить историю для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, messageID,
			fmt.Sprintf("❌ %s", utils.EscapeTelegramMarkdown(err.Error())))
		return
	}
	if len(history) == 0 {
		bh.sendOrEditMessageHelper(chatID, messageID, "📜 Экспортировать нечего: завершенных заказов нет.", nil)
		return
	}

	data, err := buildHistoryWorkbook(history)
	if err != nil {
		log.Printf("[HISTORY] Экспорт: не удалось собрать файл для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}

	fileName := fmt.Sprintf("delivery_history_%s.xlsx", uuid.New().String()[:8])
	caption := fmt.Sprintf("📥 История доставок: %d заказов", len(history))
	if err := telegram_api.SendDocument(bh.Deps.BotClient, chatID, fileName, data, caption); err != nil {
		log.Printf("[HISTORY] Экспорт: не удалось отправить файл для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
	}
}

// buildHistoryWorkbook собирает xlsx-книгу с завершенными заказами.
func buildHistoryWorkbook(orders []models.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "История"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания листа: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Код заказа", "Статус", "Клиент", "Адрес", "Город", "Сумма", "Оплата", "Создан", "Доставлен"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, order := range orders {
		deliveredAt := ""
		if order.DeliveredAt != nil {
			deliveredAt = utils.FormatBackendTime(*order.DeliveredAt)
		}
		values := []interface{}{
			order.OrderCode,
			string(order.Status),
			order.CustomerName,
			order.Address,
			order.City,
			order.TotalPrice,
			order.PaymentMethod,
			utils.FormatBackendTime(order.CreatedAt),
			deliveredAt,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка записи книги: %w", err)
	}
	return buf.Bytes(), nil
}
