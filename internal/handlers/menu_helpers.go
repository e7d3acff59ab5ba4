// Файл: internal/handlers/menu_helpers.go
//
// Сборка inline-клавиатур. Клавиатуры строятся из текущего состояния данных:
// какие кнопки показывать, решают правила статусов (models), а не обработчики.
package handlers

import (
	"fmt"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Courier/internal/constants"
	"Courier/internal/models"
	"Courier/internal/session"
	"Courier/internal/utils"
)

// buildSignedOutKeyboard - клавиатура для невошедшего пользователя.
func buildSignedOutKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔑 Войти", constants.CALLBACK_SIGN_IN),
		),
	)
}

// buildMainMenuKeyboard - главное меню вошедшего курьера.
func buildMainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔥 Актуальные заказы", constants.CALLBACK_LATEST_ORDERS),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Все заказы", constants.CALLBACK_ALL_ORDERS),
			tgbotapi.NewInlineKeyboardButtonData("📜 История", constants.CALLBACK_HISTORY),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Настройки", constants.CALLBACK_SETTINGS),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", constants.CALLBACK_REFRESH),
		),
	)
}

// buildOrdersListKeyboard строит кнопки списка заказов: кнопка на каждый заказ
// страницы, ряд фильтров по витринным группам и возврат в меню.
// listKind ("latest" или "all") сохраняется в callback-данных фильтров,
// чтобы фильтр перерисовывал тот же список.
func buildOrdersListKeyboard(orders []models.Order, listKind, activeFilter string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, order := range orders {
		label := fmt.Sprintf("%s · %s", order.OrderCode, utils.GetStatusDisplayName(order.Status))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s_%d", constants.CALLBACK_PREFIX_ORDER_VIEW, order.ID)),
		))
	}

	var filterRow []tgbotapi.InlineKeyboardButton
	for _, f := range []string{constants.FILTER_ALL, constants.FILTER_PENDING, constants.FILTER_IN_PROGRESS, constants.FILTER_DELIVERED} {
		label := utils.GetBucketDisplayName(f)
		if f == activeFilter {
			label = "• " + label
		}
		filterRow = append(filterRow, tgbotapi.NewInlineKeyboardButtonData(
			label, fmt.Sprintf("%s_%s_%s", constants.CALLBACK_PREFIX_FILTER, listKind, f)))
	}
	rows = append(rows, filterRow)

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", constants.CALLBACK_MAIN_MENU),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// buildRetryListKeyboard - клавиатура экрана ошибки загрузки списка.
func buildRetryListKeyboard(listKind string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Повторить", fmt.Sprintf("%s_%s", constants.CALLBACK_PREFIX_RETRY_LIST, listKind)),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", constants.CALLBACK_MAIN_MENU),
		),
	)
}

// buildOrderViewKeyboard строит кнопки действий на карточке заказа.
// Набор действий выводится из статуса: принять можно только из ACCEPTED,
// менять статус - только из ASSIGNED_TO_DELIVERY. Для терминальных и чужих
// статусов остаются только "Обновить" и "Назад".
func buildOrderViewKeyboard(order models.Order) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if order.Status.CanAccept() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Принять заказ", fmt.Sprintf("%s_%d", constants.CALLBACK_PREFIX_ORDER_ACCEPT, order.ID)),
		))
	}
	if order.Status.CanUpdateStatus() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Изменить статус", fmt.Sprintf("%s_%d", constants.CALLBACK_PREFIX_STATUS_MENU, order.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔁 Обновить", fmt.Sprintf("%s_%d", constants.CALLBACK_PREFIX_ORDER_REFRESH, order.ID)),
		tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", constants.CALLBACK_MAIN_MENU),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// buildStatusSelectKeyboard - выбор целевого статуса из разрешенных переходов.
func buildStatusSelectKeyboard(orderID int64, current models.OrderStatus) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, target := range models.AllowedTransitions(current) {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				utils.GetStatusDisplayName(target),
				fmt.Sprintf("%s_%d_%s", constants.CALLBACK_PREFIX_STATUS_SET, orderID, target)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", fmt.Sprintf("%s_%d", constants.CALLBACK_PREFIX_STATUS_CANCEL, orderID)),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// buildStatusFlowKeyboard - кнопки потока смены статуса после выбора целевого
// статуса: канонические причины (для статусов с обязательной причиной),
// подтверждение (только когда поток готов к отправке, см. CanSubmit) и отмена.
func buildStatusFlowKeyboard(data session.TempStatusUpdate) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if data.TargetStatus.RequiresReason() {
		for i, reason := range models.CannedReasons {
			label := reason
			if reason == models.CannedReasonOther {
				label = "✏️ Другое (свой текст)"
			}
			if data.CannedReason == reason {
				label = "• " + label
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s_%d_%d", constants.CALLBACK_PREFIX_REASON_PICK, data.OrderID, i)),
			))
		}
	}

	if data.Reason != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить текст", fmt.Sprintf("%s_%d", constants.CALLBACK_PREFIX_REASON_EDIT, data.OrderID)),
		))
	}

	if data.CanSubmit() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📤 Отправить", fmt.Sprintf("%s_%d", constants.CALLBACK_PREFIX_STATUS_SUBMIT, data.OrderID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", fmt.Sprintf("%s_%d", constants.CALLBACK_PREFIX_STATUS_CANCEL, data.OrderID)),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// buildHistoryKeyboard - кнопки экрана истории доставок.
func buildHistoryKeyboard(orders []models.Order) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, order := range orders {
		label := fmt.Sprintf("%s · %s", order.OrderCode, utils.GetStatusDisplayName(order.Status))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s_%d", constants.CALLBACK_PREFIX_ORDER_VIEW, order.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📥 Экспорт в Excel", constants.CALLBACK_PREFIX_HISTORY_EXPORT),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", constants.CALLBACK_MAIN_MENU),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// buildSettingsKeyboard - кнопки экрана настроек.
func buildSettingsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📱 QR-код бота", constants.CALLBACK_SHARE_QR),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚪 Выйти из аккаунта", constants.CALLBACK_SIGN_OUT),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", constants.CALLBACK_MAIN_MENU),
		),
	)
}
