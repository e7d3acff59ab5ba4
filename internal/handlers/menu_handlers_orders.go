// Файл: internal/handlers/menu_handlers_orders.go
//
// Списки заказов: актуальные и все, с фильтрами по витринным группам.
package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"Courier/internal/backend"
	"Courier/internal/constants"
	"Courier/internal/formatters"
	"Courier/internal/models"
	"Courier/internal/session"
	"Courier/internal/utils"
)

const (
	listKindLatest = "latest"
	listKindAll    = "all"
)

// fetchOrdersList выбирает нужную операцию бэкенда по виду списка.
func (bh *BotHandler) fetchOrdersList(ctx context.Context, token, listKind string) ([]models.Order, error) {
	if listKind == listKindLatest {
		return backend.LatestOrders(ctx, token)
	}
	return backend.AllOrders(ctx, token)
}

// filterOrdersByBucket оставляет заказы, чей статус попадает в выбранную
// витринную группу. FILTER_ALL пропускает все.
func filterOrdersByBucket(orders []models.Order, filter string) []models.Order {
	if filter == "" || filter == constants.FILTER_ALL {
		return orders
	}
	var filtered []models.Order
	for _, order := range orders {
		if string(order.Status.Bucket()) == filter {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// ShowOrdersList загружает и рисует список заказов.
// При ошибке загрузки показывается текст ошибки с кнопкой повтора;
// протухший токен дополнительно переводит на экран входа.
func (bh *BotHandler) ShowOrdersList(ctx context.Context, chatID int64, messageIDToTryEdit int, listKind, filter string) {
	authSession := bh.Deps.SessionManager.Auth(chatID)
	if authSession.Status != session.StatusSignedIn {
		bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, constants.NotSignedInMessage, nil)
		return
	}

	messageIDToTryEdit = bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, "⏳ Загрузка заказов...", nil)

	orders, err := bh.fetchOrdersList(ctx, authSession.Token, listKind)
	if err != nil {
		log.Printf("[ORDERS] Не удалось загрузить список (%s) для chatID %d: %v", listKind, chatID, err)
		if err.Error() == "Unauthorized" {
			bh.Deps.SessionManager.Refresh(ctx, chatID)
			bh.ShowSignedOutScreen(chatID, messageIDToTryEdit)
			return
		}
		keyboard := buildRetryListKeyboard(listKind)
		bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit,
			fmt.Sprintf("❌ %s", utils.EscapeTelegramMarkdown(err.Error())), &keyboard)
		return
	}

	filtered := filterOrdersByBucket(orders, filter)

	title := "📋 *ВСЕ ЗАКАЗЫ*"
	if listKind == listKindLatest {
		title = "🔥 *АКТУАЛЬНЫЕ ЗАКАЗЫ*"
	}

	var b strings.Builder
	b.WriteString(title + "\n")
	if filter != "" && filter != constants.FILTER_ALL {
		b.WriteString(fmt.Sprintf("Фильтр: %s\n", utils.GetBucketDisplayName(filter)))
	}
	b.WriteString("\n")

	if len(filtered) == 0 {
		b.WriteString("Пока нет заказов в этом списке.")
	} else {
		shown := filtered
		if len(shown) > constants.OrdersPerPage {
			shown = shown[:constants.OrdersPerPage]
		}
		for _, order := range shown {
			b.WriteString(formatters.FormatOrderListEntry(order) + "\n\n")
		}
		if len(filtered) > constants.OrdersPerPage {
			b.WriteString(fmt.Sprintf("_Показаны первые %d из %d._", constants.OrdersPerPage, len(filtered)))
		}
		filtered = shown
	}

	keyboard := buildOrdersListKeyboard(filtered, listKind, filter)
	bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, b.String(), &keyboard)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ORDERS_LIST)
}

// handleFilterCallback разбирает callback фильтра вида
// ord_filter_<latest|all>_<bucket> и перерисовывает список.
func (bh *BotHandler) handleFilterCallback(ctx context.Context, chatID int64, messageID int, payload string) {
	parts := strings.SplitN(payload, "_", 2)
	if len(parts) != 2 {
		log.Printf("[CALLBACK_ORDER] Некорректный payload фильтра: %q", payload)
		bh.sendErrorMessageHelper(chatID, messageID, constants.GenericErrorText)
		return
	}
	bh.ShowOrdersList(ctx, chatID, messageID, parts[0], parts[1])
}
