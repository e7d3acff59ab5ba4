// Файл: internal/api/handlers.go
//
// Обработчики Mini App API. Тонкий слой поверх тех же операций, что
// доступны в чате бота: профиль, списки заказов, карточка, принятие,
// смена статуса. Правила переходов проверяются локально до обращения
// к бэкенду, как и в боте.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Courier/internal/backend"
	"Courier/internal/db"
	"Courier/internal/models"
	"Courier/internal/session"
)

// writeJSONError отправляет стандартизированный JSON-ответ с ошибкой.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON отправляет JSON-ответ с данными.
func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[API] Ошибка кодирования ответа: %v", err)
	}
}

// HealthHandler - проверка живости сервиса и соединения с БД.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if db.DB == nil {
		status = "db not initialized"
		code = http.StatusServiceUnavailable
	} else if err := db.DB.PingContext(r.Context()); err != nil {
		log.Printf("[API] Health: ping БД не прошел: %v", err)
		status = "db unreachable"
		code = http.StatusServiceUnavailable
	}
	w.WriteHeader(code)
	writeJSON(w, map[string]string{"status": status})
}

// GetClientConfig возвращает публичную конфигурацию для Mini App.
func (deps ApiDependencies) GetClientConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"botUsername": deps.Config.BotUsername,
	})
}

// sessionForRequest поднимает сессию курьера по chatID из initData.
// Если сессия в памяти еще не поднималась, выполняется Bootstrap.
func (deps ApiDependencies) sessionForRequest(r *http.Request) (session.AuthSession, bool) {
	chatID, ok := chatIDFromContext(r.Context())
	if !ok {
		return session.AuthSession{}, false
	}

	authSession := deps.Sessions.Auth(chatID)
	if authSession.Status == session.StatusLoading {
		authSession = deps.Sessions.Bootstrap(r.Context(), chatID)
	}
	return authSession, authSession.Status == session.StatusSignedIn
}

// orderIDFromRequest достает и проверяет {id} из пути.
func orderIDFromRequest(r *http.Request) (int64, bool) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return orderID, err == nil && orderID > 0
}

// GetDriverProfile возвращает профиль вошедшего курьера.
func (deps ApiDependencies) GetDriverProfile(w http.ResponseWriter, r *http.Request) {
	authSession, ok := deps.sessionForRequest(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Not signed in")
		return
	}
	writeJSON(w, map[string]interface{}{"user": authSession.User})
}

// GetDriverOrders возвращает заказы курьера. Параметр filter=latest|all
// (по умолчанию latest, как на домашнем экране).
func (deps ApiDependencies) GetDriverOrders(w http.ResponseWriter, r *http.Request) {
	authSession, ok := deps.sessionForRequest(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Not signed in")
		return
	}

	filter := r.URL.Query().Get("filter")
	var orders []models.Order
	var err error
	if filter == "all" {
		orders, err = backend.AllOrders(r.Context(), authSession.Token)
	} else {
		orders, err = backend.LatestOrders(r.Context(), authSession.Token)
	}
	if err != nil {
		log.Printf("[API] Не удалось загрузить заказы (filter=%s): %v", filter, err)
		writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, map[string]interface{}{"orders": orders})
}

// GetDriverOrderDetails возвращает карточку одного заказа.
func (deps ApiDependencies) GetDriverOrderDetails(w http.ResponseWriter, r *http.Request) {
	authSession, ok := deps.sessionForRequest(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Not signed in")
		return
	}

	orderID, ok := orderIDFromRequest(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := backend.OrderDetails(r.Context(), authSession.Token, orderID)
	if err != nil {
		log.Printf("[API] Не удалось загрузить заказ %d: %v", orderID, err)
		writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, map[string]interface{}{"order": order})
}

// AcceptDriverOrder принимает заказ в работу.
func (deps ApiDependencies) AcceptDriverOrder(w http.ResponseWriter, r *http.Request) {
	authSession, ok := deps.sessionForRequest(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Not signed in")
		return
	}

	orderID, ok := orderIDFromRequest(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	result, err := backend.AcceptOrder(r.Context(), authSession.Token, orderID)
	if err != nil {
		log.Printf("[API] Принятие заказа %d не удалось: %v", orderID, err)
		writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, result)
}

// updateDriverOrderStatusRequest - тело запроса смены статуса из Mini App.
type updateDriverOrderStatusRequest struct {
	CurrentStatus models.OrderStatus `json:"currentStatus"`
	Status        models.OrderStatus `json:"status"`
	Reason        string             `json:"reason"`
}

// UpdateDriverOrderStatus переводит заказ в новый статус. Текущий статус
// перечитывается с бэкенда, локальная проверка перехода выполняется
// до сетевого вызова смены.
func (deps ApiDependencies) UpdateDriverOrderStatus(w http.ResponseWriter, r *http.Request) {
	authSession, ok := deps.sessionForRequest(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Not signed in")
		return
	}

	orderID, ok := orderIDFromRequest(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var req updateDriverOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := backend.OrderDetails(r.Context(), authSession.Token, orderID)
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}

	reason, err := models.ValidateStatusUpdate(order.Status, req.Status, req.Reason)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := backend.UpdateOrderStatus(r.Context(), authSession.Token, orderID, backend.UpdateOrderStatusRequest{
		Status: req.Status,
		Reason: reason,
	})
	if err != nil {
		log.Printf("[API] Смена статуса заказа %d не удалась: %v", orderID, err)
		writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, result)
}
