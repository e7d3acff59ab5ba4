// Файл: internal/backend/client.go
//
// Клиент REST API бэкенда Sonic Delivery. Все функции пакета не хранят
// состояния: вызывающая сторона передает bearer-токен в каждый вызов
// (кроме SignIn, когда токена еще нет).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"Courier/internal/models"
)

// Базовый URL бэкенда по умолчанию. Переопределяется переменной окружения
// EXPO_PUBLIC_API_BASE_URL (имя сохранено от мобильного клиента, чтобы
// окружения деплоя не менялись).
const defaultAPIBaseURL = "https://sonic-delivery.up.railway.app"

// Общий HTTP-клиент пакета. Таймаут фиксированный, per-call настройки
// и повторные попытки не предусмотрены.
var httpClient = &http.Client{Timeout: 15 * time.Second}

// apiBaseURL возвращает базовый URL бэкенда. Читается из окружения при
// каждом вызове, завершающий слэш отбрасывается.
func apiBaseURL() string {
	if envURL := os.Getenv("EXPO_PUBLIC_API_BASE_URL"); envURL != "" {
		return strings.TrimRight(envURL, "/")
	}
	return defaultAPIBaseURL
}

// apiErrorBody - форма тела ошибки, которую возвращает бэкенд.
type apiErrorBody struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors"`
}

// SignInResult - результат успешного входа.
type SignInResult struct {
	Token string                 `json:"token"`
	User  models.DeliveryManUser `json:"user"`
}

// AcceptOrderResult - подтверждение принятия заказа.
type AcceptOrderResult struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Order   models.OrderSummary `json:"order"`
}

// Location - координаты курьера, опционально прикладываются к смене статуса.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateOrderStatusRequest - тело запроса смены статуса заказа.
// Reason обязателен для REPORTED/REJECTED/CANCELLED и не отправляется
// для DELIVERED; это проверяется до вызова (models.ValidateStatusUpdate).
type UpdateOrderStatusRequest struct {
	Status   models.OrderStatus `json:"status"`
	Reason   string             `json:"reason,omitempty"`
	Notes    string             `json:"notes,omitempty"`
	Location *Location          `json:"location,omitempty"`
}

// UpdateOrderStatusResult - подтверждение смены статуса.
type UpdateOrderStatusResult struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Order   models.OrderSummary `json:"order"`
}

// doRequest выполняет HTTP-запрос к бэкенду и возвращает статус ответа и
// прочитанное тело. Каждому запросу присваивается X-Request-Id, к каждому
// авторизованному запросу добавляется заголовок Authorization.
func doRequest(ctx context.Context, method, path, token string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("ошибка подготовки запроса: %w", err)
		}
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiBaseURL()+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("ошибка создания HTTP-запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Printf("[BACKEND] Ошибка выполнения запроса %s %s: %v", method, path, err)
		return 0, nil, fmt.Errorf("ошибка выполнения запроса к API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[BACKEND] Ошибка чтения ответа %s %s: %v", method, path, err)
		return 0, nil, fmt.Errorf("ошибка чтения ответа API: %w", err)
	}
	return resp.StatusCode, raw, nil
}

// decodeSafe разбирает тело ответа в out. Неразбираемое тело считается
// отсутствующим и НЕ является ошибкой: дальше срабатывают проверки
// "не хватает ожидаемого поля" конкретных операций.
func decodeSafe(raw []byte, out any) bool {
	if len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("[BACKEND] Тело ответа не разобрано как JSON (трактуется как отсутствующее): %v", err)
		return false
	}
	return true
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// SignIn выполняет вход по email и паролю.
// POST /api/mobile/auth/login -> {token, user}
func SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	status, raw, err := doRequest(ctx, http.MethodPost, "/api/mobile/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return SignInResult{}, err
	}

	var body struct {
		apiErrorBody
		Token *string                 `json:"token"`
		User  *models.DeliveryManUser `json:"user"`
	}
	decodeSafe(raw, &body)

	if !is2xx(status) {
		if body.Error != "" {
			return SignInResult{}, fmt.Errorf("%s", body.Error)
		}
		return SignInResult{}, fmt.Errorf("Login failed")
	}
	if body.Token == nil || *body.Token == "" || body.User == nil {
		return SignInResult{}, fmt.Errorf("Invalid server response")
	}
	return SignInResult{Token: *body.Token, User: *body.User}, nil
}

// Me возвращает профиль текущего курьера по токену. Используется менеджером
// сессий для проверки сохраненного токена.
// GET /api/mobile/auth/me -> {user}
func Me(ctx context.Context, token string) (models.DeliveryManUser, error) {
	status, raw, err := doRequest(ctx, http.MethodGet, "/api/mobile/auth/me", token, nil)
	if err != nil {
		return models.DeliveryManUser{}, err
	}

	var body struct {
		apiErrorBody
		User *models.DeliveryManUser `json:"user"`
	}
	decodeSafe(raw, &body)

	if !is2xx(status) {
		if body.Error != "" {
			return models.DeliveryManUser{}, fmt.Errorf("%s", body.Error)
		}
		return models.DeliveryManUser{}, fmt.Errorf("Unauthorized")
	}
	if body.User == nil {
		return models.DeliveryManUser{}, fmt.Errorf("Invalid server response")
	}
	return *body.User, nil
}

// Logout сообщает бэкенду о выходе. Вызов сугубо best-effort: любая ошибка
// сети или HTTP проглатывается, локальный выход не должен от нее зависеть.
// POST /api/mobile/auth/logout
func Logout(ctx context.Context, token string) {
	status, _, err := doRequest(ctx, http.MethodPost, "/api/mobile/auth/logout", token, nil)
	if err != nil {
		log.Printf("[BACKEND] Logout не удался (игнорируется): %v", err)
		return
	}
	if !is2xx(status) {
		log.Printf("[BACKEND] Logout вернул статус %d (игнорируется)", status)
	}
}

// ordersList - общая выборка списка заказов для LatestOrders и AllOrders.
func ordersList(ctx context.Context, token, path, httpErrMsg string) ([]models.Order, error) {
	status, raw, err := doRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Orders *[]models.Order `json:"orders"`
	}
	decodeSafe(raw, &body)

	if !is2xx(status) {
		return nil, fmt.Errorf("%s", httpErrMsg)
	}
	if body.Orders == nil {
		return nil, fmt.Errorf("Invalid orders response")
	}
	return *body.Orders, nil
}

// LatestOrders возвращает последние заказы курьера.
// GET /api/mobile/orders/latest -> {orders}
func LatestOrders(ctx context.Context, token string) ([]models.Order, error) {
	return ordersList(ctx, token, "/api/mobile/orders/latest", "Failed to fetch latest orders")
}

// AllOrders возвращает все заказы курьера.
// GET /api/mobile/orders -> {orders}
func AllOrders(ctx context.Context, token string) ([]models.Order, error) {
	return ordersList(ctx, token, "/api/mobile/orders", "Failed to fetch all orders")
}

// OrderDetails возвращает один заказ целиком.
// GET /api/mobile/orders/{id} -> {order}
func OrderDetails(ctx context.Context, token string, orderID int64) (models.Order, error) {
	status, raw, err := doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/mobile/orders/%d", orderID), token, nil)
	if err != nil {
		return models.Order{}, err
	}

	var body struct {
		Order *models.Order `json:"order"`
	}
	decodeSafe(raw, &body)

	if !is2xx(status) {
		return models.Order{}, fmt.Errorf("Failed to fetch order details")
	}
	if body.Order == nil {
		return models.Order{}, fmt.Errorf("Invalid order details response")
	}
	return *body.Order, nil
}

// AcceptOrder принимает заказ в работу. Отдельная операция, не update-status:
// бэкенд сам переводит заказ ACCEPTED -> ASSIGNED_TO_DELIVERY.
// POST /api/mobile/orders/{id}/accept -> {success, message, order}
func AcceptOrder(ctx context.Context, token string, orderID int64) (AcceptOrderResult, error) {
	status, raw, err := doRequest(ctx, http.MethodPost, fmt.Sprintf("/api/mobile/orders/%d/accept", orderID), token, nil)
	if err != nil {
		return AcceptOrderResult{}, err
	}

	var body struct {
		apiErrorBody
		Success *bool               `json:"success"`
		Message string              `json:"message"`
		Order   models.OrderSummary `json:"order"`
	}
	decodeSafe(raw, &body)

	if !is2xx(status) {
		if body.Error != "" {
			return AcceptOrderResult{}, fmt.Errorf("%s", body.Error)
		}
		return AcceptOrderResult{}, fmt.Errorf("Failed to accept order")
	}
	if body.Success == nil || !*body.Success {
		return AcceptOrderResult{}, fmt.Errorf("Invalid accept order response")
	}
	return AcceptOrderResult{Success: true, Message: body.Message, Order: body.Order}, nil
}

// UpdateOrderStatus переводит заказ в новый статус.
//
// Контракт ответа трактуется строго: требуется и success=true, и поле order.
// Исторически бэкенд отвечал то одним, то другим, и мобильный клиент
// синтезировал сводку заказа сам; здесь такая снисходительность не
// воспроизводится.
// PATCH /api/mobile/orders/{id}/status -> {success, message, order}
func UpdateOrderStatus(ctx context.Context, token string, orderID int64, req UpdateOrderStatusRequest) (UpdateOrderStatusResult, error) {
	status, raw, err := doRequest(ctx, http.MethodPatch, fmt.Sprintf("/api/mobile/orders/%d/status", orderID), token, req)
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}

	var body struct {
		apiErrorBody
		Success *bool                `json:"success"`
		Message string               `json:"message"`
		Order   *models.OrderSummary `json:"order"`
	}
	decodeSafe(raw, &body)

	if !is2xx(status) {
		if body.Error != "" {
			return UpdateOrderStatusResult{}, fmt.Errorf("%s", body.Error)
		}
		return UpdateOrderStatusResult{}, fmt.Errorf("Failed to update order status")
	}
	if body.Success == nil || !*body.Success || body.Order == nil {
		return UpdateOrderStatusResult{}, fmt.Errorf("Invalid update order status response")
	}
	return UpdateOrderStatusResult{Success: true, Message: body.Message, Order: *body.Order}, nil
}
