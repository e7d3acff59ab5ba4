// Файл: internal/api/middleware.go
package api

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// ChatIDContextKey - ключ для сохранения chatID пользователя в контексте запроса.
var ChatIDContextKey = &contextKey{"ChatID"}

type contextKey struct {
	name string
}

// AuthMiddleware проверяет заголовок X-Telegram-Auth с initData Mini App.
// Подлинность initData подтверждается HMAC-подписью с токеном бота; из нее
// извлекается chatID, по которому дальше поднимается сессия курьера.
func AuthMiddleware(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("X-Telegram-Auth")
			if authHeader == "" {
				http.Error(w, "Unauthorized: Missing X-Telegram-Auth header", http.StatusUnauthorized)
				return
			}

			isValid, userData, err := validateInitData(authHeader, secretKey)
			if err != nil || !isValid {
				log.Printf("AuthMiddleware: Invalid initData. Error: %v", err)
				http.Error(w, "Unauthorized: Invalid initData", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ChatIDContextKey, userData.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// chatIDFromContext достает chatID, положенный AuthMiddleware.
func chatIDFromContext(ctx context.Context) (int64, bool) {
	chatID, ok := ctx.Value(ChatIDContextKey).(int64)
	return chatID, ok
}

// Структура для парсинга JSON из initData
type telegramUserData struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// validateInitData - проверка подлинности данных от Telegram.
func validateInitData(initData, secret string) (bool, telegramUserData, error) {
	var userData telegramUserData

	q, err := url.ParseQuery(initData)
	if err != nil {
		return false, userData, fmt.Errorf("failed to parse initData: %w", err)
	}

	hash := q.Get("hash")
	if hash == "" {
		return false, userData, fmt.Errorf("hash is not present in initData")
	}

	userJSON := q.Get("user")
	if userJSON == "" {
		return false, userData, fmt.Errorf("user data is not present in initData")
	}
	if err := json.Unmarshal([]byte(userJSON), &userData); err != nil {
		return false, userData, fmt.Errorf("failed to unmarshal user data: %w", err)
	}

	var pairs []string
	for k, v := range q {
		if k != "hash" {
			pairs = append(pairs, fmt.Sprintf("%s=%s", k, v[0]))
		}
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secretKey := hmac.New(sha256.New, []byte("WebAppData"))
	secretKey.Write([]byte(secret))

	h := hmac.New(sha256.New, secretKey.Sum(nil))
	h.Write([]byte(dataCheckString))
	calculatedHash := hex.EncodeToString(h.Sum(nil))

	return calculatedHash == hash, userData, nil
}
