package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "123456:test-bot-token"

// signInitData собирает initData и подписывает его так же, как Telegram.
func signInitData(t *testing.T, botToken string, params map[string]string) string {
	t.Helper()

	var pairs []string
	for k, v := range params {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secretKey := hmac.New(sha256.New, []byte("WebAppData"))
	secretKey.Write([]byte(botToken))

	h := hmac.New(sha256.New, secretKey.Sum(nil))
	h.Write([]byte(dataCheckString))
	hash := hex.EncodeToString(h.Sum(nil))

	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	values.Set("hash", hash)
	return values.Encode()
}

func TestValidateInitData(t *testing.T) {
	params := map[string]string{
		"user":      `{"id":777,"first_name":"Ivan","username":"ivan_courier"}`,
		"auth_date": "1756500000",
	}

	t.Run("valid signature", func(t *testing.T) {
		initData := signInitData(t, testBotToken, params)
		valid, userData, err := validateInitData(initData, testBotToken)
		require.NoError(t, err)
		assert.True(t, valid)
		assert.Equal(t, int64(777), userData.ID)
		assert.Equal(t, "ivan_courier", userData.Username)
	})

	t.Run("wrong secret", func(t *testing.T) {
		initData := signInitData(t, "other-token", params)
		valid, _, err := validateInitData(initData, testBotToken)
		require.NoError(t, err)
		assert.False(t, valid, "подпись чужим токеном должна отклоняться")
	})

	t.Run("missing hash", func(t *testing.T) {
		valid, _, err := validateInitData("user=%7B%22id%22%3A1%7D", testBotToken)
		assert.Error(t, err)
		assert.False(t, valid)
	})

	t.Run("missing user", func(t *testing.T) {
		initData := signInitData(t, testBotToken, map[string]string{"auth_date": "1756500000"})
		valid, _, err := validateInitData(initData, testBotToken)
		assert.Error(t, err)
		assert.False(t, valid)
	})
}

func TestAuthMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatID, ok := chatIDFromContext(r.Context())
		require.True(t, ok, "chatID должен попадать в контекст запроса")
		assert.Equal(t, int64(777), chatID)
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(testBotToken)(next)

	t.Run("no header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/driver/profile", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid initData", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/driver/profile", nil)
		req.Header.Set("X-Telegram-Auth", "hash=deadbeef&user=%7B%22id%22%3A777%7D")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid initData", func(t *testing.T) {
		initData := signInitData(t, testBotToken, map[string]string{
			"user":      `{"id":777,"first_name":"Ivan"}`,
			"auth_date": "1756500000",
		})
		req := httptest.NewRequest(http.MethodGet, "/api/driver/profile", nil)
		req.Header.Set("X-Telegram-Auth", initData)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
