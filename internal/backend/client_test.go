package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Courier/internal/models"
)

// newBackendStub поднимает httptest-сервер и направляет на него клиент
// через переменную окружения.
func newBackendStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("EXPO_PUBLIC_API_BASE_URL", server.URL)
	return server
}

func TestSignIn_Success(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/mobile/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"), "каждый запрос должен нести X-Request-Id")
		assert.Empty(t, r.Header.Get("Authorization"), "вход выполняется без токена")

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "courier@example.com", creds["email"])
		assert.Equal(t, "secret", creds["password"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-123",
			"user":  map[string]interface{}{"id": 7, "email": "courier@example.com", "role": "DELIVERYMAN"},
		})
	})

	result, err := SignIn(context.Background(), "courier@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, int64(7), result.User.ID)
}

func TestSignIn_HTTPErrorWithServerMessage(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	})

	_, err := SignIn(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error(), "текст ошибки бэкенда показывается как есть")
}

func TestSignIn_HTTPErrorWithoutBody(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := SignIn(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	assert.Equal(t, "Login failed", err.Error())
}

func TestSignIn_UnparseableErrorBody(t *testing.T) {
	// Неразбираемое тело трактуется как отсутствующее.
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>Bad Gateway</html>"))
	})

	_, err := SignIn(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	assert.Equal(t, "Login failed", err.Error())
}

func TestSignIn_MissingToken(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"id": 7},
		})
	})

	_, err := SignIn(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	assert.Equal(t, "Invalid server response", err.Error())
}

func TestMe_Success(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/mobile/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"id": 7, "name": "Иван", "email": "courier@example.com"},
		})
	})

	user, err := Me(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Иван", user.Name)
}

func TestMe_Unauthorized(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := Me(context.Background(), "stale-token")
	require.Error(t, err)
	assert.Equal(t, "Unauthorized", err.Error())
}

func TestMe_MissingUser(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := Me(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, "Invalid server response", err.Error())
}

func TestLatestOrders_Success(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mobile/orders/latest", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"orders": []map[string]interface{}{
				{"id": 1, "orderCode": "ORD-001", "status": "ACCEPTED"},
				{"id": 2, "orderCode": "ORD-002", "status": "ASSIGNED_TO_DELIVERY"},
			},
		})
	})

	orders, err := LatestOrders(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, models.StatusAccepted, orders[0].Status)
	assert.Equal(t, "ORD-002", orders[1].OrderCode)
}

func TestLatestOrders_EmptyListIsValid(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"orders": []}`))
	})

	orders, err := LatestOrders(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, orders, "пустой список - валидный ответ, а не ошибка")
}

func TestLatestOrders_MissingOrdersField(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := LatestOrders(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, "Invalid orders response", err.Error())
}

func TestLatestOrders_HTTPError(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := LatestOrders(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch latest orders", err.Error())
}

func TestAllOrders_HTTPError(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mobile/orders", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := AllOrders(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch all orders", err.Error())
}

func TestOrderDetails_Success(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mobile/orders/42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"order": map[string]interface{}{"id": 42, "orderCode": "ORD-042", "status": "ASSIGNED_TO_DELIVERY"},
		})
	})

	order, err := OrderDetails(context.Background(), "tok", 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, models.StatusAssignedToDelivery, order.Status)
}

func TestOrderDetails_Errors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := OrderDetails(context.Background(), "tok", 42)
		require.Error(t, err)
		assert.Equal(t, "Failed to fetch order details", err.Error())
	})

	t.Run("missing order", func(t *testing.T) {
		newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": true}`))
		})
		_, err := OrderDetails(context.Background(), "tok", 42)
		require.Error(t, err)
		assert.Equal(t, "Invalid order details response", err.Error())
	})
}

func TestAcceptOrder_Success(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/mobile/orders/42/accept", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "Order accepted",
			"order":   map[string]interface{}{"id": 42, "orderCode": "ORD-042", "status": "ASSIGNED_TO_DELIVERY"},
		})
	})

	result, err := AcceptOrder(context.Background(), "tok", 42)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.StatusAssignedToDelivery, result.Order.Status)
}

func TestAcceptOrder_Errors(t *testing.T) {
	t.Run("http error with message", func(t *testing.T) {
		newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "Order already taken"})
		})
		_, err := AcceptOrder(context.Background(), "tok", 42)
		require.Error(t, err)
		assert.Equal(t, "Order already taken", err.Error())
	})

	t.Run("http error without message", func(t *testing.T) {
		newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := AcceptOrder(context.Background(), "tok", 42)
		require.Error(t, err)
		assert.Equal(t, "Failed to accept order", err.Error())
	})

	t.Run("missing success flag", func(t *testing.T) {
		newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"order": {"id": 42}}`))
		})
		_, err := AcceptOrder(context.Background(), "tok", 42)
		require.Error(t, err)
		assert.Equal(t, "Invalid accept order response", err.Error())
	})

	t.Run("success false", func(t *testing.T) {
		newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false}`))
		})
		_, err := AcceptOrder(context.Background(), "tok", 42)
		require.Error(t, err)
		assert.Equal(t, "Invalid accept order response", err.Error())
	})
}

func TestUpdateOrderStatus_Success(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/mobile/orders/7/status", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "REJECTED", payload["status"])
		assert.Equal(t, "Wrong address", payload["reason"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"order":   map[string]interface{}{"id": 7, "orderCode": "ORD-007", "status": "REJECTED"},
		})
	})

	result, err := UpdateOrderStatus(context.Background(), "tok", 7, UpdateOrderStatusRequest{
		Status: models.StatusRejected,
		Reason: "Wrong address",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, result.Order.Status)
}

func TestUpdateOrderStatus_DeliveredOmitsReason(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "DELIVERED", payload["status"])
		_, hasReason := payload["reason"]
		assert.False(t, hasReason, "для DELIVERED поле reason не должно отправляться")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"order":   map[string]interface{}{"id": 7, "status": "DELIVERED"},
		})
	})

	_, err := UpdateOrderStatus(context.Background(), "tok", 7, UpdateOrderStatusRequest{
		Status: models.StatusDelivered,
	})
	require.NoError(t, err)
}

// Контракт update-status строгий: требуется и success=true, и order.
func TestUpdateOrderStatus_StrictContract(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"success without order", `{"success": true}`},
		{"order without success", `{"order": {"id": 7, "status": "DELIVERED"}}`},
		{"success false with order", `{"success": false, "order": {"id": 7}}`},
		{"empty body", ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})
			_, err := UpdateOrderStatus(context.Background(), "tok", 7, UpdateOrderStatusRequest{
				Status: models.StatusDelivered,
			})
			require.Error(t, err)
			assert.Equal(t, "Invalid update order status response", err.Error())
		})
	}
}

func TestUpdateOrderStatus_HTTPError(t *testing.T) {
	newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	_, err := UpdateOrderStatus(context.Background(), "tok", 7, UpdateOrderStatusRequest{
		Status: models.StatusDelivered,
	})
	require.Error(t, err)
	assert.Equal(t, "Failed to update order status", err.Error())
}

func TestAPIBaseURL_TrailingSlashTrimmed(t *testing.T) {
	t.Setenv("EXPO_PUBLIC_API_BASE_URL", "http://localhost:9999///")
	assert.Equal(t, "http://localhost:9999", apiBaseURL())
}

func TestAPIBaseURL_Default(t *testing.T) {
	t.Setenv("EXPO_PUBLIC_API_BASE_URL", "")
	assert.Equal(t, defaultAPIBaseURL, apiBaseURL())
}
