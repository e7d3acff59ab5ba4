package handlers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"Courier/internal/constants"
	"Courier/internal/models"
)

func sampleOrders() []models.Order {
	return []models.Order{
		{ID: 1, OrderCode: "ORD-001", Status: models.StatusPending},
		{ID: 2, OrderCode: "ORD-002", Status: models.StatusAccepted},
		{ID: 3, OrderCode: "ORD-003", Status: models.StatusAssignedToDelivery},
		{ID: 4, OrderCode: "ORD-004", Status: models.StatusDelivered},
		{ID: 5, OrderCode: "ORD-005", Status: models.StatusCancelled},
		{ID: 6, OrderCode: "ORD-006", Status: models.StatusRejected},
	}
}

func TestFilterOrdersByBucket(t *testing.T) {
	orders := sampleOrders()

	all := filterOrdersByBucket(orders, constants.FILTER_ALL)
	assert.Len(t, all, 6, "фильтр 'все' ничего не отсеивает")

	pending := filterOrdersByBucket(orders, constants.FILTER_PENDING)
	require.Len(t, pending, 2)
	assert.Equal(t, "ORD-001", pending[0].OrderCode)
	assert.Equal(t, "ORD-002", pending[1].OrderCode)

	inProgress := filterOrdersByBucket(orders, constants.FILTER_IN_PROGRESS)
	require.Len(t, inProgress, 1)
	assert.Equal(t, "ORD-003", inProgress[0].OrderCode)

	delivered := filterOrdersByBucket(orders, constants.FILTER_DELIVERED)
	require.Len(t, delivered, 1)
	assert.Equal(t, "ORD-004", delivered[0].OrderCode)
}

func TestBuildHistoryWorkbook(t *testing.T) {
	deliveredAt := "2026-08-20T14:00:00Z"
	orders := []models.Order{
		{
			ID: 4, OrderCode: "ORD-004", Status: models.StatusDelivered,
			CustomerName: "Клиент", Address: "ул. Ленина, 1", City: "Douala",
			TotalPrice: 2500, PaymentMethod: "CASH",
			CreatedAt: "2026-08-20T10:00:00Z", DeliveredAt: &deliveredAt,
		},
		{ID: 5, OrderCode: "ORD-005", Status: models.StatusCancelled},
	}

	data, err := buildHistoryWorkbook(orders)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("История")
	require.NoError(t, err)
	require.Len(t, rows, 3, "заголовок и две строки данных")
	assert.Equal(t, "Код заказа", rows[0][0])
	assert.Equal(t, "ORD-004", rows[1][0])
	assert.Equal(t, "DELIVERED", rows[1][1])
	assert.Equal(t, "ORD-005", rows[2][0])
}
