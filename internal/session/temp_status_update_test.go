package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Courier/internal/models"
)

func TestCanSubmit(t *testing.T) {
	// Статус не выбран - отправлять нечего.
	assert.False(t, TempStatusUpdate{}.CanSubmit())

	// DELIVERED не требует причины.
	assert.True(t, TempStatusUpdate{TargetStatus: models.StatusDelivered}.CanSubmit())

	// Статусы с обязательной причиной без причины не отправляются.
	assert.False(t, TempStatusUpdate{TargetStatus: models.StatusRejected}.CanSubmit())

	// Каноническая причина достаточна, но "Other" сама по себе - нет.
	assert.True(t, TempStatusUpdate{TargetStatus: models.StatusRejected, CannedReason: "Refused"}.CanSubmit())
	assert.False(t, TempStatusUpdate{TargetStatus: models.StatusRejected, CannedReason: models.CannedReasonOther}.CanSubmit())

	// Свободный текст делает поток готовым, в том числе после "Other".
	assert.True(t, TempStatusUpdate{
		TargetStatus: models.StatusRejected,
		CannedReason: models.CannedReasonOther,
		Reason:       "Клиент переехал",
	}.CanSubmit())
}

func TestEffectiveReason(t *testing.T) {
	// Для DELIVERED причина всегда пустая, что бы ни было набрано.
	assert.Empty(t, TempStatusUpdate{
		TargetStatus: models.StatusDelivered,
		CannedReason: "Refused",
		Reason:       "текст",
	}.EffectiveReason())

	// Свободный текст имеет приоритет над канонической причиной.
	assert.Equal(t, "свой текст", TempStatusUpdate{
		TargetStatus: models.StatusRejected,
		CannedReason: "Refused",
		Reason:       "свой текст",
	}.EffectiveReason())

	assert.Equal(t, "Wrong address", TempStatusUpdate{
		TargetStatus: models.StatusCancelled,
		CannedReason: "Wrong address",
	}.EffectiveReason())

	// "Other" без текста не дает причины.
	assert.Empty(t, TempStatusUpdate{
		TargetStatus: models.StatusReported,
		CannedReason: models.CannedReasonOther,
	}.EffectiveReason())
}

func TestTempStatusUpdateLifecycle(t *testing.T) {
	sm := NewManager(newMemoryTokenStore())

	assert.Zero(t, sm.GetTempStatusUpdate(1).OrderID, "до начала потока данных нет")

	data := TempStatusUpdate{OrderID: 42, OrderCode: "ORD-042", CurrentStatus: models.StatusAssignedToDelivery}
	sm.UpdateTempStatusUpdate(1, data)
	assert.Equal(t, data, sm.GetTempStatusUpdate(1))

	// Потоки разных чатов изолированы.
	assert.Zero(t, sm.GetTempStatusUpdate(2).OrderID)

	sm.ClearTempStatusUpdate(1)
	assert.Zero(t, sm.GetTempStatusUpdate(1).OrderID)
}

func TestTempSignInLifecycle(t *testing.T) {
	sm := NewManager(newMemoryTokenStore())

	sm.UpdateTempSignIn(1, TempSignIn{Email: "courier@example.com", PromptMessageID: 10})
	assert.Equal(t, "courier@example.com", sm.GetTempSignIn(1).Email)

	sm.ClearTempSignIn(1)
	assert.Empty(t, sm.GetTempSignIn(1).Email)
}
