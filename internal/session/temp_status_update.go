// Файл: internal/session/temp_status_update.go
package session

import (
	"Courier/internal/models"
)

// TempStatusUpdate - временное состояние многошагового потока смены статуса
// заказа: выбранный целевой статус, каноническая причина, свободный текст.
// Живет в сессии, пока курьер не подтвердит или не отменит отправку.
// TempStatusUpdate - temporary state of the multi-step order status update
// flow: chosen target status, canned reason, free text. Lives in the session
// until the courier confirms or cancels submission.
type TempStatusUpdate struct {
	OrderID       int64
	OrderCode     string
	CurrentStatus models.OrderStatus // Статус заказа на момент открытия меню
	TargetStatus  models.OrderStatus // Пустой, пока статус не выбран
	CannedReason  string             // Выбранная каноническая причина ("" если не выбрана)
	Reason        string             // Итоговый редактируемый текст причины
	MenuMessageID int                // ID сообщения-меню, которое редактируется по ходу потока
}

// CanSubmit сообщает, готов ли поток к отправке: статус выбран, и для
// статусов с обязательной причиной причина непуста. Пока CanSubmit ложен,
// кнопка отправки не показывается вовсе.
func (t TempStatusUpdate) CanSubmit() bool {
	if t.TargetStatus == "" {
		return false
	}
	if !t.TargetStatus.RequiresReason() {
		return true
	}
	return t.Reason != "" || (t.CannedReason != "" && t.CannedReason != models.CannedReasonOther)
}

// EffectiveReason возвращает причину, которая уйдет на бэкенд: свободный
// текст имеет приоритет, затем каноническая причина (кроме "Other").
// Для DELIVERED всегда пустая строка.
func (t TempStatusUpdate) EffectiveReason() string {
	if t.TargetStatus == models.StatusDelivered {
		return ""
	}
	if t.Reason != "" {
		return t.Reason
	}
	if t.CannedReason != "" && t.CannedReason != models.CannedReasonOther {
		return t.CannedReason
	}
	return ""
}

// GetTempStatusUpdate возвращает временные данные потока смены статуса.
// Если их нет, возвращается пустой экземпляр (OrderID == 0).
func (sm *Manager) GetTempStatusUpdate(chatID int64) TempStatusUpdate {
	sm.tempStatusUpdateMutex.RLock()
	defer sm.tempStatusUpdateMutex.RUnlock()
	return sm.tempStatusUpdates[chatID]
}

// UpdateTempStatusUpdate сохраняет временные данные потока смены статуса.
func (sm *Manager) UpdateTempStatusUpdate(chatID int64, data TempStatusUpdate) {
	sm.tempStatusUpdateMutex.Lock()
	defer sm.tempStatusUpdateMutex.Unlock()
	sm.tempStatusUpdates[chatID] = data
}

// ClearTempStatusUpdate удаляет временные данные потока смены статуса.
func (sm *Manager) ClearTempStatusUpdate(chatID int64) {
	sm.tempStatusUpdateMutex.Lock()
	defer sm.tempStatusUpdateMutex.Unlock()
	delete(sm.tempStatusUpdates, chatID)
}
