package models

import (
	"fmt"
	"strings"
)

// OrderStatus - статус заказа на бэкенде. Это авторитетные значения,
// по которым принимаются решения о доступных переходах. Не путать с
// "витринными" группами (DisplayBucket), которые нужны только для фильтров.
// OrderStatus - the backend order status. These are the authoritative values
// that drive transition decisions. Not to be confused with the display
// buckets (DisplayBucket), which exist only for filtering.
type OrderStatus string

const (
	StatusPending            OrderStatus = "PENDING"
	StatusAccepted           OrderStatus = "ACCEPTED"
	StatusAssignedToDelivery OrderStatus = "ASSIGNED_TO_DELIVERY"
	StatusDelivered          OrderStatus = "DELIVERED"
	StatusCancelled          OrderStatus = "CANCELLED"
	StatusReported           OrderStatus = "REPORTED"
	StatusRejected           OrderStatus = "REJECTED"
)

// DisplayBucket - витринная группа статусов. Используется только для
// фильтрации списков, никогда для правил переходов.
type DisplayBucket string

const (
	BucketPending    DisplayBucket = "pending"
	BucketInProgress DisplayBucket = "in_progress"
	BucketDelivered  DisplayBucket = "delivered"
	BucketNone       DisplayBucket = "" // Терминальные недоставленные статусы не входят ни в одну группу
)

// IsTerminal сообщает, является ли статус терминальным: из него курьер
// не может инициировать никакой переход.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// CanAccept сообщает, можно ли принять заказ в работу.
// Принятие доступно только из статуса ACCEPTED и переводит заказ
// в ASSIGNED_TO_DELIVERY (отдельная операция бэкенда, не update-status).
func (s OrderStatus) CanAccept() bool {
	return s == StatusAccepted
}

// CanUpdateStatus сообщает, доступна ли курьеру смена статуса.
// Смена доступна только из ASSIGNED_TO_DELIVERY.
func (s OrderStatus) CanUpdateStatus() bool {
	return s == StatusAssignedToDelivery
}

// RequiresReason сообщает, требует ли переход в данный статус
// обязательную непустую причину.
func (s OrderStatus) RequiresReason() bool {
	switch s {
	case StatusReported, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// AllowedTransitions возвращает статусы, в которые курьер может перевести
// заказ из текущего статуса через операцию update-status.
// Переход ACCEPTED -> ASSIGNED_TO_DELIVERY сюда не входит: он выполняется
// отдельной операцией accept (см. CanAccept).
func AllowedTransitions(from OrderStatus) []OrderStatus {
	if from != StatusAssignedToDelivery {
		return nil
	}
	return []OrderStatus{StatusDelivered, StatusReported, StatusRejected, StatusCancelled}
}

// Bucket возвращает витринную группу статуса.
func (s OrderStatus) Bucket() DisplayBucket {
	switch s {
	case StatusPending, StatusAccepted:
		return BucketPending
	case StatusAssignedToDelivery:
		return BucketInProgress
	case StatusDelivered:
		return BucketDelivered
	}
	return BucketNone
}

// Канонические причины для переходов REPORTED/REJECTED/CANCELLED.
// CannedReasonOther - особый пункт: он не отправляется на бэкенд,
// а переключает ввод на свободный текст.
const CannedReasonOther = "Other"

var CannedReasons = []string{
	"Customer not available",
	"Refused",
	"Wrong address",
	CannedReasonOther,
}

// ValidateStatusUpdate - локальная проверка перед сетевым вызовом
// update-status. Возвращает причину, которую следует отправить
// (пустую для DELIVERED), либо ошибку, если запрос отправлять нельзя.
// Проверка выполняется ДО любого обращения к сети.
func ValidateStatusUpdate(current, target OrderStatus, reason string) (string, error) {
	if !current.CanUpdateStatus() {
		return "", fmt.Errorf("смена статуса недоступна из статуса %s", current)
	}

	allowed := false
	for _, s := range AllowedTransitions(current) {
		if s == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("переход %s -> %s не разрешен", current, target)
	}

	reason = strings.TrimSpace(reason)
	if target == StatusDelivered {
		// Для DELIVERED причина не нужна и не отправляется.
		return "", nil
	}
	if reason == "" || reason == CannedReasonOther {
		return "", fmt.Errorf("для статуса %s требуется непустая причина", target)
	}
	return reason, nil
}
