package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminal(t *testing.T) {
	terminal := []OrderStatus{StatusDelivered, StatusCancelled, StatusRejected}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "статус %s должен быть терминальным", s)
	}

	nonTerminal := []OrderStatus{StatusPending, StatusAccepted, StatusAssignedToDelivery, StatusReported}
	for _, s := range nonTerminal {
		assert.False(t, s.IsTerminal(), "статус %s не должен быть терминальным", s)
	}
}

func TestCanAccept(t *testing.T) {
	assert.True(t, StatusAccepted.CanAccept(), "принятие должно быть доступно только из ACCEPTED")

	for _, s := range []OrderStatus{StatusPending, StatusAssignedToDelivery, StatusDelivered, StatusCancelled, StatusReported, StatusRejected} {
		assert.False(t, s.CanAccept(), "принятие из статуса %s должно быть запрещено", s)
	}
}

func TestCanUpdateStatus(t *testing.T) {
	assert.True(t, StatusAssignedToDelivery.CanUpdateStatus())

	for _, s := range []OrderStatus{StatusPending, StatusAccepted, StatusDelivered, StatusCancelled, StatusReported, StatusRejected} {
		assert.False(t, s.CanUpdateStatus(), "смена статуса из %s должна быть запрещена", s)
	}
}

func TestAllowedTransitions(t *testing.T) {
	got := AllowedTransitions(StatusAssignedToDelivery)
	assert.Equal(t, []OrderStatus{StatusDelivered, StatusReported, StatusRejected, StatusCancelled}, got)

	for _, s := range []OrderStatus{StatusPending, StatusAccepted, StatusDelivered, StatusCancelled, StatusReported, StatusRejected} {
		assert.Nil(t, AllowedTransitions(s), "из статуса %s не должно быть переходов", s)
	}
}

func TestBucket(t *testing.T) {
	assert.Equal(t, BucketPending, StatusPending.Bucket())
	assert.Equal(t, BucketPending, StatusAccepted.Bucket())
	assert.Equal(t, BucketInProgress, StatusAssignedToDelivery.Bucket())
	assert.Equal(t, BucketDelivered, StatusDelivered.Bucket())

	// Терминальные недоставленные и REPORTED не входят ни в одну группу.
	assert.Equal(t, BucketNone, StatusCancelled.Bucket())
	assert.Equal(t, BucketNone, StatusRejected.Bucket())
	assert.Equal(t, BucketNone, StatusReported.Bucket())
}

func TestRequiresReason(t *testing.T) {
	for _, s := range []OrderStatus{StatusReported, StatusRejected, StatusCancelled} {
		assert.True(t, s.RequiresReason(), "статус %s требует причину", s)
	}
	assert.False(t, StatusDelivered.RequiresReason(), "DELIVERED не требует причину")
}

func TestValidateStatusUpdate_Delivered(t *testing.T) {
	// Для DELIVERED причина не нужна и отбрасывается, даже если передана.
	reason, err := ValidateStatusUpdate(StatusAssignedToDelivery, StatusDelivered, "лишний текст")
	require.NoError(t, err)
	assert.Empty(t, reason, "для DELIVERED причина не должна отправляться")
}

func TestValidateStatusUpdate_ReasonRequired(t *testing.T) {
	for _, target := range []OrderStatus{StatusReported, StatusRejected, StatusCancelled} {
		_, err := ValidateStatusUpdate(StatusAssignedToDelivery, target, "")
		assert.Error(t, err, "пустая причина для %s должна отклоняться", target)

		_, err = ValidateStatusUpdate(StatusAssignedToDelivery, target, "   ")
		assert.Error(t, err, "причина из пробелов для %s должна отклоняться", target)

		_, err = ValidateStatusUpdate(StatusAssignedToDelivery, target, CannedReasonOther)
		assert.Error(t, err, "пункт %q не является причиной", CannedReasonOther)

		reason, err := ValidateStatusUpdate(StatusAssignedToDelivery, target, "  Wrong address  ")
		require.NoError(t, err)
		assert.Equal(t, "Wrong address", reason, "причина должна быть обрезана по пробелам")
	}
}

func TestValidateStatusUpdate_BadTransitions(t *testing.T) {
	// Из любого статуса, кроме ASSIGNED_TO_DELIVERY, смена запрещена.
	for _, current := range []OrderStatus{StatusPending, StatusAccepted, StatusDelivered, StatusCancelled, StatusReported, StatusRejected} {
		_, err := ValidateStatusUpdate(current, StatusDelivered, "")
		assert.Error(t, err, "смена статуса из %s должна отклоняться локально", current)
	}

	// Целевой статус вне списка разрешенных.
	_, err := ValidateStatusUpdate(StatusAssignedToDelivery, StatusAccepted, "reason")
	assert.Error(t, err)
	_, err = ValidateStatusUpdate(StatusAssignedToDelivery, StatusPending, "reason")
	assert.Error(t, err)
}

func TestCannedReasons(t *testing.T) {
	assert.Equal(t, []string{"Customer not available", "Refused", "Wrong address", "Other"}, CannedReasons)
}
