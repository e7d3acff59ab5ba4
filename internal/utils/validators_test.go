package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	email, err := ValidateEmail("  Courier@Example.COM  ")
	require.NoError(t, err)
	assert.Equal(t, "courier@example.com", email, "email нормализуется к нижнему регистру без пробелов")

	for _, bad := range []string{"", "   ", "notanemail", "a@b", "двa слова@mail.ru"} {
		_, err := ValidateEmail(bad)
		assert.Error(t, err, "значение %q должно отклоняться", bad)
	}
}

func TestValidateReason(t *testing.T) {
	reason, err := ValidateReason("  Клиент не отвечает  ")
	require.NoError(t, err)
	assert.Equal(t, "Клиент не отвечает", reason)

	_, err = ValidateReason("   ")
	assert.Error(t, err)

	_, err = ValidateReason(strings.Repeat("щ", 501))
	assert.Error(t, err, "причина длиннее 500 символов должна отклоняться")

	reason, err = ValidateReason(strings.Repeat("щ", 500))
	require.NoError(t, err)
	assert.Len(t, []rune(reason), 500)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1500.00 FCFA", FormatMoney(1500))
	assert.Equal(t, "99.90 FCFA", FormatMoney(99.9))
}

func TestFormatBackendTime(t *testing.T) {
	parsed, err := time.Parse(time.RFC3339, "2026-01-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, parsed.Local().Format("02.01.2006 15:04"), FormatBackendTime("2026-01-15T10:30:00Z"))
	assert.Equal(t, "—", FormatBackendTime(""))
	// Неразбираемое время показывается как есть, а не прячется.
	assert.Equal(t, "вчера", FormatBackendTime("вчера"))
}

func TestStrPtrOrDash(t *testing.T) {
	city := "Douala"
	assert.Equal(t, "Douala", StrPtrOrDash(&city))
	assert.Equal(t, "—", StrPtrOrDash(nil))
}
