package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCVV(t *testing.T) {
	assert.NoError(t, ValidateCVV("123"))
	assert.NoError(t, ValidateCVV("007"))
	for _, bad := range []string{"", "12", "1234", "12A", " 12"} {
		assert.ErrorIs(t, ValidateCVV(bad), ErrInvalidCVV, bad)
	}
}

func TestValidateCardNumber(t *testing.T) {
	assert.NoError(t, ValidateCardNumber("4111 1111 1111 1111"))
	assert.NoError(t, ValidateCardNumber("4111-1111-1111-1111"))
	assert.ErrorIs(t, ValidateCardNumber("4111"), ErrInvalidCardNumber)
	assert.ErrorIs(t, ValidateCardNumber("4111x11111111111"), ErrInvalidCardNumber)
}

func TestValidateExpiry(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateExpiry("03/25", now))
	assert.NoError(t, ValidateExpiry("12/27", now))
	assert.ErrorIs(t, ValidateExpiry("02/25", now), ErrInvalidExpiry)
	assert.ErrorIs(t, ValidateExpiry("13/25", now), ErrInvalidExpiry)
	assert.ErrorIs(t, ValidateExpiry("2025-03", now), ErrInvalidExpiry)
}

func TestHashCardNumber(t *testing.T) {
	hash, err := HashCardNumber("4111 1111 1111 1111")
	require.NoError(t, err)

	assert.NotContains(t, hash, "4111111111111111")
	assert.True(t, VerifyCardNumber(hash, "4111111111111111"))
	assert.False(t, VerifyCardNumber(hash, "4000000000000002"))
	assert.Equal(t, "1111", CardLast4("4111-1111-1111-1111"))
}
