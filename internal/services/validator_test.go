package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAmount(t *testing.T) {
	limits := DefaultWithdrawalLimits()

	// Below the hard floor
	assert.ErrorIs(t, ValidateAmount(50, 1000, limits), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(99.99, 1000, limits), ErrInvalidAmount)

	// Garbage values
	assert.ErrorIs(t, ValidateAmount(0, 1000, limits), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(-250, 1000, limits), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(math.NaN(), 1000, limits), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(math.Inf(1), 1000, limits), ErrInvalidAmount)

	// Exactly the minimum passes
	assert.NoError(t, ValidateAmount(100, 1000, limits))

	// Balance boundary: equal passes, a cent over fails
	assert.NoError(t, ValidateAmount(1000, 1000, limits))
	assert.ErrorIs(t, ValidateAmount(1000.01, 1000, limits), ErrInsufficientBalance)

	// Above the configured maximum
	assert.ErrorIs(t, ValidateAmount(2000000, 5000000, limits), ErrInvalidAmount)
}

func TestValidateAmountRaisedMinimum(t *testing.T) {
	limits := WithdrawalLimits{Minimum: 500, Maximum: 10000}
	assert.ErrorIs(t, ValidateAmount(250, 1000, limits), ErrInvalidAmount)
	assert.NoError(t, ValidateAmount(500, 1000, limits))
}

func TestValidateDestination(t *testing.T) {
	valid := []string{
		"alice@examplebank",
		"bob.kumar@upi",
		"tech_99@okaxis",
		"a-b@ok",
	}
	for _, d := range valid {
		assert.NoError(t, ValidateDestination(d), d)
	}

	invalid := []string{
		"",
		"alice",
		"@examplebank",
		"a@examplebank",           // local part too short
		"alice@b",                 // handle too short
		"alice@bank1",             // digits in handle
		"alice@@examplebank",      // double separator
		"ali ce@examplebank",      // whitespace inside
		"alice@example bank",      // whitespace in handle
		"alice!$@examplebank",     // illegal local chars
		"alice@examplebank@again", // trailing garbage
	}
	for _, d := range invalid {
		assert.ErrorIs(t, ValidateDestination(d), ErrInvalidDestination, d)
	}
}

func TestValidatePinFormat(t *testing.T) {
	assert.NoError(t, ValidatePinFormat("1234"))
	assert.NoError(t, ValidatePinFormat("0000"))

	for _, pin := range []string{"", "123", "12345", "12a4", "12 4", "١٢٣٤"} {
		assert.ErrorIs(t, ValidatePinFormat(pin), ErrPinFormatInvalid, pin)
	}
}
