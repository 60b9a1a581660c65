package services

import (
	"math"
	"regexp"
	"strings"
)

// Destination handles are UPI-style: a 2-256 char local part of
// alphanumerics/dot/hyphen/underscore, then @, then a 2-64 letter provider.
var upiPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{2,256}@[A-Za-z]{2,64}$`)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// WithdrawalLimits bound the amount a single request may move. The minimum is
// a hard floor of 100; the marketplace backend may raise it.
type WithdrawalLimits struct {
	Minimum float64
	Maximum float64
}

func DefaultWithdrawalLimits() WithdrawalLimits {
	return WithdrawalLimits{Minimum: 100.0, Maximum: 1000000.0}
}

// ValidateAmount checks the requested amount against the limits and the
// technician's available balance. The balance check uses the balance as
// computed inside the caller's critical section.
func ValidateAmount(amount, available float64, limits WithdrawalLimits) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	if amount < limits.Minimum {
		return ErrInvalidAmount
	}
	if limits.Maximum > 0 && amount > limits.Maximum {
		return ErrInvalidAmount
	}
	if amount > available {
		return ErrInsufficientBalance
	}
	return nil
}

// ValidateDestination checks the payout handle format.
func ValidateDestination(destination string) error {
	if !upiPattern.MatchString(strings.TrimSpace(destination)) {
		return ErrInvalidDestination
	}
	return nil
}

// ValidatePinFormat checks the PIN is exactly 4 ASCII digits. It says nothing
// about whether the PIN is correct.
func ValidatePinFormat(pin string) error {
	if !pinPattern.MatchString(pin) {
		return ErrPinFormatInvalid
	}
	return nil
}
