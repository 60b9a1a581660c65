package services

import "errors"

// Validation and state errors are returned as values so callers can branch on
// them; none of these is fatal to the process.
var (
	ErrInvalidAmount          = errors.New("invalid withdrawal amount")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrInvalidDestination     = errors.New("invalid destination account")
	ErrPinNotConfigured       = errors.New("withdrawal pin not configured")
	ErrPinMismatch            = errors.New("withdrawal pin mismatch")
	ErrPinFormatInvalid       = errors.New("withdrawal pin must be 4 digits")
	ErrInvalidTransition      = errors.New("invalid withdrawal status transition")
	ErrDuplicateTransactionId = errors.New("duplicate transaction id")
	ErrBalanceInconsistency   = errors.New("balance inconsistency detected")
	ErrTechnicianNotFound     = errors.New("technician not found")
	ErrWithdrawalNotFound     = errors.New("withdrawal request not found")
	ErrFailureReasonRequired  = errors.New("failure reason is required")
)
