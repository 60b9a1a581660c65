package handlers

import (
	"errors"
	"net/http"

	"payout-service/internal/services"
)

// statusForError maps the service error taxonomy onto HTTP statuses. The
// phrasing shown to the end user is the sentinel's message verbatim.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidDestination),
		errors.Is(err, services.ErrPinFormatInvalid),
		errors.Is(err, services.ErrFailureReasonRequired):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, services.ErrPinMismatch):
		return http.StatusForbidden
	case errors.Is(err, services.ErrPinNotConfigured),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrDuplicateTransactionId):
		return http.StatusConflict
	case errors.Is(err, services.ErrTechnicianNotFound),
		errors.Is(err, services.ErrWithdrawalNotFound):
		return http.StatusNotFound
	default:
		// Includes ErrBalanceInconsistency: a data-integrity alarm, not a
		// user mistake.
		return http.StatusInternalServerError
	}
}
