package services

import (
	"testing"

	"payout-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	legal := [][2]string{
		{models.WithdrawalPending, models.WithdrawalProcessing},
		{models.WithdrawalPending, models.WithdrawalCompleted},
		{models.WithdrawalPending, models.WithdrawalFailed},
		{models.WithdrawalPending, models.WithdrawalCancelled},
		{models.WithdrawalProcessing, models.WithdrawalCompleted},
		{models.WithdrawalProcessing, models.WithdrawalFailed},
	}
	for _, pair := range legal {
		assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	illegal := [][2]string{
		{models.WithdrawalProcessing, models.WithdrawalPending},
		{models.WithdrawalProcessing, models.WithdrawalCancelled},
		{models.WithdrawalCompleted, models.WithdrawalFailed},
		{models.WithdrawalCompleted, models.WithdrawalProcessing},
		{models.WithdrawalFailed, models.WithdrawalCompleted},
		{models.WithdrawalCancelled, models.WithdrawalProcessing},
		{models.WithdrawalCancelled, models.WithdrawalCompleted},
		{models.WithdrawalCompleted, models.WithdrawalCompleted},
	}
	for _, pair := range illegal {
		assert.False(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}
}

func TestTerminal(t *testing.T) {
	for _, status := range []string{models.WithdrawalCompleted, models.WithdrawalFailed, models.WithdrawalCancelled} {
		w := models.WithdrawalRequest{Status: status}
		assert.True(t, w.Terminal(), status)
	}
	for _, status := range []string{models.WithdrawalPending, models.WithdrawalProcessing} {
		w := models.WithdrawalRequest{Status: status}
		assert.False(t, w.Terminal(), status)
	}
}

func TestAvailableBalance(t *testing.T) {
	got, err := availableBalance(1000, 250)
	assert.NoError(t, err)
	assert.Equal(t, 750.0, got)

	got, err = availableBalance(100, 100)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, got)

	// Negative balances are an alarm, never clamped
	_, err = availableBalance(100, 250)
	assert.ErrorIs(t, err, ErrBalanceInconsistency)
}
